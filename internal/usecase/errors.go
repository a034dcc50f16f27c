package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrTeamInactive          = errors.New("team is withdrawn from the tournament")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
