package participation

import "context"

type Repository interface {
	Get(ctx context.Context) (State, error)
	SetActive(ctx context.Context, teamID int, active bool) error
	Delete(ctx context.Context, teamID int) error
}
