package team

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID int) (Team, bool, error)
	Upsert(ctx context.Context, item Team) error
	Delete(ctx context.Context, teamID int) error
}
