package match

import "context"

// Repository keeps at most one result per pair; Upsert overwrites.
type Repository interface {
	List(ctx context.Context) (Results, error)
	Get(ctx context.Context, key PairKey) (Result, bool, error)
	Upsert(ctx context.Context, item Result) error
	Delete(ctx context.Context, key PairKey) error
	DeleteByTeam(ctx context.Context, teamID int) error
}
