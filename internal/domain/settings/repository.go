package settings

import "context"

// Repository stores the single settings document. Get reports false when
// nothing has been saved yet.
type Repository interface {
	Get(ctx context.Context) (Settings, bool, error)
	Save(ctx context.Context, item Settings) error
}
