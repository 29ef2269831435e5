package player

import "context"

// Repository exposes player lookups outside of a team roster.
type Repository interface {
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	Upsert(ctx context.Context, p Player) error
}
