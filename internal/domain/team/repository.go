package team

import (
	"context"
	"time"
)

// Repository describes team persistence needs from use cases.
type Repository interface {
	// GetByID returns the team with its stored roster.
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	// Upsert replaces the team row and its whole roster in one unit.
	Upsert(ctx context.Context, t Team) error
	SetMatchesUpdatedAt(ctx context.Context, id int64, at time.Time) error
}
