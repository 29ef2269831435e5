package match

import (
	"context"
	"time"
)

// Repository persists fixtures. Rows are keyed by the source match id.
type Repository interface {
	// ListFromDate returns matches of teamID dated on or after day.
	ListFromDate(ctx context.Context, teamID int64, day time.Time) ([]Match, error)
	// ListBeforeDate returns matches of teamID dated strictly before day.
	ListBeforeDate(ctx context.Context, teamID int64, day time.Time) ([]Match, error)
	// UpsertByExternalID inserts new fixtures and overwrites date, tournament
	// and scores of fixtures already stored under the same external id.
	UpsertByExternalID(ctx context.Context, items []Match) error
}
