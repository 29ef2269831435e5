package usecase

import (
	"context"
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/user"
)

// TeamSource fetches and parses data from the scoring site.
type TeamSource interface {
	// FetchTeam returns the team with its raw, unreconciled roster.
	FetchTeam(ctx context.Context, teamID int64) (team.Team, error)
	SearchTeams(ctx context.Context, query string) ([]team.Ref, error)
	// FetchFixtures returns the team's fixture list. Only the source ids and
	// names of both sides are filled in.
	FetchFixtures(ctx context.Context, teamID int64) ([]match.Match, error)
	FetchPlayer(ctx context.Context, playerID int64) (player.Player, error)
}

// TeamMetadata is club information the scoring site does not publish.
type TeamMetadata struct {
	Founded    *int
	Venue      *string
	ClubColors *string
}

type MetadataProvider interface {
	// LookupTeam matches a club by name. ok is false when nothing matched.
	LookupTeam(ctx context.Context, name string) (meta TeamMetadata, ok bool, err error)
}

// TeamRowInvalidator is implemented by team stores that keep a local copy of
// rows. The refresh path drops that copy so its re-check reads the shared store.
type TeamRowInvalidator interface {
	Invalidate(ctx context.Context, teamID int64)
}

// RefreshLocker serializes refreshes of the same resource.
type RefreshLocker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

const (
	EventTeamRefreshed     = "team.refreshed"
	EventFixturesRefreshed = "fixtures.refreshed"
)

// Event announces that cached data was replaced.
type Event struct {
	Type       string    `json:"type"`
	TeamID     int64     `json:"teamId"`
	Count      int       `json:"count"`
	OccurredAt time.Time `json:"occurredAt"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(u user.User) (token string, expiresAt time.Time, err error)
	Verify(token string) (user.Principal, error)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
