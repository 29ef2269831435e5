package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/audit"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/user"
)

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func TestTeamRepository_UpsertReplacesRoster(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	players := NewPlayerRepository()
	repo := NewTeamRepository(players)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Upsert(ctx, team.Team{
		ID: 13, Name: "Arsenal", LastUpdated: now,
		Players: []player.Player{{ID: 7, Name: strPtr("Saka")}, {ID: 41, Name: strPtr("Rice")}},
	}))
	require.NoError(t, repo.Upsert(ctx, team.Team{
		ID: 13, Name: "Arsenal", LastUpdated: now.Add(time.Hour),
		Players: []player.Player{{ID: 7, Name: strPtr("Saka"), Goals: 3}},
	}))

	got, ok, err := repo.GetByID(ctx, 13)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Players, 1)
	require.Equal(t, 3, got.Players[0].Goals)
	require.Equal(t, int64(13), got.Players[0].TeamID)
	require.Equal(t, now.Add(time.Hour), got.LastUpdated)

	_, ok, err = players.GetByID(ctx, 41)
	require.NoError(t, err)
	require.False(t, ok, "dropped roster rows are removed")

	p, ok, err := players.GetByID(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Saka", p.DisplayName())
}

func TestTeamRepository_SetMatchesUpdatedAt(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTeamRepository(nil)
	stamp := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SetMatchesUpdatedAt(ctx, 99, stamp), "unknown team is a no-op")

	require.NoError(t, repo.Upsert(ctx, team.Team{ID: 13, Name: "Arsenal", LastUpdated: stamp}))
	require.NoError(t, repo.SetMatchesUpdatedAt(ctx, 13, stamp))

	got, _, err := repo.GetByID(ctx, 13)
	require.NoError(t, err)
	require.NotNil(t, got.LastUpdatedMatches)
	require.Equal(t, stamp, *got.LastUpdatedMatches)
	require.Empty(t, got.Players)
}

func TestTeamRepository_RejectsInvalidTeam(t *testing.T) {
	t.Parallel()

	err := NewTeamRepository(nil).Upsert(context.Background(), team.Team{ID: 13})
	require.Error(t, err)
}

func TestMatchRepository_UpsertAndDateFilters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMatchRepository()
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }
	arsenal, liverpool, everton := team.Ref{ID: 13, Name: "Arsenal"}, team.Ref{ID: 26, Name: "Liverpool"}, team.Ref{ID: 30, Name: "Everton"}

	require.NoError(t, repo.UpsertByExternalID(ctx, []match.Match{
		{ExternalID: 2, HomeTeam: everton, AwayTeam: arsenal, Date: day(19)},
		{ExternalID: 1, HomeTeam: arsenal, AwayTeam: liverpool, Date: day(1), HomeScore: intPtr(2), AwayScore: intPtr(1)},
		{ExternalID: 3, HomeTeam: liverpool, AwayTeam: everton, Date: day(12)},
	}))

	upcoming, err := repo.ListFromDate(ctx, 13, day(10))
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	require.Equal(t, int64(2), upcoming[0].ExternalID)

	finished, err := repo.ListBeforeDate(ctx, 13, day(10))
	require.NoError(t, err)
	require.Len(t, finished, 1)
	require.Equal(t, int64(1), finished[0].ExternalID)

	// A rescrape moves the date and records the result, keeping the row id.
	firstID := upcoming[0].ID
	require.NoError(t, repo.UpsertByExternalID(ctx, []match.Match{
		{ExternalID: 2, HomeTeam: everton, AwayTeam: arsenal, Date: day(5), HomeScore: intPtr(0), AwayScore: intPtr(3)},
	}))

	upcoming, err = repo.ListFromDate(ctx, 13, day(10))
	require.NoError(t, err)
	require.Empty(t, upcoming)

	finished, err = repo.ListBeforeDate(ctx, 13, day(10))
	require.NoError(t, err)
	require.Len(t, finished, 2)
	require.Equal(t, int64(1), finished[0].ExternalID)
	require.Equal(t, firstID, finished[1].ID)
	require.Equal(t, 3, *finished[1].AwayScore)
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository()
	u := user.User{ID: "u1", Username: "lucas", PasswordHash: "hash"}

	require.NoError(t, repo.Create(ctx, u))
	require.ErrorIs(t, repo.Create(ctx, user.User{ID: "u2", Username: "lucas", PasswordHash: "other"}), user.ErrUsernameTaken)

	got, ok, err := repo.GetByUsername(ctx, "lucas")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "u1", got.ID)

	_, ok, err = repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAuditRepository_ListsNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewAuditRepository()
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, audit.Request{ID: "r1", UserID: "u1", Endpoint: "GET /api/teams/{teamID}", Timestamp: base}))
	require.NoError(t, repo.Append(ctx, audit.Request{ID: "r2", UserID: "u2", Endpoint: "GET /api/teams/{teamID}", Timestamp: base}))
	require.NoError(t, repo.Append(ctx, audit.Request{ID: "r3", UserID: "u1", Endpoint: "GET /api/players/{playerID}/performance", Timestamp: base.Add(time.Minute)}))
	require.NoError(t, repo.Append(ctx, audit.Request{ID: "r4", UserID: "u1", Endpoint: "GET /api/teams/{teamID}/stats", Timestamp: base.Add(time.Minute)}))

	got, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	require.Equal(t, []string{"r4", "r3", "r1"}, ids)
}
