package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
)

type matchListerFunc func(ctx context.Context, teamID int64) ([]match.Match, error)

func (f matchListerFunc) GetFinishedMatches(ctx context.Context, teamID int64) ([]match.Match, error) {
	return f(ctx, teamID)
}

type stubMetadata struct {
	meta TeamMetadata
	ok   bool
	err  error
}

func (s stubMetadata) LookupTeam(context.Context, string) (TeamMetadata, bool, error) {
	return s.meta, s.ok, s.err
}

func finishedFor(teamID, opponent int64, scores ...[2]int) []match.Match {
	out := make([]match.Match, 0, len(scores))
	for i, sc := range scores {
		out = append(out, match.Match{
			ExternalID: int64(i + 1),
			HomeTeam:   team.Ref{ID: teamID},
			AwayTeam:   team.Ref{ID: opponent},
			Date:       day(2024, 4, i+1),
			HomeScore:  intPtr(sc[0]),
			AwayScore:  intPtr(sc[1]),
		})
	}
	return out
}

func TestStatsService_GetTeamStats(t *testing.T) {
	t.Parallel()

	teams := map[int64]team.Team{
		13: {ID: 13, Name: "Arsenal", Players: []player.Player{
			{ID: 7, Name: strPtr("Saka"), Rating: 7.4},
			{ID: 41, Name: strPtr("Rice"), Rating: 7.9},
		}},
	}
	lister := matchListerFunc(func(_ context.Context, id int64) ([]match.Match, error) {
		return finishedFor(id, 26, [2]int{2, 0}, [2]int{1, 0}, [2]int{1, 1}, [2]int{0, 2}, [2]int{3, 1}), nil
	})
	founded := 1886
	meta := stubMetadata{ok: true, meta: TeamMetadata{Founded: &founded, Venue: strPtr("Emirates Stadium")}}
	service := NewStatsService(staticResolver(teams, nil), lister, meta, nil)

	got, err := service.GetTeamStats(context.Background(), 13)
	require.NoError(t, err)
	require.Equal(t, team.Ref{ID: 13, Name: "Arsenal"}, got.Team)
	require.Equal(t, 5, got.Record.Total)
	require.Equal(t, 3, got.Record.Wins)
	require.Equal(t, 1, got.Record.Draws)
	require.Equal(t, 1, got.Record.Losses)
	require.Equal(t, 2, got.Record.LongestWinStreak)
	require.InDelta(t, 60.0, got.Record.WinPercentage(), 1e-9)
	require.Equal(t, 1886, *got.Metadata.Founded)
	require.NotNil(t, got.MVP)
	require.Equal(t, int64(41), got.MVP.ID)
}

func TestStatsService_GetTeamStats_MetadataFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	teams := map[int64]team.Team{13: {ID: 13, Name: "Arsenal"}}
	lister := matchListerFunc(func(context.Context, int64) ([]match.Match, error) { return nil, nil })
	service := NewStatsService(staticResolver(teams, nil), lister, stubMetadata{err: ErrDependencyUnavailable}, nil)

	got, err := service.GetTeamStats(context.Background(), 13)
	require.NoError(t, err)
	require.Zero(t, got.Record.Total)
	require.Zero(t, got.Record.WinPercentage())
	require.Nil(t, got.Metadata.Founded)
	require.Nil(t, got.MVP)
}

func TestStatsService_CompareTeams(t *testing.T) {
	t.Parallel()

	teams := map[int64]team.Team{13: {ID: 13, Name: "Arsenal"}, 26: {ID: 26, Name: "Liverpool"}}
	lister := matchListerFunc(func(_ context.Context, id int64) ([]match.Match, error) {
		if id == 13 {
			return finishedFor(13, 26, [2]int{1, 0}), nil
		}
		return finishedFor(26, 13, [2]int{0, 0}, [2]int{0, 3}), nil
	})
	service := NewStatsService(staticResolver(teams, nil), lister, nil, nil)

	got, err := service.CompareTeams(context.Background(), 13, 26)
	require.NoError(t, err)
	require.Equal(t, "Arsenal", got.First.Team.Name)
	require.Equal(t, 1, got.First.Record.Wins)
	require.Equal(t, "Liverpool", got.Second.Team.Name)
	require.Equal(t, 2, got.Second.Record.Total)
	require.Equal(t, 1, got.Second.Record.Losses)

	_, err = service.CompareTeams(context.Background(), 13, 404)
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestStatsService_PredictMatch(t *testing.T) {
	t.Parallel()

	strong := []player.Player{{ID: 1, Rating: 8.0, Minutes: 900}}
	weak := []player.Player{{ID: 2, Rating: 6.0, Minutes: 900}}
	teams := map[int64]team.Team{
		13: {ID: 13, Name: "Arsenal", Players: strong},
		26: {ID: 26, Name: "Liverpool", Players: weak},
		30: {ID: 30, Name: "Everton", Players: weak},
	}
	service := NewStatsService(staticResolver(teams, nil), nil, nil, nil)

	got, err := service.PredictMatch(context.Background(), 13, 26)
	require.NoError(t, err)
	require.NotNil(t, got.PredictedWinner)
	require.Equal(t, int64(13), got.PredictedWinner.ID)
	require.Greater(t, got.HomeWin, got.AwayWin)
	require.InDelta(t, 1.0, got.HomeWin+got.AwayWin+got.Draw, 1e-9)

	even, err := service.PredictMatch(context.Background(), 26, 30)
	require.NoError(t, err)
	require.Nil(t, even.PredictedWinner)
	require.True(t, math.Abs(even.Draw-0.34) < 1e-9)
}
