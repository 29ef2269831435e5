package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
)

// TeamStats is a team's record over its finished matches plus club metadata.
type TeamStats struct {
	Team     team.Ref
	Record   match.Record
	Metadata TeamMetadata
	MVP      *player.Player
}

type TeamComparison struct {
	First  TeamStats
	Second TeamStats
}

// FinishedMatchLister loads a team's finished matches, refreshing stale fixture lists.
type FinishedMatchLister interface {
	GetFinishedMatches(ctx context.Context, teamID int64) ([]match.Match, error)
}

type StatsService struct {
	teams    TeamResolver
	matches  FinishedMatchLister
	metadata MetadataProvider
	logger   *logging.Logger
}

func NewStatsService(teams TeamResolver, matches FinishedMatchLister, metadata MetadataProvider, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{
		teams:    teams,
		matches:  matches,
		metadata: metadata,
		logger:   logger,
	}
}

func (s *StatsService) GetTeamStats(ctx context.Context, teamID int64) (_ TeamStats, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GetTeamStats")
	defer observe(span, "stats.team", time.Now(), &err)

	t, err := s.teams.GetTeamWithRoster(ctx, teamID)
	if err != nil {
		return TeamStats{}, err
	}
	finished, err := s.matches.GetFinishedMatches(ctx, t.ID)
	if err != nil {
		return TeamStats{}, err
	}

	return TeamStats{
		Team:     t.Ref(),
		Record:   match.Summarize(t.ID, finished),
		Metadata: s.lookupMetadata(ctx, t),
		MVP:      t.MVP(),
	}, nil
}

// lookupMetadata never fails the stats call; missing metadata leaves the fields nil.
func (s *StatsService) lookupMetadata(ctx context.Context, t team.Team) TeamMetadata {
	if s.metadata == nil {
		return TeamMetadata{}
	}
	meta, ok, err := s.metadata.LookupTeam(ctx, t.Name)
	if err != nil {
		s.logger.WarnContext(ctx, "team metadata lookup failed", "team_id", t.ID, "team_name", t.Name, "error", err)
		return TeamMetadata{}
	}
	if !ok {
		s.logger.DebugContext(ctx, "no team metadata match", "team_id", t.ID, "team_name", t.Name)
		return TeamMetadata{}
	}
	return meta
}

// CompareTeams computes both teams' stats concurrently.
func (s *StatsService) CompareTeams(ctx context.Context, firstID, secondID int64) (_ TeamComparison, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.CompareTeams")
	defer observe(span, "stats.compare", time.Now(), &err)

	var out TeamComparison
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		stats, err := s.GetTeamStats(ctx, firstID)
		if err != nil {
			return fmt.Errorf("stats team=%d: %w", firstID, err)
		}
		out.First = stats
		return nil
	})
	p.Go(func(ctx context.Context) error {
		stats, err := s.GetTeamStats(ctx, secondID)
		if err != nil {
			return fmt.Errorf("stats team=%d: %w", secondID, err)
		}
		out.Second = stats
		return nil
	})
	if err := p.Wait(); err != nil {
		return TeamComparison{}, err
	}

	return out, nil
}

// PredictMatch estimates outcome probabilities from the two rosters' strength.
func (s *StatsService) PredictMatch(ctx context.Context, homeID, awayID int64) (_ team.Prediction, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PredictMatch")
	defer observe(span, "stats.predict", time.Now(), &err)

	home, err := s.teams.GetTeamWithRoster(ctx, homeID)
	if err != nil {
		return team.Prediction{}, err
	}
	away, err := s.teams.GetTeamWithRoster(ctx, awayID)
	if err != nil {
		return team.Prediction{}, err
	}

	return team.Predict(home, away), nil
}
