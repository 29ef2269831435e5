package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/singleflight"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/metrics"
)

const defaultFixtureWorkers = 4

// TeamResolver resolves a team through the roster cache.
type TeamResolver interface {
	GetTeamWithRoster(ctx context.Context, teamID int64) (team.Team, error)
}

type MatchServiceConfig struct {
	FreshnessWindow time.Duration
	// Workers bounds concurrent opponent lookups during a fixture refresh.
	Workers int
}

type MatchService struct {
	teams     TeamResolver
	teamRepo  team.Repository
	matchRepo match.Repository
	source    TeamSource
	publisher EventPublisher
	clock     clockwork.Clock
	cfg       MatchServiceConfig
	logger    *logging.Logger
	flight    singleflight.Group
}

func NewMatchService(
	teams TeamResolver,
	teamRepo team.Repository,
	matchRepo match.Repository,
	source TeamSource,
	publisher EventPublisher,
	clock clockwork.Clock,
	cfg MatchServiceConfig,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.FreshnessWindow <= 0 {
		cfg.FreshnessWindow = DefaultFreshnessWindow
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultFixtureWorkers
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}

	return &MatchService{
		teams:     teams,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		source:    source,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
		logger:    logger,
	}
}

// GetNextMatches returns stored fixtures from today on. When none are stored
// and the fixture list is stale it rescrapes and returns fixtures after today.
func (s *MatchService) GetNextMatches(ctx context.Context, teamID int64) (_ []match.Match, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetNextMatches")
	defer observe(span, "match.next", time.Now(), &err)

	t, err := s.teams.GetTeamWithRoster(ctx, teamID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	today := match.Day(now)
	stored, err := s.matchRepo.ListFromDate(ctx, t.ID, today)
	if err != nil {
		return nil, fmt.Errorf("list matches from date: %w", err)
	}
	if len(stored) > 0 {
		metrics.CacheLookups.WithLabelValues("fixtures", "hit").Inc()
		return stored, nil
	}
	if t.MatchesFresh(now, s.cfg.FreshnessWindow) {
		metrics.CacheLookups.WithLabelValues("fixtures", "hit").Inc()
		return []match.Match{}, nil
	}

	metrics.CacheLookups.WithLabelValues("fixtures", "refresh").Inc()
	fixtures, err := s.refreshFixtures(ctx, t)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(fixtures))
	for _, m := range fixtures {
		if m.Date.After(today) {
			out = append(out, m)
		}
	}
	return out, nil
}

// GetFinishedMatches returns the team's matches dated before today,
// refreshing the fixture list first when it is missing or stale.
func (s *MatchService) GetFinishedMatches(ctx context.Context, teamID int64) (_ []match.Match, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetFinishedMatches")
	defer observe(span, "match.finished", time.Now(), &err)

	t, err := s.teams.GetTeamWithRoster(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.finishedMatches(ctx, t)
}

func (s *MatchService) finishedMatches(ctx context.Context, t team.Team) ([]match.Match, error) {
	now := s.clock.Now()
	today := match.Day(now)

	items, err := s.matchRepo.ListBeforeDate(ctx, t.ID, today)
	if err != nil {
		return nil, fmt.Errorf("list matches before date: %w", err)
	}
	if len(items) > 0 && t.MatchesFresh(now, s.cfg.FreshnessWindow) {
		return items, nil
	}

	if _, err := s.GetNextMatches(ctx, t.ID); err != nil {
		return nil, err
	}
	items, err = s.matchRepo.ListBeforeDate(ctx, t.ID, today)
	if err != nil {
		return nil, fmt.Errorf("list matches before date: %w", err)
	}
	return items, nil
}

func (s *MatchService) refreshFixtures(ctx context.Context, t team.Team) ([]match.Match, error) {
	out, err, _ := s.flight.Do(strconv.FormatInt(t.ID, 10), func() (any, error) {
		return s.refreshFixturesOnce(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return out.([]match.Match), nil
}

func (s *MatchService) refreshFixturesOnce(ctx context.Context, t team.Team) ([]match.Match, error) {
	fixtures, err := s.source.FetchFixtures(ctx, t.ID)
	if err != nil {
		return nil, fmt.Errorf("scrape fixtures team=%d: %w", t.ID, err)
	}
	if len(fixtures) == 0 {
		s.logger.InfoContext(ctx, "scraped fixture list is empty", "team_id", t.ID)
		return fixtures, nil
	}

	refs, err := s.resolveOpponents(ctx, t, fixtures)
	if err != nil {
		return nil, err
	}
	for i := range fixtures {
		if ref, ok := refs[fixtures[i].HomeTeam.ID]; ok {
			fixtures[i].HomeTeam = ref
		}
		if ref, ok := refs[fixtures[i].AwayTeam.ID]; ok {
			fixtures[i].AwayTeam = ref
		}
	}

	if err := s.matchRepo.UpsertByExternalID(ctx, fixtures); err != nil {
		return nil, fmt.Errorf("upsert fixtures team=%d: %w", t.ID, err)
	}

	now := s.clock.Now()
	if err := s.teamRepo.SetMatchesUpdatedAt(ctx, t.ID, now); err != nil {
		return nil, fmt.Errorf("stamp fixtures refresh team=%d: %w", t.ID, err)
	}

	s.logger.InfoContext(ctx, "fixtures refreshed", "team_id", t.ID, "fixtures", len(fixtures))
	if err := s.publisher.Publish(ctx, Event{Type: EventFixturesRefreshed, TeamID: t.ID, Count: len(fixtures), OccurredAt: now}); err != nil {
		s.logger.WarnContext(ctx, "publish event failed", "type", EventFixturesRefreshed, "team_id", t.ID, "error", err)
	}
	return fixtures, nil
}

// resolveOpponents maps every team id in fixtures to its cached identity.
// An opponent the source does not know keeps the name printed in the fixture
// list; any other lookup failure aborts the refresh.
func (s *MatchService) resolveOpponents(ctx context.Context, t team.Team, fixtures []match.Match) (map[int64]team.Ref, error) {
	refs := map[int64]team.Ref{t.ID: t.Ref()}
	opponents := make([]int64, 0, len(fixtures))
	seen := map[int64]struct{}{t.ID: {}}
	for _, m := range fixtures {
		for _, id := range []int64{m.HomeTeam.ID, m.AwayTeam.ID} {
			if _, ok := seen[id]; ok || id <= 0 {
				continue
			}
			seen[id] = struct{}{}
			opponents = append(opponents, id)
		}
	}
	if len(opponents) == 0 {
		return refs, nil
	}

	pool, err := ants.NewPool(min(s.cfg.Workers, len(opponents)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		workers  sync.WaitGroup
		firstErr error
	)
	for _, id := range opponents {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			opponent, err := s.teams.GetTeamWithRoster(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				refs[id] = opponent.Ref()
			case errors.Is(err, ErrTeamNotFound):
				s.logger.WarnContext(ctx, "opponent not found, keeping fixture name", "team_id", t.ID, "opponent_id", id)
			case firstErr == nil:
				firstErr = fmt.Errorf("resolve opponent=%d: %w", id, err)
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit opponent lookup to worker pool: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return refs, nil
}
