package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/metrics"
)

const DefaultFreshnessWindow = 24 * time.Hour

type TeamService struct {
	teamRepo  team.Repository
	source    TeamSource
	locker    RefreshLocker
	publisher EventPublisher
	clock     clockwork.Clock
	window    time.Duration
	logger    *logging.Logger
	flight    singleflight.Group
}

func NewTeamService(
	teamRepo team.Repository,
	source TeamSource,
	locker RefreshLocker,
	publisher EventPublisher,
	clock clockwork.Clock,
	window time.Duration,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if window <= 0 {
		window = DefaultFreshnessWindow
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}

	return &TeamService{
		teamRepo:  teamRepo,
		source:    source,
		locker:    locker,
		publisher: publisher,
		clock:     clock,
		window:    window,
		logger:    logger,
	}
}

// GetTeamWithRoster serves the stored team while it is fresh and otherwise
// rescrapes, reconciles and stores it. A failed scrape leaves the stored row as it was.
func (s *TeamService) GetTeamWithRoster(ctx context.Context, teamID int64) (_ team.Team, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeamWithRoster")
	defer observe(span, "team.get_with_roster", time.Now(), &err)

	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}

	stored, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if exists && stored.RosterFresh(s.clock.Now(), s.window) {
		metrics.CacheLookups.WithLabelValues("team", "hit").Inc()
		stored.Players = player.MergeRoster(stored.Players)
		return stored, nil
	}

	metrics.CacheLookups.WithLabelValues("team", "refresh").Inc()
	return s.refresh(ctx, teamID)
}

func (s *TeamService) refresh(ctx context.Context, teamID int64) (team.Team, error) {
	key := strconv.FormatInt(teamID, 10)
	out, err, shared := s.flight.Do(key, func() (any, error) {
		var refreshed team.Team
		err := s.withLock(ctx, "team:"+key, func(ctx context.Context) error {
			var err error
			refreshed, err = s.refreshLocked(ctx, teamID)
			return err
		})
		return refreshed, err
	})
	if shared {
		s.logger.DebugContext(ctx, "team refresh shared with concurrent caller", "team_id", teamID)
	}
	if err != nil {
		return team.Team{}, err
	}
	return out.(team.Team), nil
}

func (s *TeamService) refreshLocked(ctx context.Context, teamID int64) (team.Team, error) {
	// Another replica may have refreshed while we waited for the lock.
	if inv, ok := s.teamRepo.(TeamRowInvalidator); ok {
		inv.Invalidate(ctx, teamID)
	}
	stored, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	now := s.clock.Now()
	if exists && stored.RosterFresh(now, s.window) {
		stored.Players = player.MergeRoster(stored.Players)
		return stored, nil
	}

	scraped, err := s.source.FetchTeam(ctx, teamID)
	if err != nil {
		s.logger.WarnContext(ctx, "scrape team failed", "team_id", teamID, "has_stale_copy", exists, "error", err)
		return team.Team{}, fmt.Errorf("scrape team=%d: %w", teamID, err)
	}
	if scraped.ID <= 0 {
		scraped.ID = teamID
	}

	scraped.Players = player.MergeRoster(scraped.Players)
	for i := range scraped.Players {
		scraped.Players[i].TeamID = scraped.ID
	}
	scraped.LastUpdated = now
	if exists {
		scraped.LastUpdatedMatches = stored.LastUpdatedMatches
	}

	if err := s.teamRepo.Upsert(ctx, scraped); err != nil {
		return team.Team{}, fmt.Errorf("upsert team=%d: %w", scraped.ID, err)
	}

	s.logger.InfoContext(ctx, "team refreshed", "team_id", scraped.ID, "players", len(scraped.Players))
	s.publish(ctx, Event{Type: EventTeamRefreshed, TeamID: scraped.ID, Count: len(scraped.Players), OccurredAt: now})
	return scraped, nil
}

func (s *TeamService) withLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if s.locker == nil {
		return fn(ctx)
	}
	return s.locker.WithLock(ctx, key, fn)
}

func (s *TeamService) publish(ctx context.Context, event Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "publish event failed", "type", event.Type, "team_id", event.TeamID, "error", err)
	}
}

// SearchTeams returns the teams the scoring site lists for query.
func (s *TeamService) SearchTeams(ctx context.Context, query string) (_ []team.Ref, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SearchTeams")
	defer observe(span, "team.search", time.Now(), &err)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}

	items, err := s.source.SearchTeams(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search teams: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no teams match %q", ErrNotFound, query)
	}

	return items, nil
}
