package whoscored

import (
	"context"
	"fmt"
	"strings"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

// Scraper turns raw pages from the Client into domain values.
type Scraper struct {
	client *Client
	logger *logging.Logger
}

var _ usecase.TeamSource = (*Scraper)(nil)

func NewScraper(client *Client, logger *logging.Logger) *Scraper {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scraper{client: client, logger: logger}
}

// FetchTeam reads the statistics feed and, when it lists no players, falls
// back to the name printed on the team page.
func (s *Scraper) FetchTeam(ctx context.Context, teamID int64) (team.Team, error) {
	body, status, err := s.client.FetchTeamStats(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if !isSuccess(status) {
		return team.Team{}, fmt.Errorf("%w: team=%d: statistics feed status=%d", usecase.ErrTeamNotFound, teamID, status)
	}

	parsed, rosterPresent, err := ParseTeamStats(body, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if rosterPresent {
		return parsed, nil
	}

	s.logger.DebugContext(ctx, "statistics feed has no players, reading team page", "team_id", teamID)
	page, status, err := s.client.FetchTeamPage(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if !isSuccess(status) {
		return team.Team{}, fmt.Errorf("%w: team=%d: team page status=%d", usecase.ErrTeamNotFound, teamID, status)
	}
	name, ok := ParseTeamPageName(page)
	if !ok || name == "" {
		return team.Team{}, fmt.Errorf("%w: team=%d", usecase.ErrTeamNotFound, teamID)
	}

	return team.Team{ID: teamID, Name: name, Players: []player.Player{}}, nil
}

func (s *Scraper) SearchTeams(ctx context.Context, query string) ([]team.Ref, error) {
	body, status, err := s.client.FetchSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		s.logger.WarnContext(ctx, "search page returned non-success status", "query", query, "status", status)
		return []team.Ref{}, nil
	}
	return ParseSearch(body)
}

func (s *Scraper) FetchFixtures(ctx context.Context, teamID int64) ([]match.Match, error) {
	body, status, err := s.client.FetchFixtures(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		s.logger.WarnContext(ctx, "fixtures page returned non-success status", "team_id", teamID, "status", status)
		return []match.Match{}, nil
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		s.logger.WarnContext(ctx, "fixtures page body is empty", "team_id", teamID)
		return []match.Match{}, nil
	}
	return ParseFixtures(body)
}

func (s *Scraper) FetchPlayer(ctx context.Context, playerID int64) (player.Player, error) {
	body, status, err := s.client.FetchPlayerStats(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}
	if !isSuccess(status) {
		return player.Player{}, fmt.Errorf("%w: player=%d: statistics feed status=%d", usecase.ErrPlayerNotFound, playerID, status)
	}
	return ParsePlayerStats(body, playerID)
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}
