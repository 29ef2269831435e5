package usecase

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
)

type stubSource struct {
	teams      map[int64]team.Team
	teamErr    error
	refs       []team.Ref
	fixtures   []match.Match
	fixtureErr error
	player     player.Player
	playerErr  error

	teamCalls    atomic.Int32
	fixtureCalls atomic.Int32
	playerCalls  atomic.Int32
}

func (s *stubSource) FetchTeam(_ context.Context, teamID int64) (team.Team, error) {
	s.teamCalls.Add(1)
	if s.teamErr != nil {
		return team.Team{}, s.teamErr
	}
	t, ok := s.teams[teamID]
	if !ok {
		return team.Team{}, ErrTeamNotFound
	}
	t.Players = append([]player.Player(nil), t.Players...)
	return t, nil
}

func (s *stubSource) SearchTeams(context.Context, string) ([]team.Ref, error) {
	return s.refs, nil
}

func (s *stubSource) FetchFixtures(context.Context, int64) ([]match.Match, error) {
	s.fixtureCalls.Add(1)
	if s.fixtureErr != nil {
		return nil, s.fixtureErr
	}
	return append([]match.Match(nil), s.fixtures...), nil
}

func (s *stubSource) FetchPlayer(context.Context, int64) (player.Player, error) {
	s.playerCalls.Add(1)
	return s.player, s.playerErr
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// resolverFunc adapts a function to TeamResolver.
type resolverFunc func(ctx context.Context, teamID int64) (team.Team, error)

func (f resolverFunc) GetTeamWithRoster(ctx context.Context, teamID int64) (team.Team, error) {
	return f(ctx, teamID)
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }
