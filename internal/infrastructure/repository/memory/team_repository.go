package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
)

type TeamRepository struct {
	mu      sync.RWMutex
	teams   map[int64]team.Team
	players *PlayerRepository
}

var _ team.Repository = (*TeamRepository)(nil)

func NewTeamRepository(players *PlayerRepository) *TeamRepository {
	if players == nil {
		players = NewPlayerRepository()
	}
	return &TeamRepository{teams: make(map[int64]team.Team), players: players}
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	t, ok := r.teams[id]
	r.mu.RUnlock()
	if !ok {
		return team.Team{}, false, nil
	}

	t.Players = r.players.listByTeam(id)
	return t, true, nil
}

func (r *TeamRepository) Upsert(_ context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid team: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	roster := t.Players
	t.Players = nil
	if t.LastUpdatedMatches != nil {
		stamp := *t.LastUpdatedMatches
		t.LastUpdatedMatches = &stamp
	}
	r.teams[t.ID] = t
	r.players.replaceTeam(t.ID, roster)
	return nil
}

func (r *TeamRepository) SetMatchesUpdatedAt(_ context.Context, id int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.teams[id]
	if !ok {
		return nil
	}
	t.LastUpdatedMatches = &at
	r.teams[id] = t
	return nil
}
