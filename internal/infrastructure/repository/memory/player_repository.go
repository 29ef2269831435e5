package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
)

// PlayerRepository is the players table. TeamRepository writes rosters into it.
type PlayerRepository struct {
	mu   sync.RWMutex
	byID map[int64]player.Player
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{byID: make(map[int64]player.Player)}
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	return p, ok, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid player: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[p.ID] = p
	return nil
}

func (r *PlayerRepository) listByTeam(teamID int64) []player.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, p := range r.byID {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *PlayerRepository) replaceTeam(teamID int64, roster []player.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.byID {
		if p.TeamID == teamID {
			delete(r.byID, id)
		}
	}
	for _, p := range roster {
		p.TeamID = teamID
		r.byID[p.ID] = p
	}
}
