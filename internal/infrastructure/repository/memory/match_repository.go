package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
)

type MatchRepository struct {
	mu         sync.RWMutex
	byExternal map[int64]match.Match
	nextID     int64
}

var _ match.Repository = (*MatchRepository)(nil)

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{byExternal: make(map[int64]match.Match)}
}

func (r *MatchRepository) ListFromDate(_ context.Context, teamID int64, day time.Time) ([]match.Match, error) {
	from := match.Day(day)
	return r.filter(func(m match.Match) bool {
		return m.Involves(teamID) && !m.Date.Before(from)
	}), nil
}

func (r *MatchRepository) ListBeforeDate(_ context.Context, teamID int64, day time.Time) ([]match.Match, error) {
	before := match.Day(day)
	return r.filter(func(m match.Match) bool {
		return m.Involves(teamID) && m.Date.Before(before)
	}), nil
}

func (r *MatchRepository) filter(keep func(match.Match) bool) []match.Match {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.byExternal {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ExternalID < out[j].ExternalID
	})
	return out
}

func (r *MatchRepository) UpsertByExternalID(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		item.Date = match.Day(item.Date)
		existing, ok := r.byExternal[item.ExternalID]
		if !ok {
			r.nextID++
			item.ID = r.nextID
			r.byExternal[item.ExternalID] = item
			continue
		}

		existing.Date = item.Date
		existing.Tournament = item.Tournament
		existing.HomeScore = item.HomeScore
		existing.AwayScore = item.AwayScore
		r.byExternal[item.ExternalID] = existing
	}
	return nil
}
