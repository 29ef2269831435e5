package team

import (
	"fmt"
	"strings"
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
)

// Team is a club as published by the scoring site, keyed by its external id.
type Team struct {
	ID                 int64
	Name               string
	Country            string
	Players            []player.Player
	LastUpdated        time.Time
	LastUpdatedMatches *time.Time
}

// Ref is the lightweight id+name projection used in search results and match listings.
type Ref struct {
	ID   int64
	Name string
}

func (t Team) Ref() Ref {
	return Ref{ID: t.ID, Name: t.Name}
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id must be greater than zero")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// RosterFresh reports whether the roster was refreshed less than window ago.
func (t Team) RosterFresh(now time.Time, window time.Duration) bool {
	if t.LastUpdated.IsZero() {
		return false
	}
	return now.Sub(t.LastUpdated) < window
}

// MatchesFresh reports whether fixtures were refreshed less than window ago.
// A team whose fixtures were never scraped is never fresh.
func (t Team) MatchesFresh(now time.Time, window time.Duration) bool {
	if t.LastUpdatedMatches == nil {
		return false
	}
	return now.Sub(*t.LastUpdatedMatches) < window
}

// MVP returns the highest rated player, or nil when the roster is empty.
func (t Team) MVP() *player.Player {
	var best *player.Player
	for i := range t.Players {
		if best == nil || t.Players[i].Rating > best.Rating {
			best = &t.Players[i]
		}
	}
	if best == nil {
		return nil
	}
	out := *best
	return &out
}
