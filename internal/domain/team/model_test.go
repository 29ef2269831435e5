package team

import (
	"testing"
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
)

func TestTeam_RosterFreshBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	window := 24 * time.Hour

	tests := []struct {
		name        string
		lastUpdated time.Time
		want        bool
	}{
		{name: "just inside window", lastUpdated: now.Add(-23*time.Hour - 59*time.Minute), want: true},
		{name: "just outside window", lastUpdated: now.Add(-24*time.Hour - time.Minute), want: false},
		{name: "never updated", lastUpdated: time.Time{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Team{ID: 1, LastUpdated: tt.lastUpdated}.RosterFresh(now, window)
			if got != tt.want {
				t.Fatalf("RosterFresh()=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestTeam_MatchesFreshNilIsStale(t *testing.T) {
	now := time.Now()
	if (Team{ID: 1}).MatchesFresh(now, 24*time.Hour) {
		t.Fatalf("expected nil LastUpdatedMatches to be stale")
	}
	recent := now.Add(-time.Hour)
	if !(Team{ID: 1, LastUpdatedMatches: &recent}).MatchesFresh(now, 24*time.Hour) {
		t.Fatalf("expected recent fixtures refresh to be fresh")
	}
}

func TestTeam_MVP(t *testing.T) {
	if (Team{}).MVP() != nil {
		t.Fatalf("expected nil MVP for empty roster")
	}

	tm := Team{Players: []player.Player{{ID: 1, Rating: 6.9}, {ID: 2, Rating: 7.4}, {ID: 3, Rating: 7.1}}}
	mvp := tm.MVP()
	if mvp == nil || mvp.ID != 2 {
		t.Fatalf("unexpected MVP: %+v", mvp)
	}
}
