package match

import (
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
)

// Match is a fixture between two teams. Date is a calendar day at UTC midnight.
type Match struct {
	ID         int64
	ExternalID int64
	HomeTeam   team.Ref
	AwayTeam   team.Ref
	Date       time.Time
	Tournament *string
	HomeScore  *int
	AwayScore  *int
}

// Finished reports whether both scores are known.
func (m Match) Finished() bool {
	return m.HomeScore != nil && m.AwayScore != nil
}

// Upcoming reports whether the match is scheduled after today and has no score yet.
func (m Match) Upcoming(today time.Time) bool {
	return m.HomeScore == nil && m.AwayScore == nil && m.Date.After(Day(today))
}

// Involves reports whether teamID plays either side.
func (m Match) Involves(teamID int64) bool {
	return m.HomeTeam.ID == teamID || m.AwayTeam.ID == teamID
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, mo, d := t.UTC().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
