package postgres

import (
	"database/sql"
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
)

type matchTableModel struct {
	ID           int64          `db:"id"`
	ExternalID   int64          `db:"external_id"`
	HomeTeamID   int64          `db:"home_team_id"`
	HomeTeamName string         `db:"home_team_name"`
	AwayTeamID   int64          `db:"away_team_id"`
	AwayTeamName string         `db:"away_team_name"`
	MatchDate    time.Time      `db:"match_date"`
	Tournament   sql.NullString `db:"tournament"`
	HomeScore    sql.NullInt32  `db:"home_score"`
	AwayScore    sql.NullInt32  `db:"away_score"`
}

// matchInsertModel omits the serial id so inserts let the database assign it.
type matchInsertModel struct {
	ExternalID   int64          `db:"external_id"`
	HomeTeamID   int64          `db:"home_team_id"`
	HomeTeamName string         `db:"home_team_name"`
	AwayTeamID   int64          `db:"away_team_id"`
	AwayTeamName string         `db:"away_team_name"`
	MatchDate    time.Time      `db:"match_date"`
	Tournament   sql.NullString `db:"tournament"`
	HomeScore    sql.NullInt32  `db:"home_score"`
	AwayScore    sql.NullInt32  `db:"away_score"`
}

func matchToRow(m match.Match) matchInsertModel {
	return matchInsertModel{
		ExternalID:   m.ExternalID,
		HomeTeamID:   m.HomeTeam.ID,
		HomeTeamName: m.HomeTeam.Name,
		AwayTeamID:   m.AwayTeam.ID,
		AwayTeamName: m.AwayTeam.Name,
		MatchDate:    match.Day(m.Date),
		Tournament:   toNullString(m.Tournament),
		HomeScore:    toNullInt32(m.HomeScore),
		AwayScore:    toNullInt32(m.AwayScore),
	}
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		HomeTeam:   team.Ref{ID: m.HomeTeamID, Name: m.HomeTeamName},
		AwayTeam:   team.Ref{ID: m.AwayTeamID, Name: m.AwayTeamName},
		Date:       match.Day(m.MatchDate),
		Tournament: fromNullString(m.Tournament),
		HomeScore:  fromNullInt32(m.HomeScore),
		AwayScore:  fromNullInt32(m.AwayScore),
	}
}
