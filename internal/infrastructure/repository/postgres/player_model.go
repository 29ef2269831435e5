package postgres

import (
	"database/sql"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
)

type playerTableModel struct {
	ID          int64          `db:"id"`
	TeamID      int64          `db:"team_id"`
	Name        sql.NullString `db:"name"`
	Position    sql.NullString `db:"position"`
	Tournament  sql.NullString `db:"tournament"`
	Season      sql.NullString `db:"season"`
	Apps        int            `db:"apps"`
	Goals       int            `db:"goals"`
	Assists     int            `db:"assists"`
	Minutes     int            `db:"minutes"`
	YellowCards int            `db:"yellow_cards"`
	RedCards    int            `db:"red_cards"`
	Age         int            `db:"age"`
	Rating      float64        `db:"rating"`
}

func playerToRow(p player.Player) playerTableModel {
	return playerTableModel{
		ID:          p.ID,
		TeamID:      p.TeamID,
		Name:        toNullString(p.Name),
		Position:    toNullString(p.Position),
		Tournament:  toNullString(p.Tournament),
		Season:      toNullString(p.Season),
		Apps:        p.Apps,
		Goals:       p.Goals,
		Assists:     p.Assists,
		Minutes:     p.Minutes,
		YellowCards: p.YellowCards,
		RedCards:    p.RedCards,
		Age:         p.Age,
		Rating:      p.Rating,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:          m.ID,
		TeamID:      m.TeamID,
		Name:        fromNullString(m.Name),
		Position:    fromNullString(m.Position),
		Tournament:  fromNullString(m.Tournament),
		Season:      fromNullString(m.Season),
		Apps:        m.Apps,
		Goals:       m.Goals,
		Assists:     m.Assists,
		Minutes:     m.Minutes,
		YellowCards: m.YellowCards,
		RedCards:    m.RedCards,
		Age:         m.Age,
		Rating:      m.Rating,
	}
}
