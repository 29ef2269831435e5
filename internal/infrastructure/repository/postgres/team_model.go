package postgres

import (
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
)

type teamTableModel struct {
	ID                 int64      `db:"id"`
	Name               string     `db:"name"`
	Country            string     `db:"country"`
	LastUpdated        time.Time  `db:"last_updated"`
	LastUpdatedMatches *time.Time `db:"last_updated_matches"`
}

func teamToRow(t team.Team) teamTableModel {
	return teamTableModel{
		ID:                 t.ID,
		Name:               t.Name,
		Country:            t.Country,
		LastUpdated:        t.LastUpdated.UTC(),
		LastUpdatedMatches: t.LastUpdatedMatches,
	}
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:                 m.ID,
		Name:               m.Name,
		Country:            m.Country,
		LastUpdated:        m.LastUpdated,
		LastUpdatedMatches: m.LastUpdatedMatches,
	}
}
