package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	qb "github.com/lucasAG-UNQ/FutbolApi/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	query, args, err := qb.Select(qb.ColumnsOf(playerTableModel{})...).From("players").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player id=%d: %w", id, err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid player: %w", err)
	}

	row := playerToRow(p)
	query, args, err := qb.InsertModels("players", []playerTableModel{row}, upsertSuffix("id", qb.ColumnsOf(row)...)+", updated_at = NOW()")
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player id=%d: %w", p.ID, err)
	}
	return nil
}
