package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/player"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	qb "github.com/lucasAG-UNQ/FutbolApi/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

var _ team.Repository = (*TeamRepository)(nil)

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select(qb.ColumnsOf(teamTableModel{})...).From("teams").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team id=%d: %w", id, err)
	}

	players, err := r.listRoster(ctx, id)
	if err != nil {
		return team.Team{}, false, err
	}

	out := row.toDomain()
	out.Players = players
	return out, true, nil
}

func (r *TeamRepository) listRoster(ctx context.Context, teamID int64) ([]player.Player, error) {
	query, args, err := qb.Select(qb.ColumnsOf(playerTableModel{})...).From("players").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster team_id=%d: %w", teamID, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Upsert writes the team row and swaps its roster inside one transaction.
func (r *TeamRepository) Upsert(ctx context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid team: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for team upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	teamRow := teamToRow(t)
	query, args, err := qb.InsertModels("teams", []teamTableModel{teamRow}, upsertSuffix("id", qb.ColumnsOf(teamRow)...))
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert team id=%d: %w", t.ID, err)
	}

	query, args, err = qb.DeleteFrom("players").Where(qb.Eq("team_id", t.ID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete roster query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete roster team_id=%d: %w", t.ID, err)
	}

	if len(t.Players) > 0 {
		rows := make([]playerTableModel, 0, len(t.Players))
		for _, p := range t.Players {
			p.TeamID = t.ID
			rows = append(rows, playerToRow(p))
		}
		query, args, err = qb.InsertModels("players", rows, upsertSuffix("id", qb.ColumnsOf(rows[0])...)+", updated_at = NOW()")
		if err != nil {
			return fmt.Errorf("build insert roster query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert roster team_id=%d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit team upsert: %w", err)
	}
	return nil
}

func (r *TeamRepository) SetMatchesUpdatedAt(ctx context.Context, id int64, at time.Time) error {
	query, args, err := qb.Update("teams").
		Set("last_updated_matches", at.UTC()).
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update matches stamp query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update matches stamp team_id=%d: %w", id, err)
	}
	return nil
}
