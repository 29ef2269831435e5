package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	qb "github.com/lucasAG-UNQ/FutbolApi/internal/platform/querybuilder"
)

// maxMatchesPerInsert keeps multi-row inserts well under the bind parameter limit.
const maxMatchesPerInsert = 500

type MatchRepository struct {
	db *sqlx.DB
}

var _ match.Repository = (*MatchRepository)(nil)

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) ListFromDate(ctx context.Context, teamID int64, day time.Time) ([]match.Match, error) {
	return r.list(ctx, teamID, qb.Gte("match_date", match.Day(day)))
}

func (r *MatchRepository) ListBeforeDate(ctx context.Context, teamID int64, day time.Time) ([]match.Match, error) {
	return r.list(ctx, teamID, qb.Lt("match_date", match.Day(day)))
}

func (r *MatchRepository) list(ctx context.Context, teamID int64, dateCond qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select(qb.ColumnsOf(matchTableModel{})...).From("matches").
		Where(
			qb.Or(qb.Eq("home_team_id", teamID), qb.Eq("away_team_id", teamID)),
			dateCond,
		).
		OrderBy("match_date", "external_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches team_id=%d: %w", teamID, err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) UpsertByExternalID(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	// Postgres rejects a multi-row upsert that touches the same key twice.
	byExternalID := make(map[int64]int, len(items))
	rows := make([]matchInsertModel, 0, len(items))
	for _, item := range items {
		row := matchToRow(item)
		if idx, ok := byExternalID[row.ExternalID]; ok {
			rows[idx] = row
			continue
		}
		byExternalID[row.ExternalID] = len(rows)
		rows = append(rows, row)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for matches upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	suffix := "ON CONFLICT (external_id) DO UPDATE SET " +
		"match_date = EXCLUDED.match_date, tournament = EXCLUDED.tournament, " +
		"home_score = EXCLUDED.home_score, away_score = EXCLUDED.away_score"
	for start := 0; start < len(rows); start += maxMatchesPerInsert {
		end := min(start+maxMatchesPerInsert, len(rows))
		query, args, err := qb.InsertModels("matches", rows[start:end], suffix)
		if err != nil {
			return fmt.Errorf("build upsert matches query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert matches: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit matches upsert: %w", err)
	}
	return nil
}
