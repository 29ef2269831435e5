package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/audit"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/user"
	qb "github.com/lucasAG-UNQ/FutbolApi/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, bool, error) {
	query, args, err := qb.Select(qb.ColumnsOf(userTableModel{})...).From("users").
		Where(qb.Eq("username", username)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build select user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	query, args, err := qb.InsertModels("users", []userTableModel{{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt.UTC(),
	}}, "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

type AuditRepository struct {
	db *sqlx.DB
}

var _ audit.Repository = (*AuditRepository)(nil)

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, req audit.Request) error {
	query, args, err := qb.InsertModels("requests", []requestTableModel{{
		ID:          req.ID,
		UserID:      req.UserID,
		Endpoint:    req.Endpoint,
		RequestedAt: req.Timestamp.UTC(),
	}}, "")
	if err != nil {
		return fmt.Errorf("build insert request query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListByUser(ctx context.Context, userID string) ([]audit.Request, error) {
	query, args, err := qb.Select(qb.ColumnsOf(requestTableModel{})...).From("requests").
		Where(qb.Eq("user_id", userID)).
		OrderBy("requested_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select requests query: %w", err)
	}

	var rows []requestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select requests: %w", err)
	}

	out := make([]audit.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
