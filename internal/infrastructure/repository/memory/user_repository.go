package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/audit"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/user"
)

type UserRepository struct {
	mu         sync.RWMutex
	byUsername map[string]user.User
}

var _ user.Repository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{byUsername: make(map[string]user.User)}
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUsername[strings.TrimSpace(username)]
	return u, ok, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUsername[u.Username]; exists {
		return user.ErrUsernameTaken
	}
	r.byUsername[u.Username] = u
	return nil
}

type AuditRepository struct {
	mu     sync.RWMutex
	byUser map[string][]audit.Request
}

var _ audit.Repository = (*AuditRepository)(nil)

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{byUser: make(map[string][]audit.Request)}
}

func (r *AuditRepository) Append(_ context.Context, req audit.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byUser[req.UserID] = append(r.byUser[req.UserID], req)
	return nil
}

func (r *AuditRepository) ListByUser(_ context.Context, userID string) ([]audit.Request, error) {
	r.mu.RLock()
	rows := r.byUser[userID]
	out := make([]audit.Request, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i])
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}
