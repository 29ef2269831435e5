package postgres

import (
	"time"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/audit"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/user"
)

type userTableModel struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (m userTableModel) toDomain() user.User {
	return user.User{ID: m.ID, Username: m.Username, PasswordHash: m.PasswordHash, CreatedAt: m.CreatedAt}
}

type requestTableModel struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Endpoint    string    `db:"endpoint"`
	RequestedAt time.Time `db:"requested_at"`
}

func (m requestTableModel) toDomain() audit.Request {
	return audit.Request{ID: m.ID, UserID: m.UserID, Endpoint: m.Endpoint, Timestamp: m.RequestedAt}
}
