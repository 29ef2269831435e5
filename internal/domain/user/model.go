package user

import (
	"fmt"
	"strings"
	"time"
)

// User is an API account. Only the bcrypt hash of the password is kept.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}

	return nil
}

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID   string
	Username string
}
