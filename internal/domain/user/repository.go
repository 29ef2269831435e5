package user

import (
	"context"
	"errors"
)

var ErrUsernameTaken = errors.New("username already taken")

// Repository stores API accounts.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (User, bool, error)
	// Create fails with ErrUsernameTaken when the username exists.
	Create(ctx context.Context, u User) error
}
