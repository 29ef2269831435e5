package usecase

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = crerr.New("invalid input")
	ErrNotFound              = crerr.New("resource not found")
	ErrUnauthorized          = crerr.New("unauthorized")
	ErrConflict              = crerr.New("conflict")
	ErrDependencyUnavailable = crerr.New("dependency unavailable")

	ErrTeamNotFound   = crerr.New("team not found")
	ErrPlayerNotFound = crerr.New("player not found")
	ErrParse          = crerr.New("upstream payload could not be parsed")
)
