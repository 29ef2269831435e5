package audit

import "context"

// Repository appends and lists audited requests.
type Repository interface {
	Append(ctx context.Context, r Request) error
	// ListByUser returns the user's requests, newest first.
	ListByUser(ctx context.Context, userID string) ([]Request, error)
}
