package audit

import "time"

// Request is one audited API call made by an authenticated user.
type Request struct {
	ID        string
	UserID    string
	Endpoint  string
	Timestamp time.Time
}
