package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/audit"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/user"
)

type fakeUsers struct {
	mu    sync.Mutex
	items map[string]user.User
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (user.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.items[username]
	return u, ok, nil
}

func (f *fakeUsers) Create(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items == nil {
		f.items = map[string]user.User{}
	}
	if _, ok := f.items[u.Username]; ok {
		return user.ErrUsernameTaken
	}
	f.items[u.Username] = u
	return nil
}

type fakeAudits struct {
	mu   sync.Mutex
	rows []audit.Request
}

func (f *fakeAudits) Append(_ context.Context, r audit.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, r)
	return nil
}

func (f *fakeAudits) ListByUser(_ context.Context, userID string) ([]audit.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]audit.Request, 0)
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(u user.User) (string, time.Time, error) {
	return "token-" + u.ID + "-" + u.Username, time.Unix(0, 0), nil
}

func (fakeTokens) Verify(token string) (user.Principal, error) {
	parts := strings.SplitN(strings.TrimPrefix(token, "token-"), "-", 2)
	if len(parts) != 2 || !strings.HasPrefix(token, "token-") {
		return user.Principal{}, errors.New("malformed token")
	}
	return user.Principal{UserID: parts[0], Username: parts[1]}, nil
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "id" + string(rune('0'+s.n))
}

func newTestAuthService(clock clockwork.Clock) (*AuthService, *fakeAudits) {
	audits := &fakeAudits{}
	svc := NewAuthService(&fakeUsers{}, audits, fakeTokens{}, &seqIDs{}, clock, nil).WithBcryptCost(bcrypt.MinCost)
	return svc, audits
}

func TestAuthService_RegisterLoginVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newTestAuthService(clockwork.NewFakeClock())

	principal, err := service.Register(ctx, Credentials{Username: "lucas", Password: "s3cret!"})
	require.NoError(t, err)
	require.Equal(t, "lucas", principal.Username)

	_, err = service.Register(ctx, Credentials{Username: "lucas", Password: "other"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Contains(t, err.Error(), "Username is already taken!")

	_, err = service.Login(ctx, Credentials{Username: "lucas", Password: "wrong"})
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = service.Login(ctx, Credentials{Username: "nobody", Password: "s3cret!"})
	require.ErrorIs(t, err, ErrUnauthorized)

	session, err := service.Login(ctx, Credentials{Username: "lucas", Password: "s3cret!"})
	require.NoError(t, err)
	require.Equal(t, principal, session.User)

	verified, err := service.VerifyAccessToken(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, principal, verified)

	_, err = service.VerifyAccessToken(ctx, "garbage")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthService_Register_RequiresCredentials(t *testing.T) {
	t.Parallel()

	service, _ := newTestAuthService(clockwork.NewFakeClock())
	_, err := service.Register(context.Background(), Credentials{Username: "  ", Password: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthService_HistoryNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC))
	service, _ := newTestAuthService(clock)

	me := user.Principal{UserID: "u1", Username: "lucas"}
	other := user.Principal{UserID: "u2", Username: "ana"}
	require.NoError(t, service.RecordRequest(ctx, me, "/api/teams/{teamID}"))
	clock.Advance(time.Minute)
	require.NoError(t, service.RecordRequest(ctx, other, "/api/teams/search/{query}"))
	clock.Advance(time.Minute)
	require.NoError(t, service.RecordRequest(ctx, me, "/api/teams/{teamID}/stats"))

	got, err := service.History(ctx, me)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "/api/teams/{teamID}/stats", got[0].Endpoint)
	require.Equal(t, "/api/teams/{teamID}", got[1].Endpoint)

	_, err = service.History(ctx, user.Principal{})
	require.ErrorIs(t, err, ErrUnauthorized)
}
