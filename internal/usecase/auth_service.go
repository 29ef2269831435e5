package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/audit"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/user"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/id"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
)

type Credentials struct {
	Username string
	Password string
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      user.Principal
}

type AuthService struct {
	users      user.Repository
	audits     audit.Repository
	tokens     TokenIssuer
	ids        id.Generator
	clock      clockwork.Clock
	bcryptCost int
	logger     *logging.Logger
}

func NewAuthService(
	users user.Repository,
	audits audit.Repository,
	tokens TokenIssuer,
	ids id.Generator,
	clock clockwork.Clock,
	logger *logging.Logger,
) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &AuthService{
		users:      users,
		audits:     audits,
		tokens:     tokens,
		ids:        ids,
		clock:      clock,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger,
	}
}

// WithBcryptCost lowers the hashing cost, for tests.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	s.bcryptCost = cost
	return s
}

func (s *AuthService) Register(ctx context.Context, in Credentials) (_ user.Principal, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer observe(span, "auth.register", time.Now(), &err)

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return user.Principal{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	_, exists, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get user by username: %w", err)
	}
	if exists {
		return user.Principal{}, fmt.Errorf("%w: Username is already taken!", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return user.Principal{}, fmt.Errorf("hash password: %w", err)
	}

	item := user.User{
		ID:           s.ids.NewID(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.users.Create(ctx, item); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return user.Principal{}, fmt.Errorf("%w: Username is already taken!", ErrInvalidInput)
		}
		return user.Principal{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", item.ID, "username", item.Username)
	return user.Principal{UserID: item.ID, Username: item.Username}, nil
}

// Login checks the password and issues an access token. Unknown users and wrong
// passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, in Credentials) (_ Session, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer observe(span, "auth.login", time.Now(), &err)

	item, exists, err := s.users.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return Session{}, fmt.Errorf("get user by username: %w", err)
	}
	if !exists || bcrypt.CompareHashAndPassword([]byte(item.PasswordHash), []byte(in.Password)) != nil {
		return Session{}, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	token, expiresAt, err := s.tokens.Issue(item)
	if err != nil {
		return Session{}, fmt.Errorf("issue access token: %w", err)
	}

	return Session{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Principal{UserID: item.ID, Username: item.Username},
	}, nil
}

func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: missing access token", ErrUnauthorized)
	}
	principal, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.DebugContext(ctx, "access token rejected", "error", err)
		return user.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return principal, nil
}

// RecordRequest appends one audit row for the caller.
func (s *AuthService) RecordRequest(ctx context.Context, principal user.Principal, endpoint string) error {
	row := audit.Request{
		ID:        s.ids.NewID(),
		UserID:    principal.UserID,
		Endpoint:  endpoint,
		Timestamp: s.clock.Now().UTC(),
	}
	if err := s.audits.Append(ctx, row); err != nil {
		return fmt.Errorf("append audit request: %w", err)
	}
	return nil
}

// History lists the caller's audited requests, newest first.
func (s *AuthService) History(ctx context.Context, principal user.Principal) (_ []audit.Request, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.History")
	defer observe(span, "auth.history", time.Now(), &err)

	if strings.TrimSpace(principal.UserID) == "" {
		return nil, fmt.Errorf("%w: missing principal", ErrUnauthorized)
	}
	items, err := s.audits.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list audit requests: %w", err)
	}
	return items, nil
}
