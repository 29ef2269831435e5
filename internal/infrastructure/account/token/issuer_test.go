package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/user"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

func TestIssuer_IssueAndVerify(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
	issuer, err := NewIssuer(Config{Secret: "s3cret", Issuer: "futbol-api", Expiry: time.Hour, Clock: clock})
	require.NoError(t, err)

	signed, expiresAt, err := issuer.Issue(user.User{ID: "u1", Username: "lucas"})
	require.NoError(t, err)
	require.Equal(t, clock.Now().Add(time.Hour), expiresAt)

	principal, err := issuer.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, user.Principal{UserID: "u1", Username: "lucas"}, principal)

	clock.Advance(time.Hour + time.Second)
	_, err = issuer.Verify(signed)
	require.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestIssuer_TokensAreUnique(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(Config{Secret: "s3cret"})
	require.NoError(t, err)

	a, _, err := issuer.Issue(user.User{ID: "u1", Username: "lucas"})
	require.NoError(t, err)
	b, _, err := issuer.Issue(user.User{ID: "u1", Username: "lucas"})
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestIssuer_RejectsForeignTokens(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	issuer, err := NewIssuer(Config{Secret: "s3cret", Issuer: "futbol-api", Clock: clock})
	require.NoError(t, err)
	other, err := NewIssuer(Config{Secret: "different", Issuer: "futbol-api", Clock: clock})
	require.NoError(t, err)
	otherIssuer, err := NewIssuer(Config{Secret: "s3cret", Issuer: "someone-else", Clock: clock})
	require.NoError(t, err)

	forged, _, err := other.Issue(user.User{ID: "u1", Username: "lucas"})
	require.NoError(t, err)
	_, err = issuer.Verify(forged)
	require.ErrorIs(t, err, usecase.ErrUnauthorized)

	wrongIss, _, err := otherIssuer.Issue(user.User{ID: "u1", Username: "lucas"})
	require.NoError(t, err)
	_, err = issuer.Verify(wrongIss)
	require.ErrorIs(t, err, usecase.ErrUnauthorized)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Verify(unsigned)
	require.ErrorIs(t, err, usecase.ErrUnauthorized)

	_, err = issuer.Verify("  ")
	require.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestNewIssuer_RequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer(Config{Secret: " "})
	require.Error(t, err)
}
