package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestUpsertSuffix(t *testing.T) {
	t.Parallel()

	got := upsertSuffix("id", "id", "name", "country")
	require.Equal(t, "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, country = EXCLUDED.country", got)
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	require.True(t, isUniqueViolation(fmt.Errorf("insert user: %w", &pq.Error{Code: "23505"})))
	require.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	require.False(t, isUniqueViolation(sql.ErrNoRows))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	require.True(t, isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)))
	require.False(t, isNotFound(sql.ErrConnDone))
}

func TestNullableConversions(t *testing.T) {
	t.Parallel()

	name := "Arsenal"
	require.Equal(t, sql.NullString{String: "Arsenal", Valid: true}, toNullString(&name))
	require.False(t, toNullString(nil).Valid)
	require.Nil(t, fromNullString(sql.NullString{}))
	require.Equal(t, "Arsenal", *fromNullString(sql.NullString{String: "Arsenal", Valid: true}))

	score := 3
	require.Equal(t, sql.NullInt32{Int32: 3, Valid: true}, toNullInt32(&score))
	require.Nil(t, fromNullInt32(sql.NullInt32{}))
	require.Equal(t, 3, *fromNullInt32(toNullInt32(&score)))
}
