package app

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "   ", want: ""},
		{name: "collapses whitespace", in: "SELECT id\n\t FROM teams\nWHERE id = $1", want: "SELECT id FROM teams WHERE id = $1"},
		{name: "trims and collapses", in: " SELECT   *\nFROM matches \t WHERE home_team_id = $1 ", want: "SELECT * FROM matches WHERE home_team_id = $1"},
		{name: "masks literals", in: "SELECT id FROM users WHERE username = 'o''neil'", want: "SELECT id FROM users WHERE username = '?'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, formatDBQueryForTrace(tt.in))
		})
	}
}

func TestFormatDBQueryForTrace_Truncates(t *testing.T) {
	t.Parallel()

	got := formatDBQueryForTrace("SELECT " + strings.Repeat("x", 2*maxTracedQueryLength))
	require.Len(t, got, maxTracedQueryLength+3)
	require.True(t, strings.HasSuffix(got, "..."))
}
