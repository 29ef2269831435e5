package footballdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, clock clockwork.Clock) (*Client, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("X-Auth-Token") != "secret" {
			http.Error(w, `{"message":"invalid token"}`, http.StatusForbidden)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		Enabled:  true,
		BaseURL:  server.URL,
		Token:    "secret",
		Timeout:  5 * time.Second,
		CacheTTL: time.Hour,
		Clock:    clock,
	}), &hits
}

func pagedTeams(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/teams" || r.URL.Query().Get("limit") != "500" {
		http.NotFound(w, r)
		return
	}
	switch r.URL.Query().Get("offset") {
	case "0":
		_, _ = w.Write([]byte(`{"count":2,"teams":[{"id":61,"name":"Chelsea FC"},{"id":73,"name":"Tottenham Hotspur FC"}]}`))
	case "500":
		_, _ = w.Write([]byte(`{"count":1,"teams":[{"id":57,"name":"Arsenal FC","founded":1886,"venue":"Emirates Stadium","clubColors":"Red / White"}]}`))
	default:
		_, _ = w.Write([]byte(`{"count":0,"teams":[]}`))
	}
}

func TestClient_LookupTeam_ScansPagesAndCaches(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	client, hits := newTestClient(t, pagedTeams, clock)

	meta, ok, err := client.LookupTeam(context.Background(), "Arsenal")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, meta.Founded)
	require.Equal(t, 1886, *meta.Founded)
	require.Equal(t, "Emirates Stadium", *meta.Venue)
	require.Equal(t, "Red / White", *meta.ClubColors)
	require.Equal(t, int32(2), hits.Load(), "stops at the first good match")

	_, ok, err = client.LookupTeam(context.Background(), "arsenal")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(2), hits.Load(), "second lookup is served from cache")

	clock.Advance(2 * time.Hour)
	_, _, err = client.LookupTeam(context.Background(), "Arsenal")
	require.NoError(t, err)
	require.Equal(t, int32(4), hits.Load(), "expired entries are reloaded")
}

func TestClient_LookupTeam_NoMatch(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, pagedTeams, clockwork.NewFakeClock())

	meta, ok, err := client.LookupTeam(context.Background(), "Boca Juniors")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, meta.Founded)
	require.Equal(t, int32(3), hits.Load())
}

func TestClient_LookupTeam_Disabled(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Enabled: false, BaseURL: "http://127.0.0.1:1"})

	_, ok, err := client.LookupTeam(context.Background(), "Arsenal")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClient_LookupTeam_ProviderErrorIsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}, clockwork.NewFakeClock())

	_, _, err := client.LookupTeam(context.Background(), "Arsenal")
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}

func TestClient_LookupTeam_MalformedPageIsParseError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}, clockwork.NewFakeClock())

	_, _, err := client.LookupTeam(context.Background(), "Arsenal")
	require.ErrorIs(t, err, usecase.ErrParse)
}

func TestClient_LookupTeam_NearMissIsNotAMatch(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") != "0" {
			_, _ = w.Write([]byte(`{"count":0,"teams":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"count":1,"teams":[{"id":341,"name":"Leeds","founded":1919,"venue":"Elland Road"}]}`))
	}, clockwork.NewFakeClock())

	meta, ok, err := client.LookupTeam(context.Background(), "Lens")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, meta.Venue)
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		a, b string
		want int
	}{
		{"Arsenal", "ARSENAL", 100},
		{"Arsenal", "Arsenal FC", 82},
		{"Real Madrid", "Real Madrid CF", 88},
		{"Arsenal", "Chelsea FC", 35},
		{"Lens", "Leeds", 67},
		{"Bologna", "Bolivar", 57},
		{"Roma", "Rome", 75},
		{"", "", 100},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Similarity(tc.a, tc.b), "%s vs %s", tc.a, tc.b)
	}
}
