package whoscored

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/resilience"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

type routes map[string]func(w http.ResponseWriter, r *http.Request)

func newTestScraper(t *testing.T, handlers routes) (*Scraper, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	mux := http.NewServeMux()
	for pattern, h := range handlers {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			if r.Header.Get("User-Agent") != userAgent || r.Header.Get("Referer") != referer ||
				r.Header.Get("Accept") != acceptHeader || r.Header.Get("Accept-Language") != acceptLanguage {
				http.Error(w, "missing browser headers", http.StatusForbidden)
				return
			}
			h(w, r)
		})
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
		Clock: clockwork.NewFakeClock(),
	})
	return NewScraper(client, nil), &hits
}

func TestScraper_FetchTeam_FromFeed(t *testing.T) {
	t.Parallel()

	scraper, _ := newTestScraper(t, routes{
		"GET /statisticsfeed/1/getplayerstatistics": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("teamIds") != "13" || r.URL.Query().Get("category") != "summary" {
				http.Error(w, "bad query", http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(teamFeed))
		},
	})

	got, err := scraper.FetchTeam(context.Background(), 13)
	require.NoError(t, err)
	require.Equal(t, "Arsenal", got.Name)
	require.Len(t, got.Players, 3)
}

func TestScraper_FetchTeam_FallsBackToTeamPage(t *testing.T) {
	t.Parallel()

	scraper, _ := newTestScraper(t, routes{
		"GET /statisticsfeed/1/getplayerstatistics": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"playerTableStats":[]}`))
		},
		"GET /teams/{id}": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><span class="team-header-name">Racing Club</span></html>`))
		},
	})

	got, err := scraper.FetchTeam(context.Background(), 52)
	require.NoError(t, err)
	require.Equal(t, int64(52), got.ID)
	require.Equal(t, "Racing Club", got.Name)
	require.Empty(t, got.Country)
	require.Empty(t, got.Players)
}

func TestScraper_FetchTeam_DoubleFailureIsTeamNotFound(t *testing.T) {
	t.Parallel()

	scraper, _ := newTestScraper(t, routes{
		"GET /statisticsfeed/1/getplayerstatistics": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"playerTableStats":[]}`))
		},
		"GET /teams/{id}": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><h1>Not found</h1></html>`))
		},
	})

	_, err := scraper.FetchTeam(context.Background(), 999999)
	if !errors.Is(err, usecase.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestScraper_FetchTeam_NonSuccessStatusIsTeamNotFound(t *testing.T) {
	t.Parallel()

	scraper, _ := newTestScraper(t, routes{
		"GET /statisticsfeed/1/getplayerstatistics": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		},
	})

	_, err := scraper.FetchTeam(context.Background(), 13)
	if !errors.Is(err, usecase.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestScraper_SearchTeams_NonSuccessIsEmpty(t *testing.T) {
	t.Parallel()

	scraper, _ := newTestScraper(t, routes{
		"GET /search/": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "oops", http.StatusBadGateway)
		},
	})

	got, err := scraper.SearchTeams(context.Background(), "arsenal")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestScraper_SearchTeams(t *testing.T) {
	t.Parallel()

	scraper, _ := newTestScraper(t, routes{
		"GET /search/": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("t") != "arsenal fc" {
				http.Error(w, "bad query", http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(searchPage))
		},
	})

	got, err := scraper.SearchTeams(context.Background(), "arsenal fc")
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestScraper_FetchFixtures(t *testing.T) {
	t.Parallel()

	scraper, _ := newTestScraper(t, routes{
		"GET /teams/{id}/fixtures": func(w http.ResponseWriter, r *http.Request) {
			if r.PathValue("id") != "13" {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(fixturesPage))
		},
	})

	got, err := scraper.FetchFixtures(context.Background(), 13)
	require.NoError(t, err)
	require.Len(t, got, 2)

	empty, err := scraper.FetchFixtures(context.Background(), 14)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestScraper_FetchPlayer(t *testing.T) {
	t.Parallel()

	scraper, _ := newTestScraper(t, routes{
		"GET /statisticsfeed/1/getplayerstatistics": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("playerId") != "7" {
				_, _ = w.Write([]byte(`{"playerTableStats":[]}`))
				return
			}
			_, _ = w.Write([]byte(`{"playerTableStats":[{"playerId":7,"name":"Bukayo Saka","apps":3,"minsPlayed":270,"rating":7.0}]}`))
		},
	})

	got, err := scraper.FetchPlayer(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 3, got.Apps)

	_, err = scraper.FetchPlayer(context.Background(), 8)
	require.ErrorIs(t, err, usecase.ErrPlayerNotFound)
}

func TestClient_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	scraper, hits := newTestScraper(t, routes{
		"GET /teams/{id}/fixtures": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusServiceUnavailable)
		},
	})

	for i := 0; i < 2; i++ {
		got, err := scraper.FetchFixtures(context.Background(), 13)
		require.NoError(t, err)
		require.Empty(t, got)
	}

	_, err := scraper.FetchFixtures(context.Background(), 13)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.Equal(t, int32(2), hits.Load(), "open breaker must not reach the server")
}

func TestClient_TransportErrorIsDependencyUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Timeout: time.Second})
	_, _, err := client.FetchTeamPage(context.Background(), 13)
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}

func TestEncodeFeedQuery(t *testing.T) {
	t.Parallel()

	q := feedQuery()
	q.Set("teamIds", "13")
	want := "category=summary&subcategory=all&statsAccumulationType=0&isCurrent=true&teamIds=13&sortBy=Rating&sortAscending=&field=Overall&isMinApp=false&includeZeroValues=true"
	require.Equal(t, want, encodeFeedQuery(q))
}
