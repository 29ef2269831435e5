package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	return rec.Body.String()
}

func TestMiddleware_RecordsMatchedPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/teams/{teamID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := Middleware(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/teams/65", nil))

	want := `futbol_http_requests_total{method="GET",route="GET /api/teams/{teamID}",status="418"}`
	if out := scrape(t); !strings.Contains(out, want) {
		t.Fatalf("expected %s in metrics output", want)
	}
}

func TestObserveUpstream(t *testing.T) {
	ObserveUpstream("whoscored", "team_stats", "ok", time.Now().Add(-time.Second))

	out := scrape(t)
	for _, want := range []string{
		`futbol_upstream_requests_total{endpoint="team_stats",outcome="ok",source="whoscored"}`,
		`futbol_upstream_request_duration_seconds_count{endpoint="team_stats",source="whoscored"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in metrics output", want)
		}
	}
}
