package httpapi

import (
	"fmt"
	"net/http"

	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/metrics"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

const searchSegment = "search"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if cfg.MetricsEnabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}
	if !cfg.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /api/auth/register", handler.Register)
	mux.HandleFunc("POST /api/auth/login", handler.Login)
	mux.Handle("GET /api/auth/history", RequireAuth(verifier, http.HandlerFunc(handler.History)))
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, recorder AuditRecorder, logger *logging.Logger) {
	audited := func(endpoint string, fn http.HandlerFunc) http.Handler {
		return Audit(recorder, logger, endpoint, fn)
	}

	mux.Handle("GET /api/teams/{teamID}", RequireAuth(verifier, audited("/api/teams/{teamID}", handler.GetTeam)))
	mux.Handle("GET /api/teams/compare/{firstTeamID}/{secondTeamID}",
		RequireAuth(verifier, audited("/api/teams/compare/{firstTeamID}/{secondTeamID}", handler.CompareTeams)))
	mux.Handle("GET /api/teams/predict/{homeTeamID}/{awayTeamID}",
		RequireAuth(verifier, audited("/api/teams/predict/{homeTeamID}/{awayTeamID}", handler.PredictMatch)))

	// /api/teams/search/{query} overlaps /api/teams/{teamID}/{view} in the mux,
	// so both share one pattern and are split here.
	views := map[string]http.Handler{
		"nextMatches":     audited("/api/teams/{teamID}/nextMatches", handler.GetNextMatches),
		"finishedMatches": audited("/api/teams/{teamID}/finishedMatches", handler.GetFinishedMatches),
		"stats":           audited("/api/teams/{teamID}/stats", handler.GetTeamStats),
	}
	search := audited("/api/teams/search/{query}", handler.SearchTeams)

	mux.Handle("GET /api/teams/{teamID}/{view}", RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("teamID") == searchSegment {
			search.ServeHTTP(w, r)
			return
		}
		next, ok := views[r.PathValue("view")]
		if !ok {
			writeError(r.Context(), w, fmt.Errorf("%w: unknown team resource %q", usecase.ErrNotFound, r.PathValue("view")))
			return
		}
		next.ServeHTTP(w, r)
	})))
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, recorder AuditRecorder, logger *logging.Logger) {
	mux.Handle("GET /api/players/{playerID}/performance",
		RequireAuth(verifier, Audit(recorder, logger, "/api/players/{playerID}/performance", http.HandlerFunc(handler.GetPlayerPerformance))))
}
