package httpapi

import (
	"net/http"
)

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.teamService.GetTeamWithRoster(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) GetNextMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNextMatches")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.GetNextMatches(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get next matches failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetFinishedMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFinishedMatches")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.GetFinishedMatches(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get finished matches failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	teamID, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statsService.GetTeamStats(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team stats failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamStatsToDTO(stats))
}

func (h *Handler) CompareTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompareTeams")
	defer span.End()

	firstID, err := pathID(r, "firstTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	secondID, err := pathID(r, "secondTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	comparison, err := h.statsService.CompareTeams(ctx, firstID, secondID)
	if err != nil {
		h.logger.WarnContext(ctx, "compare teams failed", "first_team_id", firstID, "second_team_id", secondID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, []teamStatsDTO{
		teamStatsToDTO(comparison.First),
		teamStatsToDTO(comparison.Second),
	})
}

func (h *Handler) PredictMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PredictMatch")
	defer span.End()

	homeID, err := pathID(r, "homeTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	awayID, err := pathID(r, "awayTeamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	prediction, err := h.statsService.PredictMatch(ctx, homeID, awayID)
	if err != nil {
		h.logger.WarnContext(ctx, "predict match failed", "home_team_id", homeID, "away_team_id", awayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(prediction))
}

// SearchTeams reads the query from the second segment of /api/teams/search/{query}.
func (h *Handler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchTeams")
	defer span.End()

	query := r.PathValue("view")
	items, err := h.teamService.SearchTeams(ctx, query)
	if err != nil {
		h.logger.InfoContext(ctx, "search teams failed", "query", query, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamRefDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamRefDTO{ID: item.ID, Name: item.Name})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
