package httpapi

import (
	"fmt"
	"net/http"

	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

const registeredMessage = "User registered successfully"

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
	defer span.End()

	var req credentialsRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if _, err := h.authService.Register(ctx, usecase.Credentials{Username: req.Username, Password: req.Password}); err != nil {
		h.logger.InfoContext(ctx, "register failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, messageDTO{Message: registeredMessage})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req credentialsRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.authService.Login(ctx, usecase.Credentials{Username: req.Username, Password: req.Password})
	if err != nil {
		h.logger.InfoContext(ctx, "login failed", "username", req.Username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, loginDTO{Token: session.Token, ExpiresAt: session.ExpiresAt})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.History")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	items, err := h.authService.History(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "list request history failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]requestDTO, 0, len(items))
	for _, item := range items {
		out = append(out, requestDTO{Endpoint: item.Endpoint, Timestamp: item.Timestamp})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
