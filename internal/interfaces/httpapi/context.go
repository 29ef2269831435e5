package httpapi

import (
	"context"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/user"
)

type contextKey string

const (
	principalContextKey   contextKey = "auth_principal"
	requestInfoContextKey contextKey = "request_info"
)

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	if info, ok := requestInfoFromContext(ctx); ok {
		info.username = p.Username
	}
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

// requestInfo is filled in by inner handlers and read back by RequestLogging.
type requestInfo struct {
	username string
}

func withRequestInfo(ctx context.Context, info *requestInfo) context.Context {
	return context.WithValue(ctx, requestInfoContextKey, info)
}

func requestInfoFromContext(ctx context.Context) (*requestInfo, bool) {
	info, ok := ctx.Value(requestInfoContextKey).(*requestInfo)
	return info, ok && info != nil
}
