package httpapi

import (
	"net/http"

	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/logging"
	"github.com/lucasAG-UNQ/FutbolApi/internal/platform/metrics"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	MetricsEnabled     bool
	CORSAllowedOrigins []string
}

// NewRouter wires every route behind tracing, logging, CORS, panic recovery
// and request metrics. metrics.Middleware sits directly on the mux so it sees
// the matched pattern.
func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	recorder AuditRecorder,
	logger *logging.Logger,
	cfg RouterConfig,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg)
	registerAuthRoutes(mux, handler, verifier)
	registerTeamRoutes(mux, handler, verifier, recorder, logger)
	registerPlayerRoutes(mux, handler, verifier, recorder, logger)

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, metrics.Middleware(mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
