package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/authzkit/authzkit/pkg/logger"
)

// HealthCheckHandler serves liveness and readiness probes.
//
// Without dependency checks it answers 200 "ALIVE". With checks it runs
// each one and answers 200 "READY" when all succeed, otherwise 500
// "NOT_READY".
func HealthCheckHandler(ctx context.Context, log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
