package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-forum/internal/forum"
	"github.com/mauv0809/swiss-forum/internal/tournament"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	dryRunKey contextKey = "dryRun"
)

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		// Handle 'dry_run' and add it to the request context.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), dryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tournament.ErrInvalidName),
		errors.Is(err, tournament.ErrSelfMatch),
		errors.Is(err, tournament.ErrInvalidBye),
		errors.Is(err, tournament.ErrInvalidTag),
		errors.Is(err, forum.ErrEmptyPost):
		return http.StatusBadRequest
	case errors.Is(err, tournament.ErrPlayerNotFound),
		errors.Is(err, tournament.ErrTournamentNotFound):
		return http.StatusNotFound
	case errors.Is(err, tournament.ErrAlreadyHadBye),
		errors.Is(err, tournament.ErrNoByeCandidate),
		errors.Is(err, tournament.ErrTournamentExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err and writes it as a JSON body. Internal errors are not exposed.
func writeError(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}
	log.Warn(msg, "error", err, "status", status)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
