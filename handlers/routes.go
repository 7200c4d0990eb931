package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter exposes the manual trigger, health check and metrics endpoints.
// The trigger requires triggerKey in the x-api-key header; an empty key
// disables it.
func NewRouter(logger *slog.Logger, trigger Trigger, metrics http.Handler, triggerKey string) http.Handler {
	runs := NewRunHandler(trigger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/run", private(logger, triggerKey, runs.TriggerRun))
	r.Get("/healthz", public(logger, GetHealth))
	r.Method(http.MethodGet, "/metrics", metrics)

	return r
}

func public(logger *slog.Logger, handler Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts := time.Now()
		res := handler(w, r)
		elapsedMs := time.Since(ts).Milliseconds()
		logger.Debug("req", "method", r.Method, "path", r.URL.Path, "code", res.Code, "elapsed", elapsedMs)
		writeResult(logger, w, res)
	}
}

func private(logger *slog.Logger, key string, handler Handler) http.HandlerFunc {
	return public(logger, func(w http.ResponseWriter, r *http.Request) Result {
		keyHeader := r.Header.Get("x-api-key")
		if key == "" || subtle.ConstantTimeCompare([]byte(keyHeader), []byte(key)) != 1 {
			return Unauthorized("Missing or invalid api key")
		}
		return handler(w, r)
	})
}

func writeResult(logger *slog.Logger, w http.ResponseWriter, res Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.Code)
	if res.Body != nil {
		if err := json.NewEncoder(w).Encode(res.Body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
	if res.Code == http.StatusInternalServerError && res.Error != nil {
		logger.Error("internal error", "error", res.Error.Error())
	}
}
