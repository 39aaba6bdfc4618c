package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wallpaperd/wallpaperd/internal/health"
)

// Health is a handler for health check status
func Health(healthChecker *health.Checker) Handler {
	return Handler(func(w http.ResponseWriter, r *http.Request) *Error {
		status := healthChecker.Status()

		// Headers have to be set before the status code is written
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Content-Type", "application/json")

		if !status.Healthy {
			w.WriteHeader(http.StatusInternalServerError)
		}
		if err := json.NewEncoder(w).Encode(status); err != nil {
			return InternalServerError()
		}

		return nil
	})
}
