package handlers

import (
	"net/http"
	"time"
)

// HealthStatus is the health check payload. It intentionally does not
// use the response envelope; monitors expect this exact shape.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health reports process liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
