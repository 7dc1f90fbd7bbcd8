package rest

import (
	"encoding/json"
	"net/http"
	"time"
)

// modelInfo reports which trained model the service runs.
type modelInfo interface {
	ModelName() string
	Labels() []string
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	model   modelInfo
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(model modelInfo, version string) *HealthHandler {
	return &HealthHandler{model: model, version: version}
}

// HealthResponse is the JSON response for /live and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health reports the version and whether a sequence model is loaded.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]CompStatus)
	overallStatus := "ok"

	if h.model == nil || len(h.model.Labels()) == 0 {
		components["model"] = CompStatus{Status: "down"}
		overallStatus = "down"
	} else {
		components["model"] = CompStatus{Status: "ok", Detail: h.model.ModelName()}
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError writes the {"detail": "..."} body the web client expects.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}
