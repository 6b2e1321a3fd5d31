package api

import (
	"net/http"

	"github.com/cfbranks/rankview/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler reports gateway liveness and the upstream probe result.
type HealthHandler struct {
	deps HealthDependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status   string `json:"status"`
	Upstream bool   `json:"upstream"`
}

// HandleHealth handles GET /api/health requests. The gateway answers 200
// whenever it is up; the upstream flag carries the bounded-time probe result.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Upstream: h.deps.Healthy(r.Context()),
	})
}

// MetricsHandler serves the Prometheus registry.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// HandleMetrics handles GET /healthz requests with the metrics exposition.
func (h *MetricsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
