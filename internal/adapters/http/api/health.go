package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/pxpstats/pkg/metrics"
)

const rootMessage = "NHL Stats API is running!"

// handleRoot answers GET / as a liveness probe.
func handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: rootMessage})
}

// HandleHealth handles GET /healthz requests with the Prometheus exposition
// of the service registry.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
