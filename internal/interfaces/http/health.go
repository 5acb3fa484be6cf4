package http

import "net/http"

// HandleHealth serves GET /api/health for load balancer probes.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
