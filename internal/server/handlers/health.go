package handlers

import (
	"net/http"

	"github.com/verdantlabs/plantid/internal/server/response"
)

// HandleHealth handles GET /health (liveness).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "plantid",
	})
}

// HandleReady handles GET /api/v1/ready. It answers 503 while any check fails,
// e.g. a missing upstream credential.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	checks := make(map[string]bool, len(h.checks))
	ready := true
	for _, c := range h.checks {
		ok := c.Ready()
		checks[c.Name] = ok
		ready = ready && ok
	}

	if !ready {
		h.logger.Warn().Interface("checks", checks).Msg("Readiness check failed")
		response.ServiceUnavailable(w, map[string]any{
			"status": "not ready",
			"checks": checks,
		})
		return
	}

	response.OK(w, map[string]any{
		"status": "ready",
		"checks": checks,
	})
}

// HandleVersion handles GET /api/v1/version.
func (h *Handlers) HandleVersion(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.build)
}
