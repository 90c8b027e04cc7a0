// Package handler provides HTTP handlers for the JMA data server.
package handler

import (
	"net/http"
	"time"

	"github.com/jmadata/jma-data-mcp/internal/api/models"
	"github.com/jmadata/jma-data-mcp/internal/api/response"
	"github.com/jmadata/jma-data-mcp/internal/provider/resilience"
)

// HealthSource reports upstream provider health.
type HealthSource interface {
	GetAllHealth() []*resilience.ProviderHealth
}

// OpsConfig holds configuration for the ops handler.
type OpsConfig struct {
	Service   string
	Version   string
	BuildTime string

	// Stations is the size of the loaded station directory.
	Stations int

	// Providers may be nil, in which case no providers are reported.
	Providers HealthSource

	// Now defaults to time.Now.
	Now func() time.Time
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	cfg OpsConfig
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &OpsHandler{cfg: cfg}
}

// HealthCheck handles GET /v1/ops/health. It reports liveness only.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status:    models.HealthStatusOK,
		Time:      h.cfg.Now().UTC(),
		Service:   h.cfg.Service,
		Version:   h.cfg.Version,
		BuildTime: h.cfg.BuildTime,
		Stations:  h.cfg.Stations,
	})
}

// ReadinessCheck handles GET /v1/ops/ready. It fails while any upstream
// circuit is open.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := h.status()
	if status.Status == models.HealthStatusFail {
		response.ServiceUnavailable(w, r, "an upstream circuit breaker is open")
		return
	}
	response.JSON(w, r, http.StatusOK, status)
}

// SystemStatus handles GET /v1/ops/status. It always answers 200 with the
// per-provider circuit breaker view.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.status())
}

func (h *OpsHandler) status() models.SystemStatus {
	out := models.SystemStatus{
		Status:    models.HealthStatusOK,
		Time:      h.cfg.Now().UTC(),
		Providers: []models.ProviderStatus{},
	}
	if h.cfg.Providers == nil {
		return out
	}

	for _, p := range h.cfg.Providers.GetAllHealth() {
		switch {
		case p.IsUnhealthy():
			out.Status = models.HealthStatusFail
		case p.IsDegraded() && out.Status == models.HealthStatusOK:
			out.Status = models.HealthStatusDegraded
		}

		out.Providers = append(out.Providers, models.ProviderStatus{
			Provider:            p.Name,
			Status:              p.Status(),
			CircuitState:        p.CircuitState.String(),
			Requests:            p.Counts.Requests,
			TotalFailures:       p.Counts.TotalFailures,
			ConsecutiveFailures: p.Counts.ConsecutiveFailures,
			LastSuccessAt:       p.LastSuccessAt,
			LastFailureAt:       p.LastFailureAt,
			LastError:           p.LastError,
		})
	}
	return out
}
