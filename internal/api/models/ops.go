// Package models holds the response bodies of the operational HTTP
// endpoints.
package models

import "time"

// HealthStatus is the overall state reported by the ops endpoints.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "OK"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusFail     HealthStatus = "FAIL"
)

// Health is the liveness response.
type Health struct {
	Status    HealthStatus `json:"status"`
	Time      time.Time    `json:"time"`
	Service   string       `json:"service"`
	Version   string       `json:"version"`
	BuildTime string       `json:"buildTime,omitempty"`
	Stations  int          `json:"stations"`
}

// SystemStatus reports upstream provider health.
type SystemStatus struct {
	Status    HealthStatus     `json:"status"`
	Time      time.Time        `json:"time"`
	Providers []ProviderStatus `json:"providers"`
}

// ProviderStatus is one upstream's circuit breaker view.
type ProviderStatus struct {
	Provider            string     `json:"provider"`
	Status              string     `json:"status"`
	CircuitState        string     `json:"circuitState"`
	Requests            uint32     `json:"requests"`
	TotalFailures       uint32     `json:"totalFailures"`
	ConsecutiveFailures uint32     `json:"consecutiveFailures"`
	LastSuccessAt       *time.Time `json:"lastSuccessAt,omitempty"`
	LastFailureAt       *time.Time `json:"lastFailureAt,omitempty"`
	LastError           string     `json:"lastError,omitempty"`
}
