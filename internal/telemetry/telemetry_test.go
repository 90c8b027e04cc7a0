package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmadata/jma-data-mcp/internal/telemetry"
)

func TestInit_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "jma-data-mcp",
		ServiceVersion: "test",
		Environment:    "test",
		OTLPEndpoint:   "localhost:4317",
		Enabled:        false,
	})

	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.NotNil(t, provider.Tracer)
	assert.NotNil(t, provider.Meter)

	assert.Nil(t, provider.TracerProvider)
	assert.Nil(t, provider.MeterProvider)

	_, span := provider.Tracer.Start(ctx, "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, provider.Shutdown(ctx))
}

func TestProvider_Shutdown_NilProviders(t *testing.T) {
	provider := &telemetry.Provider{}
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestTracerAndMeter_Global(t *testing.T) {
	assert.NotNil(t, telemetry.Tracer("test-tracer"))
	assert.NotNil(t, telemetry.Meter("test-meter"))
}

func TestProviderMetrics_RecordRequest(t *testing.T) {
	m, err := telemetry.NewProviderMetrics("jma")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NotPanics(t, func() {
		m.RecordRequest(ctx, "observations", 120*time.Millisecond, nil)
		m.RecordRequest(ctx, "forecast", time.Second, errors.New("boom"))
	})
}

func TestProviderMetrics_NilIsNoop(t *testing.T) {
	var m *telemetry.ProviderMetrics
	assert.NotPanics(t, func() {
		m.RecordRequest(context.Background(), "observations", time.Millisecond, nil)
	})
}
