package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/graphqa/internal/types"
)

func TestTracingConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TracingConfig
		wantErr bool
	}{
		{name: "disabled ignores fields", cfg: TracingConfig{SampleRatio: 5}},
		{name: "enabled ok", cfg: TracingConfig{Enabled: true, Endpoint: "localhost:4317", SampleRatio: 0.5}},
		{name: "missing endpoint", cfg: TracingConfig{Enabled: true, SampleRatio: 1}, wantErr: true},
		{name: "ratio above one", cfg: TracingConfig{Enabled: true, Endpoint: "localhost:4317", SampleRatio: 1.5}, wantErr: true},
		{name: "negative ratio", cfg: TracingConfig{Enabled: true, Endpoint: "localhost:4317", SampleRatio: -0.1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, types.HasCode(err, ErrInvalidConfig))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestInitTracing_Disabled(t *testing.T) {
	provider, err := InitTracing(context.Background(), TracingConfig{}, "test")
	require.NoError(t, err)
	require.NotNil(t, provider)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, ShutdownTracing(ctx, provider))
}

func TestInitTracing_InvalidConfig(t *testing.T) {
	_, err := InitTracing(context.Background(), TracingConfig{Enabled: true}, "test")
	require.Error(t, err)
	assert.True(t, types.HasCode(err, ErrInvalidConfig))
}

func TestInitTracing_OTLPInsecure(t *testing.T) {
	cfg := TracingConfig{
		Enabled:     true,
		Endpoint:    "localhost:4317",
		Insecure:    true,
		ServiceName: "graphqa-test",
		SampleRatio: 1.0,
	}

	// The gRPC exporter dials lazily, so no collector is needed here.
	provider, err := InitTracing(context.Background(), cfg, "0.0.0-test")
	require.NoError(t, err)
	require.NotNil(t, provider)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = ShutdownTracing(ctx, provider)
}

func TestShutdownTracing_Nil(t *testing.T) {
	assert.NoError(t, ShutdownTracing(context.Background(), nil))
}
