package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthConstructors(t *testing.T) {
	before := time.Now()

	tests := []struct {
		name   string
		status HealthStatus
		want   HealthState
	}{
		{"healthy", Healthy("ok"), HealthStateHealthy},
		{"degraded", Degraded("slow"), HealthStateDegraded},
		{"unhealthy", Unhealthy("down"), HealthStateUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.State)
			assert.Equal(t, tt.want == HealthStateHealthy, tt.status.IsHealthy())
			assert.False(t, tt.status.CheckedAt.Before(before))
		})
	}
}

func TestCombine(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		got := Combine(map[string]HealthStatus{
			"graph": Healthy("connected"),
			"llm":   Healthy(""),
		})
		assert.True(t, got.IsHealthy())
	})

	t.Run("worst state wins", func(t *testing.T) {
		got := Combine(map[string]HealthStatus{
			"graph": Unhealthy("refused"),
			"llm":   Degraded("slow"),
		})
		assert.Equal(t, HealthStateUnhealthy, got.State)
		assert.Equal(t, "graph: refused; llm: slow", got.Message)
	})

	t.Run("degraded only", func(t *testing.T) {
		got := Combine(map[string]HealthStatus{
			"graph": Healthy("connected"),
			"llm":   Degraded("slow"),
		})
		assert.Equal(t, HealthStateDegraded, got.State)
		assert.Equal(t, "llm: slow", got.Message)
	})
}
