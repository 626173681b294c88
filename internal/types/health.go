package types

import (
	"sort"
	"strings"
	"time"
)

// HealthState is the coarse state of a collaborator (graph store, completion backend).
type HealthState string

const (
	HealthStateHealthy   HealthState = "healthy"
	HealthStateDegraded  HealthState = "degraded"
	HealthStateUnhealthy HealthState = "unhealthy"
)

// String returns the string representation of HealthState
func (s HealthState) String() string {
	return string(s)
}

// HealthStatus is a point-in-time health observation.
type HealthStatus struct {
	State     HealthState `json:"state" yaml:"state"`
	Message   string      `json:"message,omitempty" yaml:"message,omitempty"`
	CheckedAt time.Time   `json:"checked_at" yaml:"checked_at"`
}

// NewHealthStatus stamps a status with the current time.
func NewHealthStatus(state HealthState, message string) HealthStatus {
	return HealthStatus{
		State:     state,
		Message:   message,
		CheckedAt: time.Now(),
	}
}

// Healthy creates a healthy status.
func Healthy(message string) HealthStatus {
	return NewHealthStatus(HealthStateHealthy, message)
}

// Degraded creates a degraded status.
func Degraded(message string) HealthStatus {
	return NewHealthStatus(HealthStateDegraded, message)
}

// Unhealthy creates an unhealthy status.
func Unhealthy(message string) HealthStatus {
	return NewHealthStatus(HealthStateUnhealthy, message)
}

// IsHealthy returns true if the health state is healthy.
func (h HealthStatus) IsHealthy() bool {
	return h.State == HealthStateHealthy
}

// Combine folds several component statuses into one: the worst state wins and
// the messages of non-healthy components are joined.
func Combine(statuses map[string]HealthStatus) HealthStatus {
	state := HealthStateHealthy
	var problems []string
	for name, s := range statuses {
		switch s.State {
		case HealthStateUnhealthy:
			state = HealthStateUnhealthy
		case HealthStateDegraded:
			if state == HealthStateHealthy {
				state = HealthStateDegraded
			}
		}
		if s.State != HealthStateHealthy {
			problems = append(problems, name+": "+s.Message)
		}
	}
	if len(problems) == 0 {
		return Healthy("all components healthy")
	}
	sort.Strings(problems)
	return NewHealthStatus(state, strings.Join(problems, "; "))
}
