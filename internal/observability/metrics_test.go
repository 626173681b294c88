package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/graphqa/internal/types"
)

func TestInitMetrics_Disabled(t *testing.T) {
	m, err := InitMetrics(MetricsConfig{})
	require.NoError(t, err)
	assert.False(t, m.Enabled())

	counter, err := m.MeterProvider().Meter("test").Int64Counter("graphqa.test.requests")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.NoError(t, m.Start(nil))
	assert.NoError(t, m.Shutdown(context.Background()))
}

func TestInitMetrics_RequiresAddress(t *testing.T) {
	_, err := InitMetrics(MetricsConfig{Enabled: true})
	require.Error(t, err)
	assert.True(t, types.HasCode(err, ErrInvalidConfig))
}

func TestMetrics_HandlerExposesInstruments(t *testing.T) {
	m, err := InitMetrics(MetricsConfig{Enabled: true, Address: "127.0.0.1:0"})
	require.NoError(t, err)
	defer func() { _ = m.Shutdown(context.Background()) }()
	assert.True(t, m.Enabled())

	counter, err := m.MeterProvider().Meter("test").Int64Counter("graphqa.test.requests")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "graphqa_test_requests")
}

func TestMetrics_StartServesEndpoint(t *testing.T) {
	m, err := InitMetrics(MetricsConfig{Enabled: true, Address: "127.0.0.1:0"})
	require.NoError(t, err)
	require.NoError(t, m.Start(nil))
	defer func() { _ = m.Shutdown(context.Background()) }()

	require.NotNil(t, m.server)
	addr := m.listenAddr()
	require.NotEmpty(t, addr)

	resp, err := http.Get("http://" + addr + MetricsPath)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body)
}

func TestMetrics_StartBadAddress(t *testing.T) {
	m, err := InitMetrics(MetricsConfig{Enabled: true, Address: "not-an-address"})
	require.NoError(t, err)
	err = m.Start(nil)
	require.Error(t, err)
	assert.True(t, types.HasCode(err, ErrMetricsServer))
}
