package graph

import (
	"context"
	"sync"
	"time"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// MockCall represents a recorded method call on the mock graph client.
type MockCall struct {
	Method    string
	Args      []any
	Timestamp time.Time
}

// MockGraphClient is an in-memory GraphClient for tests. Edges added with
// AddRelation are served to FindRelationsCypher queries in insertion order,
// matching names exactly. Other queries return the FIFO results queued with
// AddQueryResult.
type MockGraphClient struct {
	mu sync.RWMutex

	connected    bool
	healthStatus types.HealthStatus
	edges        []mockEdge
	calls        []MockCall

	queryResults []QueryResult
	queryError   error
	nameErrors   map[string]error
	connectError error
	closeError   error
	queryDelay   time.Duration
}

type mockEdge struct {
	from, relType, to string
}

// NewMockGraphClient creates an empty, unconnected mock.
func NewMockGraphClient() *MockGraphClient {
	return &MockGraphClient{
		healthStatus: types.Healthy("mock graph client"),
		nameErrors:   make(map[string]error),
	}
}

func (m *MockGraphClient) record(method string, args ...any) {
	m.calls = append(m.calls, MockCall{
		Method:    method,
		Args:      args,
		Timestamp: time.Now(),
	})
}

// Connect records the call and simulates connection.
func (m *MockGraphClient) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Connect")
	if m.connectError != nil {
		return m.connectError
	}
	m.connected = true
	return nil
}

// Close records the call and simulates disconnection.
func (m *MockGraphClient) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Close")
	if m.closeError != nil {
		return m.closeError
	}
	m.connected = false
	return nil
}

// Health records the call and returns the configured health status.
func (m *MockGraphClient) Health(ctx context.Context) types.HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("Health")
	if !m.connected {
		return types.Unhealthy("not connected")
	}
	return m.healthStatus
}

// Query records the call and answers from the in-memory graph.
func (m *MockGraphClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	m.mu.Lock()
	m.record("Query", cypher, params)
	delay := m.queryDelay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return QueryResult{}, contextError(ctx.Err())
		}
	}
	if err := ctx.Err(); err != nil {
		return QueryResult{}, contextError(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "not connected")
	}
	if m.queryError != nil {
		return QueryResult{}, m.queryError
	}

	if cypher == FindRelationsCypher {
		name, _ := params["name"].(string)
		if err, ok := m.nameErrors[name]; ok {
			return QueryResult{}, err
		}
		return m.relationsFor(name), nil
	}

	if len(m.queryResults) > 0 {
		result := m.queryResults[0]
		m.queryResults = m.queryResults[1:]
		return result, nil
	}

	return QueryResult{Records: []map[string]any{}, Columns: []string{}}, nil
}

// relationsFor mimics the undirected pattern: an edge is reported once for
// each end that carries the name, oriented from that end.
func (m *MockGraphClient) relationsFor(name string) QueryResult {
	result := QueryResult{
		Records: []map[string]any{},
		Columns: []string{"source", "rel", "target"},
	}
	for _, e := range m.edges {
		if e.from == name {
			result.Records = append(result.Records, map[string]any{"source": e.from, "rel": e.relType, "target": e.to})
		}
		if e.to == name {
			result.Records = append(result.Records, map[string]any{"source": e.to, "rel": e.relType, "target": e.from})
		}
	}
	return result
}

// AddRelation stores a directed edge (from)-[relType]->(to).
func (m *MockGraphClient) AddRelation(from, relType, to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges = append(m.edges, mockEdge{from: from, relType: relType, to: to})
}

// AddQueryResult queues a result for the next non-relation query.
func (m *MockGraphClient) AddQueryResult(result QueryResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryResults = append(m.queryResults, result)
}

// SetHealthStatus configures what Health() returns while connected.
func (m *MockGraphClient) SetHealthStatus(status types.HealthStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.healthStatus = status
}

// SetConnectError configures Connect() to return an error.
func (m *MockGraphClient) SetConnectError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectError = err
}

// SetCloseError configures Close() to return an error.
func (m *MockGraphClient) SetCloseError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeError = err
}

// SetQueryError makes every Query fail with err.
func (m *MockGraphClient) SetQueryError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryError = err
}

// SetEntityError makes relation lookups for name fail with err.
func (m *MockGraphClient) SetEntityError(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nameErrors[name] = err
}

// SetQueryDelay makes each Query wait d (or until ctx is done) before answering.
func (m *MockGraphClient) SetQueryDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryDelay = d
}

// GetCalls returns a copy of all recorded calls.
func (m *MockGraphClient) GetCalls() []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// GetCallsByMethod returns all calls to a specific method.
func (m *MockGraphClient) GetCallsByMethod(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	calls := make([]MockCall, 0)
	for _, call := range m.calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// IsConnected returns whether the mock is in connected state.
func (m *MockGraphClient) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}
