package graph

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/zero-day-ai/graphqa/internal/types"
)

// Neo4jClient implements GraphClient on top of the Neo4j Go driver.
// The driver's pool is shared by every Query; each Query opens its own read
// session and closes it before returning.
type Neo4jClient struct {
	config GraphClientConfig

	mu     sync.RWMutex
	driver neo4j.DriverWithContext
}

// NewNeo4jClient validates config and returns an unconnected client.
// Missing credentials fail here rather than on the first query.
func NewNeo4jClient(config GraphClientConfig) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Neo4jClient{
		config: config,
	}, nil
}

// Connect creates the driver and verifies connectivity, backing off
// exponentially between attempts.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver != nil {
		return nil
	}

	auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")
	driver, err := neo4j.NewDriverWithContext(c.config.URI, auth, func(config *neo4j.Config) {
		if c.config.MaxConnectionPoolSize > 0 {
			config.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		}
		config.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
		config.SocketConnectTimeout = c.config.ConnectionTimeout
		config.MaxTransactionRetryTime = c.config.MaxTransactionRetryTime
	})
	if err != nil {
		return types.WrapError(ErrCodeGraphInvalidConfig, "failed to create driver", err)
	}

	var lastErr error
	baseDelay := 100 * time.Millisecond

	for attempt := 0; attempt < c.config.ConnectAttempts; attempt++ {
		lastErr = driver.VerifyConnectivity(ctx)
		if lastErr == nil {
			c.driver = driver
			return nil
		}

		// Bad credentials will not get better by waiting.
		if isAuthError(lastErr) || attempt == c.config.ConnectAttempts-1 {
			break
		}

		delay := baseDelay * time.Duration(math.Pow(2, float64(attempt)))
		if delay > c.config.ConnectionTimeout {
			delay = c.config.ConnectionTimeout
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			_ = driver.Close(context.WithoutCancel(ctx))
			return types.WrapError(ErrCodeGraphConnectionFailed,
				"connection attempt cancelled", ctx.Err())
		}
	}

	_ = driver.Close(context.WithoutCancel(ctx))
	return types.WrapError(ErrCodeGraphConnectionFailed,
		fmt.Sprintf("failed to connect to %s", c.config.URI), lastErr)
}

// Close releases the driver and every pooled connection. Calling Close on a
// client that never connected is a no-op.
func (c *Neo4jClient) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver == nil {
		return nil
	}

	err := c.driver.Close(ctx)
	c.driver = nil
	if err != nil {
		return types.WrapError(ErrCodeGraphConnectionClosed, "failed to close driver", err)
	}
	return nil
}

// Health verifies connectivity with a short timeout.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	c.mu.RLock()
	driver := c.driver
	c.mu.RUnlock()

	if driver == nil {
		return types.Unhealthy("driver not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err))
	}

	return types.Healthy("connected to " + c.config.URI)
}

// Query executes cypher in a managed read transaction.
func (c *Neo4jClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	c.mu.RLock()
	driver := c.driver
	c.mu.RUnlock()

	if driver == nil {
		return QueryResult{}, types.NewError(ErrCodeGraphConnectionClosed, "driver not connected")
	}

	startTime := time.Now()

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: c.config.Database,
	})
	// The session must be released even when ctx is already cancelled.
	defer session.Close(context.WithoutCancel(ctx))

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}

		records, err := neoResult.Collect(ctx)
		if err != nil {
			return nil, err
		}

		summary, err := neoResult.Consume(ctx)
		if err != nil {
			return nil, err
		}

		return convertNeo4jResult(records, summary), nil
	})
	if err != nil {
		return QueryResult{}, classifyError("query execution failed", err)
	}

	queryResult := result.(QueryResult)
	queryResult.Summary.ExecutionTime = time.Since(startTime)

	return queryResult, nil
}

// classifyError sorts driver failures into connection and query kinds.
func classifyError(message string, err error) error {
	if cerr := contextError(err); cerr != nil {
		return cerr
	}
	if isConnectivityError(err) {
		return types.WrapError(ErrCodeGraphConnectionFailed, message, err)
	}
	return types.WrapError(ErrCodeGraphQueryFailed, message, err)
}

func isConnectivityError(err error) bool {
	if neo4j.IsConnectivityError(err) || isAuthError(err) {
		return true
	}

	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) && neoErr.Code == "Neo.TransientError.General.DatabaseUnavailable" {
		return true
	}

	// ExecuteRead gives up with a retry-limit error that carries the
	// individual attempt failures.
	var limit *neo4j.TransactionExecutionLimit
	if errors.As(err, &limit) {
		for _, e := range limit.Errors {
			if isConnectivityError(e) {
				return true
			}
		}
	}
	return false
}

func isAuthError(err error) bool {
	var neoErr *neo4j.Neo4jError
	return errors.As(err, &neoErr) && strings.HasPrefix(neoErr.Code, "Neo.ClientError.Security.")
}

// convertNeo4jResult converts driver records to QueryResult.
func convertNeo4jResult(records []*neo4j.Record, summary neo4j.ResultSummary) QueryResult {
	result := QueryResult{
		Records: make([]map[string]any, 0, len(records)),
		Columns: []string{},
	}

	if len(records) > 0 {
		result.Columns = records[0].Keys
	}

	for _, record := range records {
		recordMap := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			recordMap[key] = record.Values[i]
		}
		result.Records = append(result.Records, recordMap)
	}

	if summary != nil {
		result.Summary.ResultAvailableAfter = summary.ResultAvailableAfter()
	}

	return result
}
