package graph

import (
	"context"
	"time"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// GraphClient is a read-only handle on a graph database.
// Implementations must be safe for concurrent use.
type GraphClient interface {
	// Connect establishes the underlying connection pool and verifies it.
	Connect(ctx context.Context) error

	// Close releases the connection pool. The owner calls it exactly once,
	// normally in a defer next to Connect.
	Close(ctx context.Context) error

	// Health reports the current connectivity of the store.
	Health(ctx context.Context) types.HealthStatus

	// Query runs a parameterized Cypher query in a read transaction and
	// returns every row. A query that matches nothing returns an empty
	// result and no error.
	Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)
}

// QueryResult is the materialized result of a Cypher query.
type QueryResult struct {
	// Records contains the result rows as maps of column name to value,
	// in the order the store returned them.
	Records []map[string]any

	// Columns contains the names of the columns in the result set.
	Columns []string

	// Summary contains metadata about the query execution.
	Summary QuerySummary
}

// QuerySummary carries execution metadata.
type QuerySummary struct {
	ExecutionTime time.Duration

	// ResultAvailableAfter is the server-side time until the first record
	// was available, when the driver reports it.
	ResultAvailableAfter time.Duration
}

// GraphClientConfig contains configuration options for graph database clients.
type GraphClientConfig struct {
	// URI is the connection URI for the graph database.
	// For Neo4j, use:
	//   - "bolt://host:port" for unencrypted connections
	//   - "bolt+s://host:port" for TLS encrypted connections
	//   - "bolt+ssc://host:port" for TLS with self-signed certificates
	//   - "neo4j://" or "neo4j+s://" for routing
	URI string

	Username string
	Password string

	// Database name to connect to.
	// Empty string uses the default database.
	Database string

	// MaxConnectionPoolSize limits the number of connections in the pool.
	// Zero or negative values use the driver default.
	MaxConnectionPoolSize int

	// ConnectionTimeout is the maximum time to wait for a connection.
	ConnectionTimeout time.Duration

	// MaxTransactionRetryTime bounds the driver's own retries of a read
	// transaction on transient failures.
	MaxTransactionRetryTime time.Duration

	// ConnectAttempts is the number of connectivity checks Connect makes
	// before giving up.
	ConnectAttempts int
}

// DefaultConfig returns a GraphClientConfig for a local Neo4j instance.
// Credentials are left empty and must be supplied by the caller.
func DefaultConfig() GraphClientConfig {
	return GraphClientConfig{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		MaxConnectionPoolSize:   50,
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 15 * time.Second,
		ConnectAttempts:         5,
	}
}

// Validate checks if the configuration is usable.
func (c GraphClientConfig) Validate() error {
	if c.URI == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Username cannot be empty")
	}
	if c.Password == "" {
		return types.NewError(ErrCodeGraphInvalidConfig, "Password cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectionTimeout must be positive")
	}
	if c.MaxTransactionRetryTime < 0 {
		return types.NewError(ErrCodeGraphInvalidConfig, "MaxTransactionRetryTime cannot be negative")
	}
	if c.ConnectAttempts < 1 {
		return types.NewError(ErrCodeGraphInvalidConfig, "ConnectAttempts must be at least 1")
	}
	return nil
}
