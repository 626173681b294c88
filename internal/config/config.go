package config

import (
	"time"

	"github.com/zero-day-ai/graphqa/internal/prompt"
)

// Config is the root configuration for graphqa.
type Config struct {
	Graph     GraphConfig         `mapstructure:"graph" yaml:"graph" json:"graph" validate:"required"`
	LLM       LLMConfig           `mapstructure:"llm" yaml:"llm" json:"llm" validate:"required"`
	Retrieval RetrievalConfig     `mapstructure:"retrieval" yaml:"retrieval" json:"retrieval"`
	Prompt    prompt.PromptConfig `mapstructure:"prompt" yaml:"prompt" json:"prompt"`
	Query     QueryConfig         `mapstructure:"query" yaml:"query" json:"query"`
	Logging   LoggingConfig       `mapstructure:"logging" yaml:"logging" json:"logging"`
	Tracing   TracingConfig       `mapstructure:"tracing" yaml:"tracing" json:"tracing"`
	Metrics   MetricsConfig       `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// GraphConfig contains Neo4j connection settings.
type GraphConfig struct {
	URI                     string        `mapstructure:"uri" yaml:"uri" json:"uri" validate:"required"`
	Username                string        `mapstructure:"username" yaml:"username" json:"username" validate:"required"`
	Password                string        `mapstructure:"password" yaml:"password" json:"password"`
	Database                string        `mapstructure:"database" yaml:"database" json:"database"`
	MaxConnectionPoolSize   int           `mapstructure:"max_connection_pool_size" yaml:"max_connection_pool_size" json:"max_connection_pool_size" validate:"min=1,max=1000"`
	ConnectionTimeout       time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout" json:"connection_timeout" validate:"min=1s"`
	MaxTransactionRetryTime time.Duration `mapstructure:"max_transaction_retry_time" yaml:"max_transaction_retry_time" json:"max_transaction_retry_time" validate:"min=0"`
	ConnectAttempts         int           `mapstructure:"connect_attempts" yaml:"connect_attempts" json:"connect_attempts" validate:"min=1,max=20"`
}

// LLMConfig selects and configures the completion backend.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider" yaml:"provider" json:"provider" validate:"required,oneof=mistral openai ollama anthropic googleai mock"`
	APIKey      string        `mapstructure:"api_key" yaml:"api_key,omitempty" json:"api_key,omitempty"`
	BaseURL     string        `mapstructure:"base_url" yaml:"base_url,omitempty" json:"base_url,omitempty" validate:"omitempty,url"`
	Model       string        `mapstructure:"model" yaml:"model,omitempty" json:"model,omitempty"`
	Temperature float64       `mapstructure:"temperature" yaml:"temperature" json:"temperature" validate:"min=0,max=2"`
	MaxTokens   int           `mapstructure:"max_tokens" yaml:"max_tokens" json:"max_tokens" validate:"min=0"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout" validate:"min=0"`
	Retry       RetryConfig   `mapstructure:"retry" yaml:"retry" json:"retry"`

	// MockResponses are the canned replies of the mock provider; empty echoes the prompt.
	MockResponses []string `mapstructure:"mock_responses" yaml:"mock_responses,omitempty" json:"mock_responses,omitempty"`
}

// RetryConfig controls retries and rate limiting of completion calls.
type RetryConfig struct {
	MaxAttempts       int           `mapstructure:"max_attempts" yaml:"max_attempts" json:"max_attempts" validate:"min=1,max=10"`
	InitialBackoff    time.Duration `mapstructure:"initial_backoff" yaml:"initial_backoff" json:"initial_backoff" validate:"min=0"`
	MaxBackoff        time.Duration `mapstructure:"max_backoff" yaml:"max_backoff" json:"max_backoff" validate:"min=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" yaml:"requests_per_second" json:"requests_per_second" validate:"min=0"`
	Burst             int           `mapstructure:"burst" yaml:"burst" json:"burst" validate:"min=0"`
}

// RetrievalConfig tunes the fact retriever.
type RetrievalConfig struct {
	// Parallelism is the number of concurrent term lookups; 1 is sequential.
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism" json:"parallelism" validate:"min=1,max=64"`
}

// QueryConfig bounds each question end to end.
type QueryConfig struct {
	// Timeout applies to retrieval plus completion; 0 disables it.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout" validate:"min=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" json:"format" validate:"oneof=text json"`

	// OTLPEndpoint, when set, also ships log records to this OTLP/gRPC collector.
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint,omitempty" json:"otlp_endpoint,omitempty"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure" yaml:"otlp_insecure" json:"otlp_insecure"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Endpoint    string  `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint"`
	Insecure    bool    `mapstructure:"insecure" yaml:"insecure" json:"insecure"`
	ServiceName string  `mapstructure:"service_name" yaml:"service_name" json:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio" yaml:"sample_ratio" json:"sample_ratio" validate:"min=0,max=1"`
}

// MetricsConfig contains metrics export configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Address string `mapstructure:"address" yaml:"address" json:"address"`
}
