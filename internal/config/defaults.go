package config

import (
	"time"

	"github.com/zero-day-ai/graphqa/internal/llm"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	retry := llm.DefaultRetryConfig()

	return &Config{
		Graph: GraphConfig{
			URI:                     "bolt://localhost:7687",
			Username:                "neo4j",
			MaxConnectionPoolSize:   50,
			ConnectionTimeout:       30 * time.Second,
			MaxTransactionRetryTime: 15 * time.Second,
			ConnectAttempts:         5,
		},
		LLM: LLMConfig{
			Provider:    string(llm.ProviderMistral),
			Temperature: llm.DefaultTemperature,
			Timeout:     60 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:       retry.MaxAttempts,
				InitialBackoff:    retry.InitialBackoff,
				MaxBackoff:        retry.MaxBackoff,
				RequestsPerSecond: retry.RequestsPerSecond,
				Burst:             retry.Burst,
			},
		},
		Retrieval: RetrievalConfig{
			Parallelism: 1,
		},
		Query: QueryConfig{
			Timeout: 2 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			Endpoint:    "localhost:4317",
			Insecure:    true,
			ServiceName: "graphqa",
			SampleRatio: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: ":9464",
		},
	}
}
