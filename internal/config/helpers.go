package config

import (
	"os"
	"path/filepath"

	"github.com/zero-day-ai/graphqa/internal/graphrag/graph"
	"github.com/zero-day-ai/graphqa/internal/llm"
	"github.com/zero-day-ai/graphqa/internal/observability"
)

// DefaultHomeDir returns ~/.graphqa, or a directory under the temp dir when
// the user home cannot be determined.
func DefaultHomeDir() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".graphqa")
	}
	return filepath.Join(userHome, ".graphqa")
}

// DefaultConfigPath returns the default config file path for a given home directory
func DefaultConfigPath(homeDir string) string {
	return filepath.Join(homeDir, "config.yaml")
}

// ClientConfig converts the graph section into the Neo4j client configuration.
func (g GraphConfig) ClientConfig() graph.GraphClientConfig {
	return graph.GraphClientConfig{
		URI:                     g.URI,
		Username:                g.Username,
		Password:                g.Password,
		Database:                g.Database,
		MaxConnectionPoolSize:   g.MaxConnectionPoolSize,
		ConnectionTimeout:       g.ConnectionTimeout,
		MaxTransactionRetryTime: g.MaxTransactionRetryTime,
		ConnectAttempts:         g.ConnectAttempts,
	}
}

// ProviderConfig converts the llm section into a provider configuration.
func (l LLMConfig) ProviderConfig() llm.ProviderConfig {
	return llm.ProviderConfig{
		Type:      llm.ProviderType(l.Provider),
		APIKey:    l.APIKey,
		BaseURL:   l.BaseURL,
		Model:     l.Model,
		MaxTokens: l.MaxTokens,
		Timeout:   l.Timeout,
		Responses: l.MockResponses,
	}
}

// RetryConfig converts the retry section.
func (l LLMConfig) RetryConfig() llm.RetryConfig {
	return llm.RetryConfig{
		MaxAttempts:       l.Retry.MaxAttempts,
		InitialBackoff:    l.Retry.InitialBackoff,
		MaxBackoff:        l.Retry.MaxBackoff,
		RequestsPerSecond: l.Retry.RequestsPerSecond,
		Burst:             l.Retry.Burst,
	}
}

// LoggerConfig converts the logging section.
func (l LoggingConfig) LoggerConfig() observability.LoggingConfig {
	return observability.LoggingConfig{Level: l.Level, Format: l.Format}
}

// LogExportConfig converts the OTLP part of the logging section. Exported
// records share the tracing service name.
func (c Config) LogExportConfig() observability.LogExportConfig {
	return observability.LogExportConfig{
		Endpoint:    c.Logging.OTLPEndpoint,
		Insecure:    c.Logging.OTLPInsecure,
		ServiceName: c.Tracing.ServiceName,
	}
}

// ExporterConfig converts the tracing section.
func (t TracingConfig) ExporterConfig() observability.TracingConfig {
	return observability.TracingConfig{
		Enabled:     t.Enabled,
		Endpoint:    t.Endpoint,
		Insecure:    t.Insecure,
		ServiceName: t.ServiceName,
		SampleRatio: t.SampleRatio,
	}
}

// EndpointConfig converts the metrics section.
func (m MetricsConfig) EndpointConfig() observability.MetricsConfig {
	return observability.MetricsConfig{Enabled: m.Enabled, Address: m.Address}
}

// redactedValue replaces secrets in printed configuration.
const redactedValue = "[REDACTED]"

// Redacted returns a copy of c with secrets masked, for display.
func (c Config) Redacted() Config {
	if c.Graph.Password != "" {
		c.Graph.Password = redactedValue
	}
	if c.LLM.APIKey != "" {
		c.LLM.APIKey = redactedValue
	}
	return c
}
