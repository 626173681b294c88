package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/graphqa/internal/llm"
	"github.com/zero-day-ai/graphqa/internal/types"
)

// EnvPrefix prefixes every environment override, e.g. GRAPHQA_GRAPH_URI.
const EnvPrefix = "GRAPHQA"

// envAliases binds conventional variable names after the prefixed one.
var envAliases = map[string][]string{
	"graph.uri":      {"NEO4J_URI"},
	"graph.username": {"NEO4J_USER", "NEO4J_USERNAME"},
	"graph.password": {"NEO4J_PWD", "NEO4J_PASSWORD"},
	"graph.database": {"NEO4J_DATABASE"},

	// Keys omitted from the encoded defaults must be bound to be overridable.
	"llm.api_key":           nil,
	"llm.base_url":          nil,
	"llm.model":             nil,
	"prompt.template":       nil,
	"prompt.template_file":  nil,
	"logging.otlp_endpoint": nil,
}

// providerKeyEnv is consulted when llm.api_key is still empty after loading.
var providerKeyEnv = map[llm.ProviderType]string{
	llm.ProviderMistral:   "MISTRAL_API_KEY",
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
	llm.ProviderGoogleAI:  "GOOGLE_API_KEY",
}

// ConfigLoader handles loading configuration from files.
type ConfigLoader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper. Values resolve in
// order: environment, file, defaults.
type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
	}
}

// Load loads configuration from the specified file path.
// Returns an error if the file doesn't exist or cannot be parsed.
func (l *viperConfigLoader) Load(path string) (*Config, error) {
	return l.load(path, true)
}

// LoadWithDefaults loads configuration from the specified file path.
// If the file doesn't exist, defaults plus environment overrides are used.
func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	return l.load(path, false)
}

func (l *viperConfigLoader) load(path string, required bool) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !required:
		case err != nil:
			return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to read config file "+path, err)
		default:
			if err := v.MergeConfig(strings.NewReader(interpolateString(string(data)))); err != nil {
				return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to parse config file "+path, err)
			}
		}
	} else if required {
		return nil, types.NewError(types.CONFIG_LOAD_FAILED, "no config file given")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to unmarshal config", err)
	}
	applyProviderKey(&cfg)

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newViper returns a viper instance seeded with the defaults and wired to
// the environment.
func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaults, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to encode defaults", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED, "failed to load defaults", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, aliases := range envAliases {
		names := append([]string{envName(key)}, aliases...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, types.WrapError(types.CONFIG_LOAD_FAILED, fmt.Sprintf("failed to bind %s", key), err)
		}
	}
	return v, nil
}

// envName returns the prefixed variable for a config key.
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// applyProviderKey fills llm.api_key from the provider's conventional
// variable (MISTRAL_API_KEY, ...) when nothing else set it.
func applyProviderKey(cfg *Config) {
	if cfg.LLM.APIKey != "" {
		return
	}
	if name, ok := providerKeyEnv[llm.ProviderType(cfg.LLM.Provider)]; ok {
		cfg.LLM.APIKey = os.Getenv(name)
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolateString replaces ${VAR_NAME} with environment variable values.
// Unset variables are left as written.
func interpolateString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if envValue, ok := os.LookupEnv(varName); ok {
			return envValue
		}
		return match
	})
}
