package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/graphqa/internal/types"
)

// Marshal encodes cfg as YAML with durations written as strings ("30s").
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, types.WrapError(types.CONFIG_WRITE_FAILED, "failed to encode config", err)
	}
	return data, nil
}

// Save writes cfg to path, creating parent directories. The file is readable
// by the owner only since it may hold credentials.
func Save(cfg *Config, path string) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return types.WrapError(types.CONFIG_WRITE_FAILED, "failed to create config directory", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return types.WrapError(types.CONFIG_WRITE_FAILED, "failed to write "+path, err)
	}
	return nil
}
