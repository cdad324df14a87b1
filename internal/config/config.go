// Package config loads the command line configuration.
//
// Sources are applied with priority: Env > File > Default. Flags are handled
// by the caller on top of the loaded value.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/stabilefrisur/aa-data-handler/pkg/adapters/filelog"
	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

// EnvPrefix is the environment variable prefix, e.g. AADATA_LOG_FILE.
const EnvPrefix = "AADATA_"

// Config holds the CLI settings.
type Config struct {
	// LogFile is the path of the file log.
	LogFile string `koanf:"log_file" yaml:"log_file"`
	// DataDir is the default directory for save and load.
	DataDir string `koanf:"data_dir" yaml:"data_dir"`
	// TimestampLayout is a Go time layout for file name prefixes.
	TimestampLayout string `koanf:"timestamp_layout" yaml:"timestamp_layout"`
	// IDStrategy is one of uuid4, uuid7, ulid.
	IDStrategy string `koanf:"id_strategy" yaml:"id_strategy"`
	// LogLevel is the action log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level" yaml:"log_level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LogFile:         filelog.DefaultPath,
		DataDir:         "data",
		TimestampLayout: core.DefaultTimestampLayout,
		IDStrategy:      "uuid4",
		LogLevel:        "info",
	}
}

// Load reads the YAML file at path (skipped when empty), then environment
// variables, over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// AADATA_LOG_FILE -> log_file
	envTransformer := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformer), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yamlv3.Marshal(cfg)
}
