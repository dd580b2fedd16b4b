package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "TRACKER_"
	configFileEnv = envPrefix + "CONFIG_FILE"
)

type Config struct {
	DBPath    string `koanf:"db_path"`
	HTTPPort  string `koanf:"http_port"`
	LogLevel  string `koanf:"log_level"`
	QueueSize int    `koanf:"queue_size"`
}

func defaults() map[string]interface{} {
	// In all cases the default behavior should be a local single-user setup
	return map[string]interface{}{
		"db_path":    "data/expense-tracker.db",
		"http_port":  "9446",
		"log_level":  "info",
		"queue_size": 1000,
	}
}

// ProcessEnvironmentVariables layers defaults, an optional YAML file named by
// TRACKER_CONFIG_FILE and TRACKER_* environment variables, in that order.
// A .env file in the working directory is loaded first when present.
func ProcessEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := os.Getenv(configFileEnv); len(path) != 0 {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if len(cfg.DBPath) == 0 {
		return nil, errors.New("db_path must not be empty")
	}
	if cfg.QueueSize < 1 {
		return nil, fmt.Errorf("queue_size must be positive, got %d", cfg.QueueSize)
	}
	return &cfg, nil
}
