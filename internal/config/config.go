package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server" validate:"required"`
	Paths    PathsConfig    `yaml:"paths" validate:"required"`
	Defaults DefaultsConfig `yaml:"defaults" validate:"required"`
	Batch    BatchConfig    `yaml:"batch" validate:"required"`
	LogLevel string         `yaml:"log_level" validate:"required,oneof=debug info warn error"`
}

type ServerConfig struct {
	Port      int             `yaml:"port" validate:"required,min=1,max=65535"`
	RateLimit RateLimitConfig `yaml:"rate_limit" validate:"required"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" validate:"required,min=1,max=10000"`
	BurstSize         int `yaml:"burst_size" validate:"required,min=1,max=1000"`
}

type PathsConfig struct {
	DataDir string `yaml:"data_dir" validate:"required"`
}

// DefaultsConfig seeds the request fields the CLI does not ask for.
type DefaultsConfig struct {
	Niche          string `yaml:"niche" validate:"required"`
	HookType       string `yaml:"hook_type" validate:"required"`
	StructureType  string `yaml:"structure_type" validate:"required"`
	Duration       int    `yaml:"duration" validate:"required,min=1,max=120"`
	Tone           string `yaml:"tone" validate:"required,oneof=casual professional enthusiastic educational"`
	TargetAudience string `yaml:"target_audience" validate:"required,oneof=iniciantes intermediarios avancados geral"`
}

type BatchConfig struct {
	Workers int `yaml:"workers" validate:"required,min=1,max=64"`
}

// Load reads the config file, falling back to defaults when none exists.
// A .env file in the working directory is honored before path resolution.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configPath := getConfigPath()

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		cfg := Default()
		if err := cfg.validate(); err != nil {
			return nil, fmt.Errorf("validating default config: %w", err)
		}
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			RateLimit: RateLimitConfig{
				RequestsPerMinute: 120,
				BurstSize:         30,
			},
		},
		Paths: PathsConfig{
			DataDir: defaultDataDir(),
		},
		Defaults: DefaultsConfig{
			Niche:          "educacao",
			HookType:       "curiosity_gap",
			StructureType:  "problem_solution",
			Duration:       8,
			Tone:           "casual",
			TargetAudience: "geral",
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		LogLevel: "info",
	}
}

func getConfigPath() string {
	// Explicit config path via environment variable wins.
	if path := os.Getenv("ROTEIRO_CONFIG"); path != "" {
		return path
	}

	// XDG Base Directory Specification.
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "roteiro", "config.yaml")
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "roteiro", "config.yaml")
}

func defaultDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "roteiro")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "roteiro")
}

// expandTilde expands a leading ~/ to the user's home directory.
func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func (c *Config) validate() error {
	if c.Paths.DataDir == "" {
		c.Paths.DataDir = defaultDataDir()
	} else {
		c.Paths.DataDir = expandTilde(c.Paths.DataDir)
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}
