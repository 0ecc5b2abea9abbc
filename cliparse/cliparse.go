package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port         int    `yaml:"port"`
	DatabaseURL  string `yaml:"database_url"`
	DatabaseType string `yaml:"database_type"`
	LogLevel     string `yaml:"log_level"`
	ConfigFile   string `yaml:"-"`
}

// ParseFlags validates flags and sets port number.
// Precedence: CLI flag, then env variable, then config file, then default.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-survey", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.ConfigFile, "c", "", "YAML config file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG_FILE")
	}

	// Then the config file
	if cfg.ConfigFile != "" {
		file, err := loadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, err
		}
		cfg.fill(file)
	}

	// Defaults
	cfg.fill(Config{
		Port:         3318,
		DatabaseType: "sqlite",
		LogLevel:     "info",
	})
	if cfg.DatabaseURL == "" && cfg.DatabaseType == "sqlite" {
		cfg.DatabaseURL = "surveys.db"
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// fill sets every empty field of cfg from other.
func (cfg *Config) fill(other Config) {
	if cfg.Port == 0 {
		cfg.Port = other.Port
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = other.DatabaseURL
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = other.DatabaseType
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = other.LogLevel
	}
}
