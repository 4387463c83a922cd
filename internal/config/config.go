package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// RelayConfig holds every tunable of the relay process.
type RelayConfig struct {
	Env        string `yaml:"env" env:"RELAY_ENV" env-default:"dev"`
	Server     `yaml:"server"`
	RateSource `yaml:"rate_source"`
	Journal    `yaml:"journal"`
	Storage    `yaml:"storage"`
	LogConfig  `yaml:"log_config"`
}

type Server struct {
	Host string `yaml:"host" env:"RELAY_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"RELAY_PORT" env-default:"8080"`
}

type RateSource struct {
	BaseURL    string   `yaml:"base_url" env:"RELAY_RATE_BASE_URL" env-default:"https://api.privatbank.ua/p24api/pubinfo"`
	Currencies []string `yaml:"currencies" env:"RELAY_CURRENCIES" env-default:"USD,EUR"`
	MaxDays    int      `yaml:"max_days" env:"RELAY_MAX_DAYS" env-default:"10"`
}

type Journal struct {
	Path string `yaml:"path" env:"RELAY_JOURNAL_PATH" env-default:"exchange.log"`
}

type Storage struct {
	BadgerDir string `yaml:"badger_dir" env:"RELAY_BADGER_DIR" env-default:"data"`
	CacheTTL  string `yaml:"cache_ttl" env:"RELAY_CACHE_TTL" env-default:"1h"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level" env:"RELAY_LOG_LEVEL" env-default:"INFO"`
}

// Load reads configuration from the YAML file named by RELAY_CONFIG_PATH,
// falling back to environment variables and defaults when the variable is
// unset. A named but missing or unreadable file is a startup failure.
func Load() (*RelayConfig, error) {
	var cfg RelayConfig

	configPath := os.Getenv("RELAY_CONFIG_PATH")
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return &cfg, nil
}

// Addr returns the listen address in host:port form.
func (c *RelayConfig) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
