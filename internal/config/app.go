package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

// Currency holds the exclusion lists. Global lists are comma-separated
// codes; ExcludedByProvider is a comma-separated list of provider:code
// entries.
type Currency struct {
	FiatExcluded       string `mapstructure:"fiat_excluded"`
	CryptoExcluded     string `mapstructure:"crypto_excluded"`
	ExcludedByProvider string `mapstructure:"excluded_by_provider"`
}

type Provider struct {
	Name                  string `mapstructure:"name"`
	Prefix                string `mapstructure:"prefix"`
	BaseURL               string `mapstructure:"base_url"`
	RefreshIntervalSec    int    `mapstructure:"refresh_interval_seconds"`
	CallDelayMillis       int    `mapstructure:"call_delay_millis"`
	RequiresFilter        bool   `mapstructure:"requires_filter"`
	UnknownTimestamp      bool   `mapstructure:"unknown_timestamp"`
	SymbolCacheTTLSeconds int    `mapstructure:"symbol_cache_ttl_seconds"`
}

type Pruning struct {
	StaleAfterSeconds    int `mapstructure:"stale_after_seconds"`
	PruneIntervalSeconds int `mapstructure:"prune_interval_seconds"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Logging    Logging    `mapstructure:"logging"`
	Currency   Currency   `mapstructure:"currency"`
	Providers  []Provider `mapstructure:"providers"`
	Pruning    Pruning    `mapstructure:"pruning"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional, local convenience only
	_ = godotenv.Load()

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	viper.SetDefault("http_server.port", "8080")
	viper.SetDefault("http_client.timeout_seconds", 10)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("pruning.stale_after_seconds", 600)
	viper.SetDefault("pruning.prune_interval_seconds", 60)

	_ = viper.BindEnv("http_server.port", "HTTP_PORT")
	_ = viper.BindEnv("logging.level", "LOG_LEVEL")

	// currency exclusion env vars
	_ = viper.BindEnv("currency.fiat_excluded", "FIAT_EXCLUDED")
	_ = viper.BindEnv("currency.crypto_excluded", "CRYPTO_EXCLUDED")
	_ = viper.BindEnv("currency.excluded_by_provider", "EXCLUDED_BY_PROVIDER")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &cfg, nil
}
