package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// App is the service configuration loaded at startup.
type App struct {
	Server    ServerConfig    `mapstructure:"server"`
	Warehouse WarehouseConfig `mapstructure:"warehouse"`
	Cache     CacheConfig     `mapstructure:"cache"`
	AI        AIConfig        `mapstructure:"ai"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type WarehouseConfig struct {
	// Platform selects the store backend ("snowflake" or "databricks").
	Platform    string `mapstructure:"platform"`
	ProfilePath string `mapstructure:"profile_path"`
	Profile     string `mapstructure:"profile"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type AIConfig struct {
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// Load reads the application config file and applies defaults.
func Load(path string) (*App, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.addr", "localhost:8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("warehouse.platform", "snowflake")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("ai.model", "claude-3-5-sonnet")
	v.SetDefault("ai.max_tokens", 1000)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg App
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
