package model

import "time"

// Config is the whole application configuration.
type Config struct {
	Bot           BotConfig      `mapstructure:"bot"`
	Database      DatabaseConfig `mapstructure:"database"`
	Cache         CacheConfig    `mapstructure:"cache"`
	Redis         RedisConfig    `mapstructure:"redis"`
	Logging       LoggingConfig  `mapstructure:"logging"`
	Metrics       MetricsConfig  `mapstructure:"metrics"`
	LogWebhookURL string         `mapstructure:"log_webhook_url"`
}

type BotConfig struct {
	Token          string        `mapstructure:"token"`
	AppID          string        `mapstructure:"app_id"`
	DefaultPrefix  string        `mapstructure:"default_prefix"`
	TestGuilds     []string      `mapstructure:"test_guilds"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// CacheConfig selects the prefix cache backend ("memory" or "redis").
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	Size    int           `mapstructure:"size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}
