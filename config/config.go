package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"peacebot/model"
)

const envPrefix = "PEACEBOT"

// Load reads the configuration and validates it.
func Load(path string) (*model.Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads .env, the optional config file at path and PEACEBOT_* environment
// variables, in increasing order of precedence. The result is not validated.
func Read(path string) (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// accepted without prefix for older deployments
	_ = v.BindEnv("bot.token", envPrefix+"_BOT_TOKEN", "BOT_TOKEN")
	_ = v.BindEnv("bot.app_id", envPrefix+"_BOT_APP_ID", "APP_ID")
	_ = v.BindEnv("log_webhook_url", envPrefix+"_LOG_WEBHOOK_URL", "LOG_WEBHOOK_URL")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg model.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.token", "")
	v.SetDefault("bot.app_id", "")
	v.SetDefault("bot.default_prefix", "!")
	v.SetDefault("bot.test_guilds", []string{})
	v.SetDefault("bot.command_timeout", 10*time.Second)
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "./data/peacebot.db")
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.size", 10_000)
	v.SetDefault("cache.ttl", 30*time.Minute)
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file_path", "./data/peacebot.log")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("log_webhook_url", "")
}

// Validate rejects configurations the bot cannot start with.
func Validate(cfg *model.Config) error {
	var errs []error
	if cfg.Bot.Token == "" {
		errs = append(errs, errors.New("bot.token (BOT_TOKEN) is required"))
	}
	if n := utf8.RuneCountInString(cfg.Bot.DefaultPrefix); n == 0 || n > 10 {
		errs = append(errs, errors.New("bot.default_prefix must be 1 to 10 characters"))
	}
	switch cfg.Database.Driver {
	case "sqlite3", "pgx":
	default:
		errs = append(errs, fmt.Errorf("unsupported database.driver %q", cfg.Database.Driver))
	}
	switch cfg.Cache.Backend {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("unsupported cache.backend %q", cfg.Cache.Backend))
	}
	if cfg.Bot.CommandTimeout <= 0 {
		errs = append(errs, errors.New("bot.command_timeout must be positive"))
	}
	return errors.Join(errs...)
}
