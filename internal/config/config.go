package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	SheetCSVURL    string        `mapstructure:"sheet_csv_url"`
	HTTPAddr       string        `mapstructure:"http_addr"`
	FetchTimeout   time.Duration `mapstructure:"fetch_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	MatchMode      string        `mapstructure:"match_mode"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	RedisAddr      string        `mapstructure:"redis_addr"`
	BanStrikes     int           `mapstructure:"ban_strikes"`
	BanWindow      time.Duration `mapstructure:"ban_window"`
	BanDuration    time.Duration `mapstructure:"ban_duration"`
	TrustedProxies []string      `mapstructure:"trusted_proxies"`
}

// Load reads LOOKUP_* environment variables, and config.yaml from the working
// directory or /etc/designs-lookup when present.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/designs-lookup")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sheet_csv_url", "")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("fetch_timeout", 10*time.Second)
	v.SetDefault("max_body_bytes", 8<<20)
	v.SetDefault("match_mode", "exact")
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("redis_addr", "")
	v.SetDefault("ban_strikes", 20)
	v.SetDefault("ban_window", time.Minute)
	v.SetDefault("ban_duration", 15*time.Minute)
	v.SetDefault("trusted_proxies", []string{})

	v.SetEnvPrefix("lookup")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func fromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.SheetCSVURL == "" {
		return Config{}, errors.New("sheet_csv_url is required (set LOOKUP_SHEET_CSV_URL)")
	}
	if cfg.FetchTimeout <= 0 {
		return Config{}, fmt.Errorf("fetch_timeout must be positive, got %s", cfg.FetchTimeout)
	}
	return cfg, nil
}
