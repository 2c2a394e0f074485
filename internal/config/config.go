package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider  string        `yaml:"provider"` // yahoo, rest
		BaseURL   string        `yaml:"base_url"`
		APIKey    string        `yaml:"api_key"`
		RateLimit float64       `yaml:"rate_limit"` // requests per second
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"data_source"`
	Watchlist struct {
		Path     string   `yaml:"path"`
		Defaults []string `yaml:"defaults"`
	} `yaml:"watchlist"`
	Screener struct {
		Market  string  `yaml:"market"`
		MinROE  float64 `yaml:"min_roe"`
		MaxPE   float64 `yaml:"max_pe"`
		Workers int     `yaml:"workers"`
	} `yaml:"screener"`
	Radar struct {
		CacheTTL     time.Duration `yaml:"cache_ttl"`
		CacheBackend string        `yaml:"cache_backend"` // memory, redis, none
	} `yaml:"radar"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		RadarCron  string `yaml:"radar_cron"`
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	LLM struct {
		Provider string `yaml:"provider"` // deepseek, gemini
		APIKey   string `yaml:"api_key"`
		Model    string `yaml:"model"`
		BaseURL  string `yaml:"base_url"`
	} `yaml:"llm"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads an optional .env file and the YAML config at path, then applies
// environment variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STOCKRADAR_DATA_SOURCE"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("STOCKRADAR_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("STOCKRADAR_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("WATCHLIST_PATH"); v != "" {
		cfg.Watchlist.Path = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
		if cfg.Radar.CacheBackend == "" {
			cfg.Radar.CacheBackend = "redis"
		}
	}
	if v := os.Getenv("RADAR_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Radar.CacheTTL = d
		}
	}
	if v := os.Getenv("SCREENER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Screener.Workers = n
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_RADAR"); v != "" {
		cfg.Schedule.RadarCron = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	// Provider-specific keys only fill an empty api_key.
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "gemini":
			cfg.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
		default:
			cfg.LLM.APIKey = os.Getenv("DEEPSEEK_API_KEY")
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.RateLimit == 0 {
		cfg.DataSource.RateLimit = 5
	}
	if cfg.DataSource.Timeout == 0 {
		cfg.DataSource.Timeout = 30 * time.Second
	}
	if cfg.Watchlist.Path == "" {
		cfg.Watchlist.Path = "data/watchlist.json"
	}
	if cfg.Watchlist.Defaults == nil {
		cfg.Watchlist.Defaults = []string{"AAPL", "NVDA", "MSFT"}
	}
	if cfg.Screener.Market == "" {
		cfg.Screener.Market = "us"
	}
	if cfg.Screener.MinROE == 0 {
		cfg.Screener.MinROE = 0.15
	}
	if cfg.Screener.MaxPE == 0 {
		cfg.Screener.MaxPE = 40
	}
	if cfg.Screener.Workers == 0 {
		cfg.Screener.Workers = 4
	}
	if cfg.Radar.CacheTTL == 0 {
		cfg.Radar.CacheTTL = 5 * time.Minute
	}
	if cfg.Radar.CacheBackend == "" {
		cfg.Radar.CacheBackend = "memory"
	}
	if cfg.Schedule.RadarCron == "" {
		cfg.Schedule.RadarCron = "0 0 22 * * 1-5"
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 0 8 * * 1"
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "deepseek"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo":
	case "rest":
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for the rest provider")
		}
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	if c.DataSource.RateLimit <= 0 {
		return fmt.Errorf("data_source.rate_limit must be positive")
	}
	if c.Screener.Workers < 1 {
		return fmt.Errorf("screener.workers must be at least 1")
	}
	if c.Screener.MaxPE <= 0 {
		return fmt.Errorf("screener.max_pe must be positive")
	}
	if c.Radar.CacheTTL < 0 {
		return fmt.Errorf("radar.cache_ttl must not be negative")
	}
	switch c.Radar.CacheBackend {
	case "memory", "none":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis cache backend")
		}
	default:
		return fmt.Errorf("radar.cache_backend %q is not supported", c.Radar.CacheBackend)
	}
	switch c.LLM.Provider {
	case "deepseek", "gemini":
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	return nil
}

// ValidateTelegram checks the fields needed to push notifications.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
