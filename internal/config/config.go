// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jonathan/portfolio-site/internal/server/ratelimit"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "PORTFOLIO"

// Config is the site configuration. Values come from defaults, then an
// optional YAML/JSON file, then the environment.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Content   ContentConfig   `mapstructure:"content"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Email     EmailConfig     `mapstructure:"email"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	CV        CVConfig        `mapstructure:"cv"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Site      SiteConfig      `mapstructure:"site"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ContentConfig locates the content document. Path and URL are mutually exclusive.
type ContentConfig struct {
	Path  string        `mapstructure:"path"`
	URL   string        `mapstructure:"url"`
	TTL   time.Duration `mapstructure:"ttl"`
	Watch bool          `mapstructure:"watch"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"` // empty keeps leads in memory
}

type EmailConfig struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
	OwnerAddress string `mapstructure:"owner_address"`
	AutoReply    bool   `mapstructure:"auto_reply"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
	APIBase  string `mapstructure:"api_base"`
}

type NotifyConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// CVConfig locates the downloadable CV: S3 when a bucket is set, else Path.
type CVConfig struct {
	Path        string `mapstructure:"path"`
	S3Bucket    string `mapstructure:"s3_bucket"`
	S3Key       string `mapstructure:"s3_key"`
	S3Region    string `mapstructure:"s3_region"`
	S3Endpoint  string `mapstructure:"s3_endpoint"`
	S3AccessKey string `mapstructure:"s3_access_key"`
	S3SecretKey string `mapstructure:"s3_secret_key"`
}

type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	ContactLimit    int           `mapstructure:"contact_limit"`
	ContactWindow   time.Duration `mapstructure:"contact_window"`
	DefaultLimit    int           `mapstructure:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

type SiteConfig struct {
	URL string `mapstructure:"url"`
}

var defaults = map[string]any{
	"server.port":                 8080,
	"server.read_timeout":         "15s",
	"server.write_timeout":        "30s",
	"content.path":                "data/content.json",
	"content.url":                 "",
	"content.ttl":                 "60s",
	"content.watch":               false,
	"database.url":                "",
	"email.resend_api_key":        "",
	"email.from":                  "noreply@example.com",
	"email.owner_address":         "",
	"email.auto_reply":            true,
	"telegram.bot_token":          "",
	"telegram.chat_id":            "",
	"telegram.api_base":           "https://api.telegram.org",
	"notify.timeout":              "5s",
	"cv.path":                     "public/cv.pdf",
	"cv.s3_bucket":                "",
	"cv.s3_key":                   "cv.pdf",
	"cv.s3_region":                "us-east-1",
	"cv.s3_endpoint":              "",
	"cv.s3_access_key":            "",
	"cv.s3_secret_key":            "",
	"rate_limit.enabled":          true,
	"rate_limit.contact_limit":    ratelimit.ContactLimit,
	"rate_limit.contact_window":   ratelimit.ContactWindow.String(),
	"rate_limit.default_limit":    300,
	"rate_limit.default_window":   "60s",
	"rate_limit.cleanup_interval": "5m",
	"rate_limit.whitelist":        []string{},
	"rate_limit.blacklist":        []string{},
	"site.url":                    "http://localhost:8080",
}

// Conventional variable names accepted alongside the PORTFOLIO_ ones.
var envAliases = map[string]string{
	"database.url":         "DATABASE_URL",
	"email.resend_api_key": "RESEND_API_KEY",
	"email.from":           "EMAIL_FROM",
	"email.owner_address":  "CONTACT_EMAIL",
	"telegram.bot_token":   "TELEGRAM_BOT_TOKEN",
	"telegram.chat_id":     "TELEGRAM_CHAT_ID",
	"site.url":             "SITE_URL",
	"server.port":          "PORT",
}

// Load reads the configuration. path may be empty; when set the file must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, alias := range envAliases {
		envKey := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, alias); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", alias, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	// A content URL replaces the default path.
	if cfg.Content.URL != "" && cfg.Content.Path == defaults["content.path"] {
		cfg.Content.Path = ""
	}
	cfg.RateLimit.Whitelist = splitList(cfg.RateLimit.Whitelist)
	cfg.RateLimit.Blacklist = splitList(cfg.RateLimit.Blacklist)
	return &cfg, nil
}

// splitList accepts both YAML lists and comma-separated environment values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks that the configuration has valid values.
// Note: database.url is only required by the migrate command, which checks
// it itself.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("config error: 'server.port' must be between 1 and 65535"))
	}

	// Validate mutually exclusive fields
	if c.Content.Path != "" && c.Content.URL != "" {
		errs = append(errs, fmt.Errorf("config error: 'content.path' and 'content.url' are mutually exclusive"))
	}
	if c.Content.Path == "" && c.Content.URL == "" {
		errs = append(errs, fmt.Errorf("config error: one of 'content.path' or 'content.url' is required"))
	}
	if c.Content.URL != "" {
		if u, err := url.Parse(c.Content.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("config error: 'content.url' must be an http(s) URL"))
		}
		if c.Content.Watch {
			errs = append(errs, fmt.Errorf("config error: 'content.watch' requires 'content.path'"))
		}
	}
	if c.Content.TTL < 0 {
		errs = append(errs, fmt.Errorf("config error: 'content.ttl' must be non-negative"))
	}

	if c.Notify.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("config error: 'notify.timeout' must be positive"))
	}

	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		errs = append(errs, fmt.Errorf("config error: 'telegram.bot_token' and 'telegram.chat_id' must be set together"))
	}

	if (c.CV.S3AccessKey == "") != (c.CV.S3SecretKey == "") {
		errs = append(errs, fmt.Errorf("config error: 'cv.s3_access_key' and 'cv.s3_secret_key' must be set together"))
	}
	if c.CV.S3Bucket != "" && c.CV.S3Key == "" {
		errs = append(errs, fmt.Errorf("config error: 'cv.s3_key' is required with 'cv.s3_bucket'"))
	}

	rl := c.RateLimit
	if rl.ContactLimit <= 0 || rl.DefaultLimit <= 0 {
		errs = append(errs, fmt.Errorf("config error: rate limits must be positive"))
	}
	if rl.ContactWindow <= 0 || rl.DefaultWindow <= 0 {
		errs = append(errs, fmt.Errorf("config error: rate limit windows must be positive"))
	}
	if rl.CleanupInterval < 0 {
		errs = append(errs, fmt.Errorf("config error: 'rate_limit.cleanup_interval' must be non-negative"))
	}

	return errors.Join(errs...)
}

// ContentSource returns the configured content location and whether it is a URL.
func (c *Config) ContentSource() (string, bool) {
	if c.Content.URL != "" {
		return c.Content.URL, true
	}
	return c.Content.Path, false
}

// Limiter builds the rate limiter configuration.
func (c *Config) Limiter() *ratelimit.Config {
	rl := c.RateLimit
	return &ratelimit.Config{
		Enabled:         rl.Enabled,
		DefaultLimit:    rl.DefaultLimit,
		DefaultWindow:   rl.DefaultWindow,
		CleanupInterval: rl.CleanupInterval,
		Whitelist:       ratelimit.IPSet(rl.Whitelist),
		Blacklist:       ratelimit.IPSet(rl.Blacklist),
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(rl.ContactLimit, rl.ContactWindow),
	}
}

// TelegramEnabled reports whether Telegram credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// EmailEnabled reports whether a Resend API key is configured.
func (c *Config) EmailEnabled() bool {
	return c.Email.ResendAPIKey != ""
}
