// Load envs from .env
// Load YAML config
// Provide default values
// Validate config

package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"x-impressions/internal/browser"
	"x-impressions/internal/session"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath    = "configs/config.yaml"
	DefaultPostURL = "https://x.com/ayman_web3/status/1992192624812540141?s=20"
)

type Config struct {
	PostURL  string `yaml:"post_url"`
	Headless bool   `yaml:"headless"`
	KeepOpen bool   `yaml:"keep_open"`
	//Browser
	UserAgent       string        `yaml:"user_agent"`
	InstallBrowsers bool          `yaml:"install_browsers"`
	Timeout         time.Duration `yaml:"timeout"`
	//Paths
	CookiesPath    string `yaml:"cookies_path"`
	ScreenshotsDir string `yaml:"screenshots_dir"`
	SnapshotDir    string `yaml:"snapshot_dir"`
	HistoryDir     string `yaml:"history_dir"`
	//Secrets, env only
	Username       string `yaml:"-" env:"X_USERNAME"`
	Password       string `yaml:"-" env:"X_PASSWORD"`
	TelegramToken  string `yaml:"-" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"-" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"-" env:"DATABASE_URL"`
}

// Default mirrors the values hardcoded at the top of the scraper.
func Default() *Config {
	return &Config{
		PostURL:        DefaultPostURL,
		Headless:       false,
		KeepOpen:       true,
		UserAgent:      browser.DefaultUserAgent,
		Timeout:        10 * time.Minute,
		CookiesPath:    ".cookies",
		ScreenshotsDir: "logs/screenshots",
		HistoryDir:     ".cache",
	}
}

// Credentials returns the X login pair read from the environment.
func (c *Config) Credentials() session.Credentials {
	return session.Credentials{
		Identifier: c.Username,
		Secret:     c.Password,
	}
}

// TelegramEnabled reports whether result notifications should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func Load() *Config {
	_ = godotenv.Load()

	cfg, err := LoadFrom(DefaultPath)
	if err != nil {
		log.Fatalf("❌ Invalid config: %v", err)
	}
	return cfg
}

// LoadFrom reads the YAML file at path (missing file means defaults), applies
// env overrides and validates the result.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Warning: Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	//Override with env vars
	cfg.Username = os.Getenv("X_USERNAME")
	cfg.Password = os.Getenv("X_PASSWORD")
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	//Set default values if not set
	if cfg.UserAgent == "" {
		cfg.UserAgent = browser.DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Minute
	}
	if cfg.CookiesPath == "" {
		cfg.CookiesPath = ".cookies"
	}
	if cfg.ScreenshotsDir == "" {
		cfg.ScreenshotsDir = "logs/screenshots"
	}
	if cfg.HistoryDir == "" {
		cfg.HistoryDir = ".cache"
	}

	//Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.PostURL == "" {
		return fmt.Errorf("post_url is required")
	}
	u, err := url.Parse(c.PostURL)
	if err != nil {
		return fmt.Errorf("invalid post_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("post_url must be an absolute http(s) URL, got %q", c.PostURL)
	}
	return nil
}
