package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type App struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

type Server struct {
	Host              string   `json:"host"`
	Port              string   `json:"port"`
	RequestTimeoutSec int      `json:"request_timeout_sec"`
	AllowedOrigins    []string `json:"allowed_origins"`
}

type Log struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type Yahoo struct {
	BaseURL string `json:"base_url"`
	// Crumb and Cookie authenticate the v7 quote endpoint. Both come from
	// the same browser session.
	Crumb  string `json:"crumb"`
	Cookie string `json:"cookie"`
}

type NewsAPI struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

// Config is built once at startup and passed down by value.
type Config struct {
	App     App     `json:"app"`
	Server  Server  `json:"server"`
	Log     Log     `json:"log"`
	Yahoo   Yahoo   `json:"yahoo"`
	NewsAPI NewsAPI `json:"newsapi"`
}

func Default() Config {
	return Config{
		App: App{
			Name:        "QuantPulse India Backend",
			Version:     "0.1.0",
			Description: "Backend API service for QuantPulse India stock analytics platform",
		},
		Server: Server{
			Host:              "0.0.0.0",
			Port:              "8000",
			RequestTimeoutSec: 10,
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"http://localhost:5174",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:5173",
				"http://127.0.0.1:5174",
				"http://localhost:8080",
			},
		},
		Log:     Log{Level: "info", Format: "text"},
		Yahoo:   Yahoo{BaseURL: "https://query1.finance.yahoo.com"},
		NewsAPI: NewsAPI{BaseURL: "https://newsapi.org"},
	}
}

// Addr is the listen address for the HTTP server.
func (s Server) Addr() string { return s.Host + ":" + s.Port }

// Load reads .env (if present) into the environment, then JSON config from
// path. If path is empty or the file does not exist, defaults are used.
// Environment variables override select fields for secrecy.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitCSV(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Yahoo.BaseURL = v
	}
	if v := os.Getenv("YAHOO_CRUMB"); v != "" {
		cfg.Yahoo.Crumb = v
	}
	if v := os.Getenv("YAHOO_COOKIE"); v != "" {
		cfg.Yahoo.Cookie = v
	}
	if v := os.Getenv("NEWSAPI_KEY"); v != "" {
		cfg.NewsAPI.APIKey = v
	}
	if v := os.Getenv("NEWSAPI_BASE_URL"); v != "" {
		cfg.NewsAPI.BaseURL = v
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
