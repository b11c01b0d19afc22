package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL = "https://rahul-samedavar-minetheflagbe.hf.space"
	leaderboardWSPath = "/ws/leaderboard"
)

// Config holds all runtime parameters of the client.
type Config struct {
	APIBaseURL string
	WSURL      string
	StatePath  string
	LogLevel   slog.Level
}

// Load reads the configuration from environment variables, optionally
// picking up a .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	base := os.Getenv("MTF_API_URL")
	if base == "" {
		base = defaultAPIBaseURL
	}
	base = strings.TrimRight(base, "/")

	parsed, err := url.Parse(base)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("invalid MTF_API_URL %q", base)
	}

	wsURL := os.Getenv("MTF_WS_URL")
	if wsURL == "" {
		wsURL, err = deriveWSURL(parsed)
		if err != nil {
			return nil, err
		}
	}

	statePath := os.Getenv("MTF_STATE_PATH")
	if statePath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine state path, set MTF_STATE_PATH: %w", err)
		}
		statePath = filepath.Join(configDir, "minetheflag", "state.db")
	}

	level, err := parseLogLevel(os.Getenv("MTF_LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	return &Config{
		APIBaseURL: base,
		WSURL:      wsURL,
		StatePath:  statePath,
		LogLevel:   level,
	}, nil
}

// deriveWSURL maps the API base URL to the leaderboard socket URL:
// https becomes wss, http becomes ws.
func deriveWSURL(base *url.URL) (string, error) {
	ws := *base
	switch base.Scheme {
	case "https":
		ws.Scheme = "wss"
	case "http":
		ws.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported MTF_API_URL scheme %q", base.Scheme)
	}
	ws.Path = leaderboardWSPath
	ws.RawQuery = ""
	return ws.String(), nil
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "", "warn":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid MTF_LOG_LEVEL %q", value)
	}
}
