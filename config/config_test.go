package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MTF_API_URL", "")
	t.Setenv("MTF_WS_URL", "")
	t.Setenv("MTF_STATE_PATH", t.TempDir()+"/state.db")
	t.Setenv("MTF_LOG_LEVEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, defaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, "wss://rahul-samedavar-minetheflagbe.hf.space/ws/leaderboard", cfg.WSURL)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestWSURLDerivation(t *testing.T) {
	cases := []struct {
		name string
		api  string
		want string
	}{
		{"https to wss", "https://example.com", "wss://example.com/ws/leaderboard"},
		{"http to ws", "http://localhost:8000", "ws://localhost:8000/ws/leaderboard"},
		{"trailing slash trimmed", "https://example.com/", "wss://example.com/ws/leaderboard"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("MTF_API_URL", tc.api)
			t.Setenv("MTF_WS_URL", "")
			t.Setenv("MTF_STATE_PATH", t.TempDir()+"/state.db")

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.WSURL)
		})
	}
}

func TestExplicitWSURLWins(t *testing.T) {
	t.Setenv("MTF_API_URL", "https://example.com")
	t.Setenv("MTF_WS_URL", "wss://other.example.com/ws/leaderboard")
	t.Setenv("MTF_STATE_PATH", t.TempDir()+"/state.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "wss://other.example.com/ws/leaderboard", cfg.WSURL)
}

func TestInvalidInputs(t *testing.T) {
	t.Setenv("MTF_STATE_PATH", t.TempDir()+"/state.db")
	t.Setenv("MTF_WS_URL", "")

	t.Run("bad api url", func(t *testing.T) {
		t.Setenv("MTF_API_URL", "::not-a-url")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		t.Setenv("MTF_API_URL", "ftp://example.com")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("MTF_API_URL", "https://example.com")
		t.Setenv("MTF_LOG_LEVEL", "loud")
		_, err := Load()
		assert.Error(t, err)
	})
}
