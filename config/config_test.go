package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("with environment variables", func(t *testing.T) {
		t.Setenv("POLONIEX_URL", "http://test.com/public")
		t.Setenv("ALTCOINS", "LTC,xmr")
		t.Setenv("USER_AGENT", "pricenode")
		t.Setenv("HTTP_TIMEOUT", "5s")
		t.Setenv("POLL_TIMEOUT", "20s")
		t.Setenv("LISTEN_ADDR", ":9090")

		cfg, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, "http://test.com/public", cfg.PoloniexURL)
		assert.Equal(t, []string{"LTC", "xmr"}, cfg.Altcoins)
		assert.Equal(t, "pricenode", cfg.UserAgent)
		assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 20*time.Second, cfg.PollTimeout)
		assert.Equal(t, ":9090", cfg.ListenAddr)

		set := cfg.AltcoinSet()
		assert.True(t, set.Contains("XMR"))
		assert.True(t, set.Contains("LTC"))
	})

	t.Run("with defaults", func(t *testing.T) {
		cfg, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, "https://poloniex.com/public", cfg.PoloniexURL)
		assert.Equal(t, DefaultAltcoins, cfg.Altcoins)
		assert.Empty(t, cfg.UserAgent)
		assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, 30*time.Second, cfg.PollTimeout)
		assert.Equal(t, ":8080", cfg.ListenAddr)
	})

	t.Run("with altcoins option", func(t *testing.T) {
		t.Setenv("ALTCOINS", "LTC")

		cfg, err := NewConfig(WithAltcoins("ETH", "ZEC"))
		require.NoError(t, err)
		assert.Equal(t, []string{"ETH", "ZEC"}, cfg.Altcoins)
	})

	t.Run("with env file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("LISTEN_ADDR=:7070\nALTCOINS=DOGE\n"), 0o600))

		// godotenv does not override variables that are already set
		t.Setenv("LISTEN_ADDR", "")
		t.Setenv("ALTCOINS", "")
		os.Unsetenv("LISTEN_ADDR")
		os.Unsetenv("ALTCOINS")

		cfg, err := NewConfig(WithEnvFile(path))
		require.NoError(t, err)
		assert.Equal(t, ":7070", cfg.ListenAddr)
		assert.Equal(t, []string{"DOGE"}, cfg.Altcoins)
	})

	t.Run("with invalid URL", func(t *testing.T) {
		t.Setenv("POLONIEX_URL", "not a url")

		_, err := NewConfig()
		assert.Error(t, err)
	})

	t.Run("with invalid timeout", func(t *testing.T) {
		t.Setenv("POLL_TIMEOUT", "-1s")

		_, err := NewConfig()
		assert.Error(t, err)
	})

	t.Run("with empty altcoin", func(t *testing.T) {
		t.Setenv("ALTCOINS", "LTC,,XMR")

		_, err := NewConfig()
		assert.Error(t, err)
	})
}
