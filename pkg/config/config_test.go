package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte("environment: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "test", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, []string{"*"}, c.Server.AllowOrigins)
	assert.Equal(t, 15*time.Second, c.CoinGecko.Timeout)
	assert.Equal(t, 3650, c.CoinGecko.Days)
	assert.Equal(t, "x-cg-demo-api-key", c.CoinGecko.APIKeyHeader)
	assert.Equal(t, DefaultAssets, c.CoinGecko.Assets)
	assert.Equal(t, "@daily", c.Refresh.Schedule)
	assert.Equal(t, "gemini-2.5-flash", c.Insight.Model)
	assert.False(t, c.Cache.Redis.Enabled)
}

func TestParseOverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
environment: production
server:
  port: 9090
coingecko:
  timeout: 3s
  assets:
    bitcoin: bitcoin
`))
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 3*time.Second, c.CoinGecko.Timeout)
	assert.Equal(t, map[string]string{"bitcoin": "bitcoin"}, c.CoinGecko.Assets)
	// untouched siblings keep their defaults
	assert.Equal(t, 10*time.Second, c.Server.ReadTimeout)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("log:\n  level: loud\n"))
	require.Error(t, err)

	_, err = Parse([]byte("server:\n  port: 70000\n"))
	require.Error(t, err)

	_, err = Parse([]byte("coingecko: [\n"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)

	env := map[string]string{
		"PORT":              "7000",
		"LOG_LEVEL":         "DEBUG",
		"COINGECKO_API_KEY": "cg",
		"API_KEY":           "generic",
		"GEMINI_API_KEY":    "gemini",
		"REDIS_ADDR":        "cache:6380",
	}
	require.NoError(t, c.applyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, 7000, c.Server.Port)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "cg", c.CoinGecko.APIKey)
	assert.Equal(t, "gemini", c.Insight.APIKey)
	assert.True(t, c.Cache.Redis.Enabled)
	assert.Equal(t, "cache", c.Cache.Redis.Host)
	assert.Equal(t, 6380, c.Cache.Redis.Port)

	bad := func(k string) string {
		if k == "PORT" {
			return "eighty"
		}
		return ""
	}
	require.Error(t, c.applyEnv(bad))
}

func TestLoadRepositoryConfig(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "development", c.Environment)
	assert.Len(t, c.CoinGecko.Assets, 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
