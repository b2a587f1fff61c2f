package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8085", cfg.APIBaseURL, "APIBaseURL should point at the local backend")
	assert.Equal(t, BackendRemote, cfg.Backend, "Backend should be remote")
	assert.Equal(t, 50, cfg.ListPageSize, "ListPageSize should be 50")
	assert.Equal(t, 5*time.Second, cfg.NoticeTTL, "NoticeTTL should be 5 seconds")
	assert.Equal(t, 10, cfg.RateLimit, "RateLimit should be 10")
	assert.Equal(t, time.Second, cfg.RatePeriod, "RatePeriod should be 1 second")
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout, "RequestTimeout should be 10 seconds")
	assert.Equal(t, ":3000", cfg.ServerPort, "ServerPort should be :3000")
	assert.False(t, cfg.DisableRateLimit, "DisableRateLimit should be false")
	assert.NoError(t, cfg.Validate())
}

func TestLinkBase(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8085", cfg.LinkBase())

	cfg.ShortLinkBase = "https://sho.rt/"
	assert.Equal(t, "https://sho.rt", cfg.LinkBase())
}

func TestLoad(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, *DefaultConfig(), *cfg)
	})

	t.Run("non-existent config file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := writeConfig(t, `api_base_url: https://api.example.com
backend: memory
list_page_size: 20
notice_ttl: 2s
server_port: ":4000"
`)
		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
		assert.Equal(t, BackendMemory, cfg.Backend)
		assert.Equal(t, 20, cfg.ListPageSize)
		assert.Equal(t, 2*time.Second, cfg.NoticeTTL)
		assert.Equal(t, ":4000", cfg.ServerPort)
		assert.Equal(t, 10, cfg.RateLimit, "unset keys keep their defaults")
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("URLADMIN_API_BASE_URL", "https://env.example.com")
		t.Setenv("URLADMIN_LIST_PAGE_SIZE", "5")

		cfg, err := Load("")

		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
		assert.Equal(t, 5, cfg.ListPageSize)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeConfig(t, `api_base_url: not a url
`)
		cfg, err := Load(path)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "APIBaseURL")
		assert.Nil(t, cfg)
	})

	t.Run("unknown backend", func(t *testing.T) {
		path := writeConfig(t, `backend: postgres
`)
		cfg, err := Load(path)

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func TestValidateRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 0
	assert.Error(t, cfg.Validate())

	cfg.DisableRateLimit = true
	assert.NoError(t, cfg.Validate())
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}
