package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYML = `server:
  port: 8080
  read_timeout: 15s
  write_timeout: 15s
  max_header_bytes: 1048576

database:
  host: localhost
  port: 5432
  user: postgres
  password: postgres
  name: hms
  sslmode: disable

jwt:
  secret: change-me
  refresh_secret: change-me-too
  expiry_hours: 24
  refresh_expiry_hours: 168

redis:
  url: ""
  max_retries: 3
  retry_backoff: 100ms
  pool_size: 10
  min_idle_conns: 2

rate_limit:
  enabled: true
  requests_per_second: 50
  burst: 100

email:
  enabled: false
  host: smtp.gmail.com
  port: 587
  username: ""
  password: ""
  from: no-reply@hms.local

monitoring:
  prometheus_enabled: true
  metrics_path: /metrics
`

// loadFromTempDir writes the yaml into a temp dir and runs LoadConfig
// from there, so the test exercises the same search path as production.
func loadFromTempDir(t *testing.T, yml string) (*Config, error) {
	t.Helper()
	viper.Reset()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})

	return LoadConfig()
}

func TestLoadConfig_DecodesUnderscoreKeys(t *testing.T) {
	cfg, err := loadFromTempDir(t, testConfigYML)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 1048576, cfg.Server.MaxHeaderBytes)

	assert.Equal(t, "change-me", cfg.JWT.Secret)
	assert.Equal(t, "change-me-too", cfg.JWT.RefreshSecret)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
	assert.Equal(t, 168, cfg.JWT.RefreshExpiryHours)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 50.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, cfg.RateLimit.Burst)

	assert.True(t, cfg.Monitoring.PrometheusEnabled)
	assert.Equal(t, "/metrics", cfg.Monitoring.MetricsPath)

	assert.Equal(t, 3, cfg.Redis.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, cfg.Redis.RetryBackoff)
	assert.Equal(t, 2, cfg.Redis.MinIdleConns)

	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-from-env")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := loadFromTempDir(t, testConfigYML)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "refresh-from-env", cfg.JWT.RefreshSecret)
	assert.Equal(t, "db.internal", cfg.Database.Host)

	// file values without env overrides stay intact
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Monitoring.PrometheusEnabled)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})

	_, err = LoadConfig()
	assert.Error(t, err)
}
