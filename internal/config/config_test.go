package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "DATA_SOURCE", "REDIS_URL", "HISTORY_LIMIT", "CHARTS_ENABLED", "ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DataSourceCSV, cfg.DataSource)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.ChartsEnabled)
	assert.Empty(t, cfg.RedisURL)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.False(t, cfg.NeedsPostgres())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "postgres")
	t.Setenv("HISTORY_LIMIT", "10")
	t.Setenv("CHARTS_ENABLED", "false")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()

	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.False(t, cfg.ChartsEnabled)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.NeedsPostgres())
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("MAX_DB_CONNS", "many")
	assert.Equal(t, 8, getEnvInt("MAX_DB_CONNS", 8))
}
