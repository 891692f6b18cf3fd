package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

// setEnv clears every variable Config reads, then applies overrides
func setEnv(t *testing.T, overrides map[string]string) {
	t.Helper()
	for _, name := range []string{
		"PORT", "DATABASE_URL", "STORAGE", "AUTO_MIGRATE",
		"JWT_SIGNING_KEY", "JWT_ISSUER", "JWT_AUDIENCE",
		"LOG_LEVEL", "LOG_FORMAT", "REDIS_ADDR", "TRENDING_CACHE_TTL",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
	} {
		t.Setenv(name, "")
	}
	for name, value := range overrides {
		t.Setenv(name, value)
	}
}

func validEnv() map[string]string {
	return map[string]string{
		"STORAGE":         "memory",
		"JWT_SIGNING_KEY": testKey,
		"JWT_ISSUER":      "murmur-auth",
		"JWT_AUDIENCE":    "murmur-api",
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, validEnv())

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 60*time.Second, cfg.TrendingCacheTTL)
	assert.Equal(t, "murmur.activity", cfg.KafkaTopic)
	assert.Equal(t, "murmur", cfg.OTelServiceName)
	assert.Empty(t, cfg.Brokers())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoad_Overrides(t *testing.T) {
	env := validEnv()
	env["STORAGE"] = "Postgres"
	env["DATABASE_URL"] = "postgres://localhost/murmur"
	env["PORT"] = "9090"
	env["LOG_LEVEL"] = "debug"
	env["TRENDING_CACHE_TTL"] = "5m"
	env["KAFKA_BROKERS"] = "kafka-1:9092, kafka-2:9092,"
	setEnv(t, env)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.TrendingCacheTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]string)
		wantErr string
	}{
		{"postgres without url", func(e map[string]string) { e["STORAGE"] = "postgres" }, "DATABASE_URL"},
		{"unknown storage", func(e map[string]string) { e["STORAGE"] = "sqlite" }, "STORAGE"},
		{"short key", func(e map[string]string) { e["JWT_SIGNING_KEY"] = "short" }, "JWT_SIGNING_KEY"},
		{"no issuer", func(e map[string]string) { delete(e, "JWT_ISSUER") }, "JWT_ISSUER"},
		{"no audience", func(e map[string]string) { delete(e, "JWT_AUDIENCE") }, "JWT_AUDIENCE"},
		{"bad level", func(e map[string]string) { e["LOG_LEVEL"] = "loud" }, "LOG_LEVEL"},
		{"bad format", func(e map[string]string) { e["LOG_FORMAT"] = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := validEnv()
			tt.mutate(env)
			setEnv(t, env)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
