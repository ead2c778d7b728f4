package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feirafacil/catalogo-service/internal/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(config.DebugModeEnv, "true")
	t.Setenv(config.StoreBackendEnv, "postgres")
	t.Setenv(config.DBHostEnv, "localhost")
	t.Setenv(config.DBUserEnv, "user")
	t.Setenv(config.DBPassEnv, "pass")
	t.Setenv(config.DBNameEnv, "catalogo")
	t.Setenv(config.DBPortEnv, "5432")
	t.Setenv(config.HTTPServerPortEnv, "8080")
	t.Setenv(config.MetricsServerPortEnv, "9090")

	conf, err := config.LoadFromEnv()
	require.NoError(t, err, "loading config should not return error")

	assert.True(t, conf.DebugMode, "DebugMode should be true")
	assert.Equal(t, config.StoreBackendPostgres, conf.StoreBackend)
	assert.Equal(t, "localhost", conf.Database.Host, "DB Host should be 'localhost'")
	assert.Equal(t, "user", conf.Database.User, "DB User should be 'user'")
	assert.Equal(t, "pass", conf.Database.Password, "DB Password should be 'pass'")
	assert.Equal(t, "catalogo", conf.Database.Name, "DB Name should be 'catalogo'")
	assert.Equal(t, "5432", conf.Database.Port, "DB Port should be '5432'")
	assert.Equal(t, "8080", conf.HTTPServer.Port, "HTTP Server Port should be '8080'")
	assert.Equal(t, "9090", conf.MetricsServer.Port, "Metrics Server Port should be '9090'")
}

func TestLoadFromEnv_MemoryBackendSkipsDatabase(t *testing.T) {
	t.Setenv(config.StoreBackendEnv, "memory")
	t.Setenv(config.DBHostEnv, "")
	t.Setenv(config.DBUserEnv, "")
	t.Setenv(config.DBNameEnv, "")
	t.Setenv(config.DBPortEnv, "")
	t.Setenv(config.HTTPServerPortEnv, "8080")
	t.Setenv(config.MetricsServerPortEnv, "9090")

	conf, err := config.LoadFromEnv()
	require.NoError(t, err, "memory backend should not require database settings")
	assert.Equal(t, config.StoreBackendMemory, conf.StoreBackend)
}

func TestLoadFromEnv_UnknownBackend(t *testing.T) {
	t.Setenv(config.StoreBackendEnv, "cassandra")
	t.Setenv(config.HTTPServerPortEnv, "8080")
	t.Setenv(config.MetricsServerPortEnv, "9090")

	_, err := config.LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}

func TestLoadFromEnv_QueueURLRequiresRegion(t *testing.T) {
	t.Setenv(config.StoreBackendEnv, "memory")
	t.Setenv(config.HTTPServerPortEnv, "8080")
	t.Setenv(config.MetricsServerPortEnv, "9090")
	t.Setenv(config.SQSQueueURLEnv, "http://localhost:4566/000000000000/catalog-events")
	t.Setenv(config.AWSRegionEnv, "")

	_, err := config.LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS configuration incomplete")
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue bool
		want         bool
	}{
		{"GetEnvAsBool_True", "true", false, true},
		{"GetEnvAsBool_False", "false", true, false},
		{"GetEnvAsBool_Invalid", "invalid", true, true},
		{"GetEnvAsBool_Empty", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV", tt.envValue)
			got := config.GetEnvAsBool("TEST_ENV", tt.defaultValue)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEnvWithDefault(t *testing.T) {
	t.Setenv("TEST_ENV", "")
	assert.Equal(t, "fallback", config.GetEnvWithDefault("TEST_ENV", "fallback"))

	t.Setenv("TEST_ENV", "set")
	assert.Equal(t, "set", config.GetEnvWithDefault("TEST_ENV", "fallback"))
}

func TestAllNumbers(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantErr bool
	}{
		{"AllNumbers_Valid", map[string]string{"PORT": "8080"}, false},
		{"AllNumbers_Invalid", map[string]string{"PORT": "eighty"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.AllNumbers(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAllNonEmpty(t *testing.T) {
	assert.NoError(t, config.AllNonEmpty(map[string]string{"KEY": "value"}))
	assert.Error(t, config.AllNonEmpty(map[string]string{"KEY": ""}))
}
