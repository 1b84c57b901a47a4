package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("binds tagged fields from the environment", func(t *testing.T) {
		t.Setenv("APP_NAME", "fern-test")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_MAX_OPEN_CONNS", "3")
		t.Setenv("DB_CONN_MAX_LIFETIME", "30s")
		t.Setenv("PRETTY_LOGS", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "fern-test", cfg.AppName)
		assert.Equal(t, "db.internal", cfg.DatabaseHost)
		assert.Equal(t, 3, cfg.DatabaseMaxOpenConns)
		assert.Equal(t, 30*time.Second, cfg.DatabaseConnMaxLifetime)
		assert.True(t, cfg.PrettyLogs)
	})
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DatabaseHost:     "localhost",
		DatabasePort:     "5432",
		DatabaseUserName: "postgres",
		DatabasePassword: "secret",
		DatabaseName:     "fern",
		DatabaseSSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=fern sslmode=disable", cfg.DSN())
}

func TestKafkaEnabled(t *testing.T) {
	assert.False(t, (&Config{}).KafkaEnabled())
	assert.False(t, (&Config{KafkaBrokers: []string{""}}).KafkaEnabled())
	assert.True(t, (&Config{KafkaBrokers: []string{"localhost:9092"}}).KafkaEnabled())
}
