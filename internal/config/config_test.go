package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
env: "dev"
storage:
  driver: "pgx"
  host: "db"
  password: "secret"
  dbname: "bookings"
http_server:
  address: "0.0.0.0:8080"
auth:
  secret: "file-secret"
  token_ttl: 2h
booking:
  retry:
    attempts: 7
kafka:
  brokers: ["kafka-1:9092", "kafka-2:9092"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "env-secret", cfg.Auth.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPServer.Address)
	assert.Equal(t, 10*time.Second, cfg.HTTPServer.ShutdownTimeout)
	assert.Equal(t, uint(7), cfg.Booking.Retry.Attempts)
	assert.Equal(t, 20*time.Millisecond, cfg.Booking.Retry.Delay)
	assert.True(t, cfg.Booking.TxTimeout < cfg.HTTPServer.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Booking.PublishTimeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "activity-bookings", cfg.Kafka.Topic)
	assert.False(t, cfg.Auth.InsecureCookie)
	assert.Equal(t, "host=db port=5432 user=postgres password=secret dbname=bookings sslmode=disable", cfg.Storage.DSN())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrNoConfigPath)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_TxTimeoutOutlivesWriteTimeout(t *testing.T) {
	body := `
http_server:
  timeout: 4s
auth:
  secret: "file-secret"
booking:
  tx_timeout: 5s
`

	_, err := Load(writeConfig(t, body))
	assert.ErrorIs(t, err, ErrTxTimeout)
}

func TestStorage_DSN_PrefersURL(t *testing.T) {
	s := Storage{URL: "postgres://u:p@localhost/db", Host: "ignored"}
	assert.Equal(t, "postgres://u:p@localhost/db", s.DSN())
}
