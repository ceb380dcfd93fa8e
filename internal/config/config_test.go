package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "test_config_*.yaml")
	require.NoError(t, err)

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	return tmpFile.Name()
}

func TestMustLoad_ValidConfig(t *testing.T) {
	configContent := `
env: production
mongo_connection:
  uri: "mongodb://localhost:27017"
  database: "portfolio-test"
http_server:
  addresshttp: ":9000"
  timeouthttp: 30s
  idle_timeout: 60s
jwttoken:
  jwt_secret_key: "test_secret_key"
  token_ttl: 24h
smtp_connection:
  smtp_host: "smtp.example.com"
  smtp_port: "587"
  smtp_user: "mailer@example.com"
  smtp_pass: "app-password"
  notification_email: "owner@example.com"
  owner_name: "Owner"
`
	t.Setenv("CONFIG_PATH", writeTempConfig(t, configContent))

	cfg := MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoConnection.URI)
	assert.Equal(t, "portfolio-test", cfg.MongoConnection.Database)
	assert.Equal(t, ":9000", cfg.AddressHTTP)
	assert.Equal(t, 30*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	assert.Equal(t, "test_secret_key", cfg.JWTSecretKey)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, "587", cfg.SMTPPort)
	assert.Equal(t, "mailer@example.com", cfg.SMTPUser)
	assert.Equal(t, "owner@example.com", cfg.NotificationEmail)
	assert.Equal(t, "Owner", cfg.OwnerName)
}

func TestConfig_DefaultValues(t *testing.T) {
	configContent := `
mongo_connection:
  uri: "mongodb://localhost:27017"
jwttoken:
  jwt_secret_key: "test_secret"
`
	t.Setenv("CONFIG_PATH", writeTempConfig(t, configContent))

	cfg := MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "my-portfolio", cfg.MongoConnection.Database)
	assert.Equal(t, ":9000", cfg.AddressHTTP)
	assert.Equal(t, 10*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, 60*time.Second, cfg.IdleTimeout)
	// 90 дней жизни токена по умолчанию
	assert.Equal(t, 2160*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "587", cfg.SMTPPort)
	assert.Equal(t, "Florien", cfg.OwnerName)
}
