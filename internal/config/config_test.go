package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ServiceName+".yaml"), []byte(body), 0o600))
	t.Setenv("CONFIG_PATH", dir)
}

func TestLoad_FileAndDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	writeConfig(t, `
database:
  driver: sqlite
  path: "file::memory:"
storage:
  driver: local
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Service.Env)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.DSN())
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.LegacyAdmin.Enabled)
	assert.Equal(t, "admin", cfg.Auth.LegacyAdmin.Identifier)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxSize)
	assert.Equal(t, 10, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 100, cfg.Pagination.MaxLimit)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("OMT_DATABASE_HOST", "db.internal")
	t.Setenv("OMT_AUTH_LEGACY_ADMIN_ENABLED", "false")
	writeConfig(t, `
database:
  driver: postgres
  host: localhost
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.False(t, cfg.Auth.LegacyAdmin.Enabled)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
}

func TestLoad_RequiresSecretOutsideDev(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	writeConfig(t, `
database:
  driver: postgres
`)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.jwt_secret")
}

func TestValidate_S3NeedsBucket(t *testing.T) {
	cfg := &Config{
		Service:    ServiceConfig{Env: "dev"},
		Auth:       AuthConfig{TokenTTL: time.Hour},
		Database:   DatabaseConfig{Driver: DriverPostgres},
		Storage:    StorageConfig{Driver: StorageS3},
		Pagination: PaginationConfig{DefaultLimit: 10, MaxLimit: 100},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.s3.bucket")
}
