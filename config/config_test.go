package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	wh := DefaultConfig("warehouse")
	assert.Equal(t, 8080, wh.Web.Port)
	assert.Equal(t, "sqlite", wh.Database.Type)
	assert.Equal(t, 30, wh.Auth.TokenDays)

	inv := DefaultConfig("invoicing")
	assert.Equal(t, 8081, inv.Web.Port)
	assert.Contains(t, inv.Database.Name, "invoicing.db")
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfile := filepath.Join(dir, "warehouse.yml")
	content := `
web:
  port: 9090
database:
  type: postgres
  host: db.local
  port: 5432
  name: almacen
auth:
  jwt_secret: file-secret
`
	require.NoError(t, os.WriteFile(cfile, []byte(content), 0o600))

	cfg, err := LoadConfig("warehouse", cfile)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, "file-secret", cfg.Auth.JwtSecret)
	// untouched keys keep their defaults
	assert.Equal(t, 30, cfg.Auth.TokenDays)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("STOCKBILL_WEB_PORT", "7000")
	t.Setenv("STOCKBILL_JWT_SECRET", "env-secret")
	t.Setenv("STOCKBILL_DB_SEED", "false")
	t.Setenv("STOCKBILL_JWT_TOKEN_DAYS", "not-a-number")

	cfg, err := LoadConfig("warehouse", "")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Web.Port)
	assert.Equal(t, "env-secret", cfg.Auth.JwtSecret)
	assert.False(t, cfg.Database.Seed)
	assert.Equal(t, 30, cfg.Auth.TokenDays)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("warehouse", filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
