package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-estoque/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "estoque.db", cfg.DB.SQLitePath)
	assert.Equal(t, 4, cfg.DB.Attempts())
	assert.Equal(t, 500*time.Millisecond, cfg.DB.ConnectBackoff)
	assert.Equal(t, "admin", cfg.Bootstrap.AdminUsername)
	assert.Equal(t, "adminpass", cfg.Bootstrap.AdminPassword)
	assert.Equal(t, 480, cfg.Session.Expiration)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_FAIL_FAST", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 1, cfg.DB.Attempts(), "fail-fast desactiva los reintentos")
	assert.Equal(t, "postgres://postgres:@localhost:6543/estoque?sslmode=disable", cfg.DB.ConnectionString())
}

func TestLoad_RechazaConfiguracionInvalida(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := config.Load()
	require.Error(t, err, "sin SESSION_SECRET no debe cargar")

	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "mysql")
	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestDBConfig_ConnectionStringPrefiereDatabaseURL(t *testing.T) {
	c := config.DBConfig{DatabaseURL: "postgresql://u:p@db:5432/x", Host: "otro"}
	assert.Equal(t, "postgresql://u:p@db:5432/x", c.ConnectionString())
}
