package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "biblio", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, 14, cfg.Circulation.LoanPeriodDays)
	assert.Equal(t, 7, cfg.Circulation.RenewalExtensionDays)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Server.RateLimit.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	content := []byte(`
app:
  name: biblio-test
  env: production
server:
  port: "9090"
  shutdown_timeout: 15s
database:
  type: mysql
  host: db.internal
circulation:
  loan_period_days: 21
  renewal_extension_days: 10
`)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "biblio-test", cfg.App.Name)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 21, cfg.Circulation.LoanPeriodDays)
	assert.Equal(t, 10, cfg.Circulation.RenewalExtensionDays)

	// Values the file omits keep their defaults.
	assert.Equal(t, "3306", cfg.Database.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}
