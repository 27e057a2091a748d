package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NODESTATUS_CONFIG", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/gpfs/radev/apps/services/ood/share/apps/cluster_status/cluster_status.py", cfg.Command.Path)
	assert.Equal(t, 60*time.Second, cfg.Command.Timeout)
	assert.False(t, cfg.Command.Sequential)
	assert.Equal(t, "Cluster Node Status", cfg.Dashboard.Title)
	assert.Equal(t, "/pun/sys/dashboard/", cfg.Dashboard.URL)
	assert.Empty(t, cfg.Journal.Path)
	assert.Equal(t, 50, cfg.Journal.Size)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "custom.yaml")
	body := `
server:
  addr: ":9090"
command:
  path: /opt/cluster_status.py
  timeout: 5s
  sequential: true
journal:
  size: 7
log:
  level: debug
`
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))
	t.Setenv("NODESTATUS_CONFIG", file)
	t.Setenv("NODESTATUS_DASHBOARD_HOST", "McCleary")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/opt/cluster_status.py", cfg.Command.Path)
	assert.Equal(t, 5*time.Second, cfg.Command.Timeout)
	assert.True(t, cfg.Command.Sequential)
	assert.Equal(t, 7, cfg.Journal.Size)
	assert.Equal(t, "McCleary", cfg.Dashboard.Host)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Command: CommandConfig{Path: "/opt/status.py", Timeout: time.Second},
			Journal: JournalConfig{Size: 10},
			Log:     LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty path", mutate: func(c *Config) { c.Command.Path = "" }},
		{name: "negative timeout", mutate: func(c *Config) { c.Command.Timeout = -time.Second }},
		{name: "zero journal size", mutate: func(c *Config) { c.Journal.Size = 0 }},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
