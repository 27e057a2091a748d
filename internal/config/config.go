package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "NODESTATUS"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Command   CommandConfig   `mapstructure:"command"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Journal   JournalConfig   `mapstructure:"journal"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CommandConfig struct {
	Path       string        `mapstructure:"path"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Sequential bool          `mapstructure:"sequential"`
}

type DashboardConfig struct {
	Title string `mapstructure:"title"`
	URL   string `mapstructure:"url"`
	// Host overrides the host name shown in the page heading.
	Host string `mapstructure:"host"`
}

// JournalConfig selects where run summaries are kept. An empty Path keeps
// them in memory.
type JournalConfig struct {
	Path string `mapstructure:"path"`
	Size int    `mapstructure:"size"`
}

type LogConfig struct {
	Level   string `mapstructure:"level"`
	JSON    bool   `mapstructure:"json"`
	Concise bool   `mapstructure:"concise"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("command.path", "/gpfs/radev/apps/services/ood/share/apps/cluster_status/cluster_status.py")
	v.SetDefault("command.timeout", 60*time.Second)
	v.SetDefault("command.sequential", false)

	v.SetDefault("dashboard.title", "Cluster Node Status")
	v.SetDefault("dashboard.url", "/pun/sys/dashboard/")
	v.SetDefault("dashboard.host", "")

	v.SetDefault("journal.path", "")
	v.SetDefault("journal.size", 50)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)
	v.SetDefault("log.concise", true)
}

// Load reads nodestatus.yaml (when present) and NODESTATUS_* environment
// variables on top of the defaults. NODESTATUS_CONFIG names an explicit file.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file := os.Getenv(envPrefix + "_CONFIG"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("nodestatus")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("config")
		v.AddConfigPath("/etc/nodestatus")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Command.Path == "" {
		return errors.New("command.path must not be empty")
	}
	if c.Command.Timeout < 0 {
		return fmt.Errorf("command.timeout must not be negative, got %s", c.Command.Timeout)
	}
	if c.Journal.Size <= 0 {
		return fmt.Errorf("journal.size must be positive, got %d", c.Journal.Size)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return level, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
