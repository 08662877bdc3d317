// Package config loads server configuration from a yaml file with
// sensible defaults, so a bare `focustrack serve` works out of the box.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs: where to listen, where the
// three flat tables live, and how long idle sessions are kept.
type Config struct {
	Listen  string  `mapstructure:"listen" yaml:"listen"`
	DataDir string  `mapstructure:"data_dir" yaml:"data_dir"`
	Tables  Tables  `mapstructure:"tables" yaml:"tables"`
	Session Session `mapstructure:"session" yaml:"session"`
}

// Tables names the three backing files, relative to DataDir.
type Tables struct {
	Users     string `mapstructure:"users" yaml:"users"`
	Tasks     string `mapstructure:"tasks" yaml:"tasks"`
	Completed string `mapstructure:"completed" yaml:"completed"`
}

// Session holds session-manager housekeeping settings.
type Session struct {
	TTLMinutes int `mapstructure:"ttl_minutes" yaml:"ttl_minutes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Listen:  ":8374",
		DataDir: filepath.Join(home, ".focustrack", "data"),
		Tables: Tables{
			Users:     "user_data.csv",
			Tasks:     "tasks_data.csv",
			Completed: "completed_tasks.csv",
		},
		Session: Session{TTLMinutes: 720},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".focustrack", "config.yaml")
}

// Load reads the config file at path, merged over the defaults.
// A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// WriteDefault writes the default configuration to path, creating
// parent directories. Fails if the file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// UsersPath returns the absolute users table location.
func (c *Config) UsersPath() string {
	return filepath.Join(c.DataDir, c.Tables.Users)
}

// TasksPath returns the absolute tasks table location.
func (c *Config) TasksPath() string {
	return filepath.Join(c.DataDir, c.Tables.Tasks)
}

// CompletedPath returns the absolute completed-tasks table location.
func (c *Config) CompletedPath() string {
	return filepath.Join(c.DataDir, c.Tables.Completed)
}

// SessionTTL returns the idle-session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}
