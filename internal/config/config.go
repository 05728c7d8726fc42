package config

import (
	"time"

	"github.com/vovakirdan/burnroom-server/internal/core"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	KillSwitchAddr    string        `mapstructure:"killswitch_addr" yaml:"killswitch_addr"`
	StaticDir         string        `mapstructure:"static_dir" yaml:"static_dir"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	WSPollInterval    time.Duration `mapstructure:"ws_poll_interval" yaml:"ws_poll_interval"`
	Limits            core.Limits   `mapstructure:"limits" yaml:"limits"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8000",
		KillSwitchAddr:    "0.0.0.0:10001",
		StaticDir:         "static",
		LogLevel:          "info",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		WSPollInterval:    time.Second,
		Limits:            core.DefaultLimits(),
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.KillSwitchAddr != "" {
		c.KillSwitchAddr = other.KillSwitchAddr
	}
	if other.StaticDir != "" {
		c.StaticDir = other.StaticDir
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.WSPollInterval != 0 {
		c.WSPollInterval = other.WSPollInterval
	}
}
