// Package appconfig loads the embsh binary's YAML configuration.
package appconfig

import (
	"os"
	"path/filepath"
)

// Config is the top-level configuration of the embsh binary.
type Config struct {
	Telnet  TelnetConfig  `mapstructure:"telnet" yaml:"telnet"`
	Console ConsoleConfig `mapstructure:"console" yaml:"console"`
	Serial  SerialConfig  `mapstructure:"serial" yaml:"serial"`
}

// TelnetConfig configures the telnet transport.
type TelnetConfig struct {
	Enabled      bool   `mapstructure:"enabled" yaml:"enabled"`
	Port         int    `mapstructure:"port" yaml:"port"`
	MaxSessions  int    `mapstructure:"max_sessions" yaml:"max_sessions"`
	Prompt       string `mapstructure:"prompt" yaml:"prompt"`
	Banner       string `mapstructure:"banner" yaml:"banner"`
	NoBanner     bool   `mapstructure:"no_banner" yaml:"no_banner"`
	Username     string `mapstructure:"username" yaml:"username"`
	Password     string `mapstructure:"password" yaml:"password"`
	PasswordHash string `mapstructure:"password_hash" yaml:"password_hash"`
}

// ConsoleConfig configures the console transport.
type ConsoleConfig struct {
	Prompt    string `mapstructure:"prompt" yaml:"prompt"`
	NoRawMode bool   `mapstructure:"no_raw_mode" yaml:"no_raw_mode"`
}

// SerialConfig configures the serial transport.
type SerialConfig struct {
	Device string `mapstructure:"device" yaml:"device"`
	Baud   int    `mapstructure:"baud" yaml:"baud"`
	Prompt string `mapstructure:"prompt" yaml:"prompt"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Telnet: TelnetConfig{
			Enabled:     true,
			Port:        2323,
			MaxSessions: 8,
			Prompt:      "embsh> ",
		},
		Console: ConsoleConfig{
			Prompt: "embsh> ",
		},
		Serial: SerialConfig{
			Device: "/dev/ttyS0",
			Baud:   115200,
			Prompt: "embsh> ",
		},
	}
}

// DefaultConfigPath resolves the per-user config location.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "embsh", "embsh.yaml"), nil
}
