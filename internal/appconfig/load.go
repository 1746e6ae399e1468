package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty,
// uses DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("telnet.enabled", cfg.Telnet.Enabled)
	v.SetDefault("telnet.port", cfg.Telnet.Port)
	v.SetDefault("telnet.max_sessions", cfg.Telnet.MaxSessions)
	v.SetDefault("telnet.prompt", cfg.Telnet.Prompt)
	v.SetDefault("telnet.banner", cfg.Telnet.Banner)
	v.SetDefault("telnet.no_banner", cfg.Telnet.NoBanner)
	v.SetDefault("telnet.username", cfg.Telnet.Username)
	v.SetDefault("telnet.password", cfg.Telnet.Password)
	v.SetDefault("telnet.password_hash", cfg.Telnet.PasswordHash)
	v.SetDefault("console.prompt", cfg.Console.Prompt)
	v.SetDefault("console.no_raw_mode", cfg.Console.NoRawMode)
	v.SetDefault("serial.device", cfg.Serial.Device)
	v.SetDefault("serial.baud", cfg.Serial.Baud)
	v.SetDefault("serial.prompt", cfg.Serial.Prompt)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return Config{}, err
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
