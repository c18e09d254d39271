// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RuntimeOS is runtime.GOOS, exposed so tests can branch on platform.
var RuntimeOS = runtime.GOOS

// Config is the application configuration as assembled from rskvault.yaml,
// RSKVAULT_* environment variables, and command-line flags.
type Config struct {
	Language string `mapstructure:"language" yaml:"language"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	Network  string `mapstructure:"network" yaml:"network"`
	Database struct {
		Type string `mapstructure:"type" yaml:"type"`
		Dsn  string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`
	Wallet struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"wallet" yaml:"wallet"`
	RPC struct {
		URL        string `mapstructure:"url" yaml:"url"`
		EnforceTLS bool   `mapstructure:"enforce_tls" yaml:"enforce_tls"`
	} `mapstructure:"rpc" yaml:"rpc"`
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch RuntimeOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Rskvault")
		default: // Linux, macOS, etc.
			configDir = "/etc/rskvault"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "rskvault")
	}

	return filepath.Join(configDir, "rskvault.yaml"), nil
}

// DefaultDataDir returns the directory that holds the wallet file and the
// default sqlite database.
func DefaultDataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, "rskvault"), nil
}

// LoadConfig assembles the configuration from defaults, the first usable
// config file, the legacy dotfile, environment variables, and bound flags,
// in ascending precedence. When no config file is usable the returned error
// is viper.ConfigFileNotFoundError and the returned value is still fully
// populated from the remaining sources; callers decide whether a missing
// file matters.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("rskvault")
	v.SetConfigType("yaml")

	// Resolve the file up front: a zero-length candidate is skipped the
	// same as a missing one, so it cannot shadow other sources.
	if path := PickConfigFile(explicitPath); path != "" {
		v.SetConfigFile(path)
	}
	readErr := v.ReadInConfig()
	if readErr != nil {
		if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
			return c, readErr
		}
	}

	// Merge `.rskvault.yaml` from the current directory, kept for setups
	// predating the XDG location.
	mergeLegacyConfig(v)

	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvPrefix("rskvault")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return c, err
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, readErr
}

// PickConfigFile returns the first usable candidate: the explicit path when
// given, otherwise the user path, the system path, and ./rskvault.yaml in
// order. A candidate must exist and be non-empty. An empty result means the
// application is running on defaults.
func PickConfigFile(explicit *string) string {
	var candidates []string
	if explicit != nil && *explicit != "" {
		candidates = []string{*explicit}
	} else {
		if p, err := GetConfigPath(false); err == nil {
			candidates = append(candidates, p)
		}
		if p, err := GetConfigPath(true); err == nil {
			candidates = append(candidates, p)
		}
		candidates = append(candidates, "rskvault.yaml")
	}
	for _, p := range candidates {
		if fi, err := os.Stat(p); err == nil && fi.Size() > 0 {
			return p
		}
	}
	return ""
}

// mergeLegacyConfig checks for a `.rskvault.yaml` file in the current
// directory and merges it into the viper configuration if found.
func mergeLegacyConfig(v *viper.Viper) {
	legacyConfigFile := ".rskvault.yaml"
	if _, err := os.Stat(legacyConfigFile); err == nil {
		v.SetConfigFile(legacyConfigFile)
		// A malformed legacy file should not break startup; the primary
		// sources have already been read.
		_ = v.MergeInConfig()
		v.SetConfigFile("")
	}
}

// WriteConfigFile marshals c to YAML and writes it to the user or system
// config location, creating directories as needed.
func WriteConfigFile[T any](c *T, system bool) error {
	path, err := GetConfigPath(system)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file can carry endpoint URLs a user may consider private.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}

	return nil
}

// Save persists the global viper state to the user configuration file. Used
// by commands that change settings at runtime (language, default network).
func Save() error {
	path, err := GetConfigPath(false)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", filepath.Dir(path), err)
	}
	if err := viper.WriteConfigAs(path); err != nil {
		return err
	}
	return os.Chmod(path, 0600)
}
