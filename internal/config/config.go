// Package config loads the client configuration: backend URL, session
// token and editor defaults. Values come from ~/.entwurf/config.yaml,
// the ENTWURF_* environment and command-line flags, in ascending
// precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the resolved client configuration.
type Config struct {
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`
	Token     string `mapstructure:"token" yaml:"token"`
	// DocumentID and CompanyID are optional defaults so `entwurf` can be
	// launched without flags for the document a consultant works on all
	// day.
	DocumentID int `mapstructure:"document_id" yaml:"document_id"`
	CompanyID  int `mapstructure:"company_id" yaml:"company_id"`
}

// Dir returns the configuration directory, creating nothing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".entwurf"), nil
}

// Load reads the configuration. cfgFile overrides the default search
// path when non-empty. A missing config file is not an error; flags or
// the environment may supply everything.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server_url", "http://localhost:8000")

	v.SetEnvPrefix("ENTWURF")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Save writes the configuration to the default location with owner-only
// permissions; the file holds the session token.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	v := viper.New()
	v.Set("server_url", cfg.ServerURL)
	v.Set("token", cfg.Token)
	v.Set("document_id", cfg.DocumentID)
	v.Set("company_id", cfg.CompanyID)

	path := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return os.Chmod(path, 0o600)
}

// Validate checks that the configuration is usable for API calls.
func (c *Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("no server URL configured; run 'entwurf login'")
	}
	if c.Token == "" {
		return errors.New("no session token configured; run 'entwurf login'")
	}
	return nil
}
