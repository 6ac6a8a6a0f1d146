// Package config loads application settings from an optional YAML file,
// CODETABS_* environment variables and built-in defaults, in that order of
// precedence after flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "CODETABS"

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Storage struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
	} `mapstructure:"storage"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
	Auth struct {
		BcryptCost int `mapstructure:"bcrypt_cost"`
	} `mapstructure:"auth"`
	Render struct {
		Style     string `mapstructure:"style"`
		TermStyle string `mapstructure:"term_style"`
		Width     int    `mapstructure:"width"`
	} `mapstructure:"render"`
}

// DefaultDir is where the state file lives unless configured otherwise.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}

	return filepath.Join(dir, "codetabs")
}

// Load reads the configuration. An empty cfgFile looks for codetabs.yaml in
// the working directory and in DefaultDir; a missing file is not an error
// unless cfgFile names it explicitly.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.path", filepath.Join(DefaultDir(), "state.json"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("auth.bcrypt_cost", 10) //nolint:gomnd
	v.SetDefault("render.style", "vs")
	v.SetDefault("render.term_style", "")
	v.SetDefault("render.width", 80) //nolint:gomnd

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("codetabs")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}
