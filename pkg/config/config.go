// Package config loads layered YAML configuration with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config gives read access to loaded settings.
type Config interface {
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetStringSlice(key string) []string
	IsSet(key string) bool
	// Unmarshal decodes the whole tree into out using mapstructure tags.
	Unmarshal(out interface{}) error
}

type viperConfig struct {
	v *viper.Viper
}

func (c *viperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *viperConfig) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *viperConfig) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *viperConfig) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

func (c *viperConfig) IsSet(key string) bool {
	return c.v.IsSet(key)
}

func (c *viperConfig) Unmarshal(out interface{}) error {
	return c.v.Unmarshal(out)
}

const configDir = "configs"

// Options tune Load. Defaults are applied before the file is read so that
// environment overrides work for keys missing from the file.
type Options struct {
	Defaults map[string]interface{}
}

// Load reads configs/<APP_ENV>/<serviceName>.yaml, falling back to
// configs/example. CONFIG_PATH replaces the directory lookup. Environment
// variables prefixed with the upper-cased service name override file values
// (database.host -> OMT_DATABASE_HOST).
func Load(serviceName string, opts Options) (Config, error) {
	v := viper.New()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	for key, value := range opts.Defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix(strings.ToUpper(serviceName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(configDir, env)
	}

	v.SetConfigName(serviceName)
	v.AddConfigPath(configPath)

	if err := v.ReadInConfig(); err != nil {
		v.AddConfigPath(filepath.Join(configDir, "example"))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if !v.IsSet("service.env") {
		v.Set("service.env", env)
	}

	return &viperConfig{v: v}, nil
}
