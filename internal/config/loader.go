package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for packforge configuration.
const envPrefix = "PACKFORGE"

// Loader reads and merges configuration from file and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a configuration loader with environment bindings.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{"registry_url", "cdn_url", "user_agent", "cache_dir", "cache_ttl"} {
		_ = v.BindEnv(key)
	}

	return &Loader{v: v}
}

// Load reads the given config file and applies defaults. An empty path
// means the default location; a missing file is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = DefaultConfigFile()
	}

	if configFile != "" {
		l.v.SetConfigFile(configFile)
		l.v.SetConfigType("toml")

		if err := l.v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg.WithDefaults(), nil
}
