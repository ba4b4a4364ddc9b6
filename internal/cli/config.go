package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config carries the effective settings of one gild invocation. Values come
// from gild.yaml when present, then GILD_* environment variables, then
// command line flags, in increasing order of precedence.
type Config struct {
	Directories []string       `mapstructure:"directories"`
	ModuleName  string         `mapstructure:"module"`
	Verbose     bool           `mapstructure:"verbose"`
	Quiet       bool           `mapstructure:"quiet"`
	Document    DocumentConfig `mapstructure:"document"`
}

// DocumentConfig describes the OpenAPI document rendered by --openapi
type DocumentConfig struct {
	Title       string `mapstructure:"title"`
	Version     string `mapstructure:"version"`
	Description string `mapstructure:"description"`
	Output      string `mapstructure:"output"`
}

// LoadConfig reads gild.yaml from the working directory, or the file at the
// given path when one is passed. A missing gild.yaml falls back to defaults;
// an explicitly named file must exist.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Every key needs a default so environment overrides reach Unmarshal
	v.SetDefault("directories", []string{"./..."})
	v.SetDefault("module", "")
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("document.title", "API")
	v.SetDefault("document.version", "0.1.0")
	v.SetDefault("document.description", "")
	v.SetDefault("document.output", "openapi.json")

	v.SetEnvPrefix("GILD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("gild")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Verbose && config.Quiet {
		return nil, fmt.Errorf("verbose and quiet cannot both be enabled")
	}

	return &config, nil
}
