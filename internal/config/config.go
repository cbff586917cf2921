// Package config loads configuration for the kvline command.
// Values come from flags, KVLINE_* environment variables and an optional
// kvline.yaml file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KimNorgaard/go-kvline/internal/token"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the settings of a kvline run.
type Config struct {
	AllowedKeys   []string `mapstructure:"allowed_keys" validate:"dive,kvkey"`
	CaseSensitive bool     `mapstructure:"case_sensitive"`
	Output        string   `mapstructure:"output" validate:"oneof=text json yaml"`
	Jobs          int      `mapstructure:"jobs" validate:"min=1,max=256"`
	FailFast      bool     `mapstructure:"fail_fast"`
	LogFormat     string   `mapstructure:"log_format" validate:"oneof=text json"`
	LogLevel      string   `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

// Strict reports whether keys are checked against an allow-list.
func (c *Config) Strict() bool {
	return len(c.AllowedKeys) > 0
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"allow":          "allowed_keys",
	"case-sensitive": "case_sensitive",
	"output":         "output",
	"jobs":           "jobs",
	"fail-fast":      "fail_fast",
	"log-format":     "log_format",
	"log-level":      "log_level",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("kvkey", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && strings.IndexFunc(s, func(r rune) bool { return !token.IsKeyChar(r) }) < 0
	})
	return v
}

// Load reads the configuration. path names an explicit config file; when
// empty, kvline.yaml is searched for in $HOME/.config/kvline and the working
// directory and a missing file is not an error. flags, if non-nil, override
// every other source for the flags the user set.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := loadConfigFile(v, path); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("KVLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("allowed_keys", []string{})
	v.SetDefault("case_sensitive", false)
	v.SetDefault("output", "text")
	v.SetDefault("jobs", 1)
	v.SetDefault("fail_fast", false)
	v.SetDefault("log_format", "text")
	v.SetDefault("log_level", "info")
}

func loadConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error loading config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("kvline")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "kvline"))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error loading config file: %w", err)
	}
	return nil
}
