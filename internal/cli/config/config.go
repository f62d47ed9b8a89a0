// Package config resolves CLI settings from flags, WIRECODEC_* environment
// variables and an optional wirecodec.yaml file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	wirecodec "github.com/reoring/wirecodec"
)

// EnvPrefix is prepended to every environment variable, e.g. WIRECODEC_MAX_DEPTH.
const EnvPrefix = "WIRECODEC"

// Config holds resolved CLI settings.
type Config struct {
	Type     string `mapstructure:"type"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Driver   string `mapstructure:"driver"`
	DupKeys  string `mapstructure:"dup-keys"`
	MaxDepth int    `mapstructure:"max-depth"`
	MaxBytes int64  `mapstructure:"max-bytes"`
	NoColor  bool   `mapstructure:"no-color"`
	Verbose  bool   `mapstructure:"verbose"`
}

var (
	formats = []string{"json", "yaml", "msgpack"}
	outputs = []string{"json", "msgpack"}
	drivers = []string{"go-json", "encoding/json"}
	dupKeys = []string{"ignore", "warn", "error"}
)

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("format", "json")
	v.SetDefault("output", "json")
	v.SetDefault("driver", "go-json")
	v.SetDefault("dup-keys", "ignore")
	v.SetDefault("max-depth", 0)
	v.SetDefault("max-bytes", 0)

	v.SetConfigName("wirecodec")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load binds fs into v, reads the config file when present and validates
// the result.
func Load(v *viper.Viper, fs *pflag.FlagSet) (*Config, error) {
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseOpt converts the document limits into library options.
func (c *Config) ParseOpt() wirecodec.ParseOpt {
	opt := wirecodec.ParseOpt{MaxDepth: c.MaxDepth, MaxBytes: c.MaxBytes}
	switch c.DupKeys {
	case "warn":
		opt.Strictness.OnDuplicateKey = wirecodec.Warn
	case "error":
		opt.Strictness.OnDuplicateKey = wirecodec.Error
	}
	return opt
}

func validate(cfg *Config) error {
	checks := []struct {
		key, val string
		allowed  []string
	}{
		{"format", cfg.Format, formats},
		{"output", cfg.Output, outputs},
		{"driver", cfg.Driver, drivers},
		{"dup-keys", cfg.DupKeys, dupKeys},
	}
	for _, c := range checks {
		if !contains(c.allowed, c.val) {
			return fmt.Errorf("%s must be one of %s, got: %q", c.key, strings.Join(c.allowed, ", "), c.val)
		}
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("max-depth must not be negative, got: %d", cfg.MaxDepth)
	}
	if cfg.MaxBytes < 0 {
		return fmt.Errorf("max-bytes must not be negative, got: %d", cfg.MaxBytes)
	}
	return nil
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
