// Package config loads contactform settings from defaults, an optional config
// file, a .env file, CONTACTFORM_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/internal/logging"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CONTACTFORM"

// Output formats accepted by the "output" key.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config is the resolved configuration.
type Config struct {
	Env            string        `mapstructure:"env" json:"env"`
	LogLevel       string        `mapstructure:"log_level" json:"log_level"`
	ResetDelay     time.Duration `mapstructure:"-" json:"reset_delay"`
	Output         string        `mapstructure:"output" json:"output"`
	BannerText     string        `mapstructure:"banner_text" json:"banner_text"`
	Title          string        `mapstructure:"title" json:"title"`
	ThemeFile      string        `mapstructure:"theme_file" json:"theme_file"`
	ThemeVariant   string        `mapstructure:"theme_variant" json:"theme_variant"`
	StrictContract bool          `mapstructure:"strict_contract" json:"strict_contract"`

	// Source is the config file that was merged, if any.
	Source string `mapstructure:"-" json:"source,omitempty"`
}

var keys = []string{
	"env",
	"log_level",
	"reset_delay",
	"output",
	"banner_text",
	"title",
	"theme_file",
	"theme_variant",
	"strict_contract",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("log_level", "info")
	v.SetDefault("reset_delay", orchestrator.DefaultResetDelay.String())
	v.SetDefault("output", OutputText)
	v.SetDefault("banner_text", "")
	v.SetDefault("title", "")
	v.SetDefault("theme_file", "")
	v.SetDefault("theme_variant", "")
	v.SetDefault("strict_contract", false)
}

// RegisterFlags defines the configuration flags on flags. Flag names use
// dashes; they map to the underscore keys above.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default: contactform.{yaml,yml,json,toml} in the working directory)")
	flags.String("env", "dev", `runtime environment "dev"|"prod"`)
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("reset-delay", orchestrator.DefaultResetDelay.String(), `delay before an accepted form is cleared (e.g. "2s", "1500ms" or seconds)`)
	flags.StringP("output", "f", OutputText, "output format: text, json or yaml")
	flags.String("banner-text", "", "success banner text")
	flags.String("title", "", "form title")
	flags.String("theme-file", "", "YAML theme manifest applied to HTML output")
	flags.String("theme-variant", "", "theme variant to select from the manifest")
	flags.Bool("strict-contract", false, "check accepted payloads against the OpenAPI contract before sending")
}

// Option customises Load.
type Option func(*loader)

type loader struct {
	dir    string
	logger *zap.Logger
}

// WithDir sets the directory searched for config and .env files. Defaults to
// the working directory.
func WithDir(dir string) Option {
	return func(l *loader) {
		l.dir = dir
	}
}

// WithLogger reports which files were merged.
func WithLogger(logger *zap.Logger) Option {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Load resolves the configuration. flags may be nil; only flags the user
// explicitly set override the lower layers.
func Load(flags *pflag.FlagSet, options ...Option) (*Config, error) {
	l := loader{dir: ".", logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&l)
	}

	v := viper.New()
	setDefaults(v)

	source, err := l.mergeConfigFile(v, flags)
	if err != nil {
		return nil, err
	}
	if err := l.mergeDotEnv(v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	if flags != nil {
		flags.VisitAll(func(f *pflag.Flag) {
			if !f.Changed || !isKey(flagKey(f.Name)) {
				return
			}
			_ = v.BindPFlag(flagKey(f.Name), f)
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Source = source

	delay, err := parseDurationFlexible(v.Get("reset_delay"), orchestrator.DefaultResetDelay)
	if err != nil {
		return nil, fmt.Errorf("config: reset_delay: %w", err)
	}
	cfg.ResetDelay = delay

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("config: output %q must be one of text, json, yaml", c.Output)
	}
	if !logging.IsValidLogLevel(c.LogLevel) {
		return fmt.Errorf("config: invalid log_level %q", c.LogLevel)
	}
	if c.ResetDelay <= 0 {
		return errors.New("config: reset_delay must be > 0")
	}
	return nil
}

func (l loader) mergeConfigFile(v *viper.Viper, flags *pflag.FlagSet) (string, error) {
	explicit := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			explicit = strings.TrimSpace(f.Value.String())
		}
	}

	if explicit != "" {
		if err := mergeFile(v, explicit); err != nil {
			return "", err
		}
		l.logger.Debug("loaded config file", zap.String("file", explicit))
		return explicit, nil
	}

	for _, ext := range [...]string{"yaml", "yml", "json", "toml"} {
		file := filepath.Join(l.dir, "contactform."+ext)
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := mergeFile(v, file); err != nil {
			return "", err
		}
		l.logger.Debug("loaded config file", zap.String("file", file))
		return file, nil
	}
	return "", nil
}

func mergeFile(v *viper.Viper, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", file, err)
	}
	ext := strings.TrimPrefix(filepath.Ext(file), ".")
	if ext == "" {
		ext = "yaml"
	}
	v.SetConfigType(ext)
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("config: decode %s: %w", file, err)
	}
	return nil
}

// mergeDotEnv layers CONTACTFORM_* entries from .env above the config file.
// Real environment variables still win because AutomaticEnv is consulted
// first.
func (l loader) mergeDotEnv(v *viper.Viper) error {
	file := filepath.Join(l.dir, ".env")
	if _, err := os.Stat(file); err != nil {
		return nil
	}
	entries, err := godotenv.Read(file)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", file, err)
	}

	values := map[string]any{}
	prefix := EnvPrefix + "_"
	for name, value := range entries {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		values[strings.ToLower(strings.TrimPrefix(name, prefix))] = value
	}
	if len(values) == 0 {
		return nil
	}
	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("config: merge %s: %w", file, err)
	}
	l.logger.Debug("loaded .env file", zap.String("file", file), zap.Int("keys", len(values)))
	return nil
}

func isKey(name string) bool {
	for _, key := range keys {
		if key == name {
			return true
		}
	}
	return false
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
