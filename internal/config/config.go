package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inconshreveable/log15"
	"github.com/spf13/viper"

	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/form"
)

// EnvPrefix prefixes every environment override, e.g. REGFORM_SERVER_ADDR.
const EnvPrefix = "REGFORM"

// Keys shared with command-line flag bindings.
const (
	KeyServerAddr              = "server.addr"
	KeyServerSessionTTL        = "server.session_ttl"
	KeyServerReadHeaderTimeout = "server.read_header_timeout"
	KeyServerShutdownTimeout   = "server.shutdown_timeout"
	KeyFormMode                = "form.mode"
	KeyFormReValidateMode      = "form.revalidate_mode"
	KeyFormUISchema            = "form.ui_schema"
	KeyThemeName               = "theme.name"
	KeyThemeVariant            = "theme.variant"
	KeyLogLevel                = "log.level"
	KeyLogFormat               = "log.format"
)

type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	SessionTTL        time.Duration `mapstructure:"session_ttl"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type FormConfig struct {
	Mode           string `mapstructure:"mode"`
	ReValidateMode string `mapstructure:"revalidate_mode"`
	// UISchema is a file or directory of copy overrides.
	UISchema string `mapstructure:"ui_schema"`
}

type ThemeConfig struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Form   FormConfig   `mapstructure:"form"`
	Theme  ThemeConfig  `mapstructure:"theme"`
	Log    LogConfig    `mapstructure:"log"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			SessionTTL:        30 * time.Minute,
			ReadHeaderTimeout: 5 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Form: FormConfig{
			Mode:           string(form.OnBlur),
			ReValidateMode: string(form.ReValidateOnChange),
		},
		Theme: ThemeConfig{Name: "regform"},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatTerminal,
		},
	}
}

// NewViper returns a viper instance carrying the defaults and reading
// REGFORM_ prefixed environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyServerAddr, d.Server.Addr)
	v.SetDefault(KeyServerSessionTTL, d.Server.SessionTTL)
	v.SetDefault(KeyServerReadHeaderTimeout, d.Server.ReadHeaderTimeout)
	v.SetDefault(KeyServerShutdownTimeout, d.Server.ShutdownTimeout)
	v.SetDefault(KeyFormMode, d.Form.Mode)
	v.SetDefault(KeyFormReValidateMode, d.Form.ReValidateMode)
	v.SetDefault(KeyFormUISchema, d.Form.UISchema)
	v.SetDefault(KeyThemeName, d.Theme.Name)
	v.SetDefault(KeyThemeVariant, d.Theme.Variant)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (YAML, JSON or TOML by extension) into v when path is set,
// then decodes and validates the merged configuration.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = NewViper()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown modes, log levels and formats and non-positive
// durations.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	for key, d := range map[string]time.Duration{
		KeyServerSessionTTL:        c.Server.SessionTTL,
		KeyServerReadHeaderTimeout: c.Server.ReadHeaderTimeout,
		KeyServerShutdownTimeout:   c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", key, d))
		}
	}
	if _, err := form.ParseMode(c.Form.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := form.ParseReValidateMode(c.Form.ReValidateMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := log15.LvlFromString(strings.ToLower(strings.TrimSpace(c.Log.Level))); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if !logging.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// FormOptions converts the form section into controller options.
func (c Config) FormOptions() []form.Option {
	mode, _ := form.ParseMode(c.Form.Mode)
	revalidate, _ := form.ParseReValidateMode(c.Form.ReValidateMode)
	return []form.Option{form.WithMode(mode), form.WithReValidateMode(revalidate)}
}

// Logger builds the root logger described by the log section.
func (c Config) Logger() (log15.Logger, error) {
	return logging.New(logging.Config{Level: c.Log.Level, Format: c.Log.Format})
}
