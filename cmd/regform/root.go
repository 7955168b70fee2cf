package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/inconshreveable/log15"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	regform "github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/internal/logging"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/uischema"
)

// errInvalid makes the process exit 1 without printing an error; the command
// has already reported the issues.
var errInvalid = errors.New("invalid record")

type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  log15.Logger

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// promptDriver overrides the survey driver.
	promptDriver tui.PromptDriver
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		v:      config.NewViper(),
		cfg:    config.Defaults(),
		logger: logging.Discard(),
		in:     in,
		out:    out,
		errOut: errOut,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "regform",
		Short:         "Registration form with per-field validation",
		Long:          `Serve, prompt for, render and validate a registration form (name, email, password, confirmation) that validates each field when it loses focus.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml, json or toml)")
	flags.String("log-level", "", "log level (debug|info|warn|error|crit)")
	flags.String("log-format", "", "log format (terminal|logfmt|json)")
	flags.String("mode", "", "validation trigger before submit (onBlur|onChange|onSubmit|onTouched|all)")
	flags.String("ui-schema", "", "UI schema file or directory with copy overrides")
	flags.String("theme-variant", "", "theme variant, e.g. dark")
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = a.v.BindPFlag(config.KeyFormMode, flags.Lookup("mode"))
	_ = a.v.BindPFlag(config.KeyFormUISchema, flags.Lookup("ui-schema"))
	_ = a.v.BindPFlag(config.KeyThemeVariant, flags.Lookup("theme-variant"))

	root.AddCommand(
		newServeCmd(a),
		newPromptCmd(a),
		newTUICmd(a),
		newRenderCmd(a),
		newValidateCmd(a),
		newSchemaCmd(a),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	logger, err := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: a.errOut,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) controller() *regform.Controller {
	return regform.NewController(
		regform.WithLogger(a.logger),
		regform.WithFormOptions(a.cfg.FormOptions()...),
	)
}

// orchestratorOptions carries theme and UI schema settings.
func (a *app) orchestratorOptions() ([]orchestrator.Option, error) {
	opts := []orchestrator.Option{
		orchestrator.WithLogger(a.logger),
		orchestrator.WithTheme(a.cfg.Theme.Name, a.cfg.Theme.Variant),
	}
	path := a.cfg.Form.UISchema
	if path == "" {
		return opts, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ui schema: %w", err)
	}
	if info.IsDir() {
		return append(opts, orchestrator.WithUISchemaFS(os.DirFS(path))), nil
	}
	store, err := uischema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return append(opts, orchestrator.WithUIDecorators(uischema.NewDecorator(store))), nil
}
