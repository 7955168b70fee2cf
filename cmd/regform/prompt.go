package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/interactive"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// registry holds every renderer the CLI can dispatch to.
func (a *app) registry(format tui.OutputFormat) (*render.Registry, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	driver := a.promptDriver
	if driver == nil {
		// Prompts go to stderr so stdout carries only the record.
		driver = tui.NewSurveyDriver(a.errOut, survey.WithStdio(os.Stdin, os.Stderr, os.Stderr))
	}
	prompt, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(format),
		tui.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}

	registry := render.NewRegistry()
	registry.MustRegister(html)
	registry.MustRegister(prompt)
	registry.MustRegister(interactive.New(
		interactive.WithInput(a.in),
		interactive.WithOutput(a.errOut),
		interactive.WithLogger(a.logger),
	))
	return registry, nil
}

// runRenderer collects the form through a terminal renderer and prints the
// submitted record.
func (a *app) runRenderer(cmd *cobra.Command, name string, format tui.OutputFormat) error {
	registry, err := a.registry(format)
	if err != nil {
		return err
	}
	opts, err := a.orchestratorOptions()
	if err != nil {
		return err
	}
	orch := orchestrator.New(append(opts, orchestrator.WithRegistry(registry))...)

	out, err := orch.Generate(cmd.Context(), orchestrator.Request{
		Renderer: name,
		Control:  a.controller(),
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(out))
	return err
}

func newPromptCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill the form with line-by-line terminal prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, ok := tui.ParseOutputFormat(output)
			if !ok {
				return fmt.Errorf("unknown output format %q", output)
			}
			return a.runRenderer(cmd, tui.Name, format)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(tui.OutputFormatJSON), "output format (json|form|pretty)")
	return cmd
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Fill the form in an interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRenderer(cmd, interactive.Name, tui.OutputFormatJSON)
		},
	}
}
