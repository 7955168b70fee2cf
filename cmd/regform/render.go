package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/orchestrator"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		valuesPath string
		outputPath string
		validate   bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctrl := a.controller()
			if valuesPath != "" {
				values, err := readValues(valuesPath)
				if err != nil {
					return err
				}
				for _, path := range ctrl.Paths() {
					if value, ok := values[path]; ok {
						if err := ctrl.Change(path, value); err != nil {
							return err
						}
					}
				}
			}
			if validate {
				ctrl.Validate()
			}

			opts, err := a.orchestratorOptions()
			if err != nil {
				return err
			}
			html, err := orchestrator.New(opts...).Generate(cmd.Context(), orchestrator.Request{Control: ctrl})
			if err != nil {
				return err
			}

			if outputPath == "" {
				_, err = a.out.Write(html)
				return err
			}
			if err := os.WriteFile(outputPath, html, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}
			a.logger.Info("form rendered", "path", outputPath, "bytes", len(html))
			return nil
		},
	}
	cmd.Flags().StringVar(&valuesPath, "values", "", "JSON object of field values to prefill")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write HTML to this file instead of stdout")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate every field so errors are shown")
	return cmd
}

func readValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	return values, nil
}
