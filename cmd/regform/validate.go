package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/schema"
)

type validationReport struct {
	Valid  bool           `json:"valid"`
	Issues []schema.Issue `json:"issues,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Validate a JSON registration record",
		Long:  "Validate a JSON registration record read from a file or stdin. Issues are printed as JSON and the command exits 1 when the record is invalid.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(args)
			if err != nil {
				return err
			}
			report, err := validateRecord(cmd, data)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if !report.Valid {
				return errInvalid
			}
			return nil
		},
	}
}

func validateRecord(cmd *cobra.Command, data []byte) (validationReport, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return validationReport{}, fmt.Errorf("decode record: %w", err)
	}
	issues, err := registration.CheckShape(cmd.Context(), payload)
	if err != nil {
		return validationReport{}, err
	}
	if len(issues) > 0 {
		return validationReport{Issues: issues}, nil
	}

	object, _ := payload.(map[string]any)
	record, err := registration.Decode(object)
	if err != nil {
		return validationReport{}, err
	}
	result := registration.Validate(record)
	return validationReport{Valid: result.Valid(), Issues: result.Issues}, nil
}

func (a *app) readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, nil
}
