package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/schemas"
)

var validateInput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a CV document",
	Long:  "Checks a CV document JSON file for name and email, the CV JSON Schema, and entry rules.",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to CV document JSON (required)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	printer := observability.NewPrinter(cmd.OutOrStdout())

	_, err := schemas.ValidateFile(validateInput)
	var verr *schemas.ValidationError
	switch {
	case err == nil:
		printer.PrintValidation(nil)
		return nil
	case errors.As(err, &verr):
		printer.PrintValidation(verr.Messages())
		return fmt.Errorf("%s is invalid (%d problem(s))", validateInput, len(verr.Errors))
	default:
		return fmt.Errorf("failed to validate: %w", err)
	}
}
