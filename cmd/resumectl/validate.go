package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a resume file against the document schema",
	RunE:  runValidate,
}

var validateInput string

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to resume or document JSON file (required)")
	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	p, err := loadPage(validateInput)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %d sections\n", p.Document.Len())
	return err
}
