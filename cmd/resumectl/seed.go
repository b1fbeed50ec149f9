package main

import (
	"encoding/json"
	"fmt"

	"resume-editor/internal/model"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Print the starter resume file",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	doc, err := json.Marshal(model.Seed())
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	prof := model.DefaultProfile()
	out, err := json.MarshalIndent(resumeFile{
		Profile:    &prof,
		Visibility: model.SeedVisibility(),
		Document:   doc,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode resume file: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
