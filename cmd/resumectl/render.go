package main

import (
	"fmt"
	"os"

	"resume-editor/internal/usecase"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume file to standalone HTML",
	RunE:  runRender,
}

var (
	renderInput  string
	renderOutput string
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to resume JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output HTML file (required)")
	for _, f := range []string{"in", "out"} {
		if err := renderCmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", f, err))
		}
	}
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	p, err := loadPage(renderInput)
	if err != nil {
		return err
	}
	html, err := usecase.RenderPage(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(renderOutput, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOutput, err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", renderOutput)
	return err
}
