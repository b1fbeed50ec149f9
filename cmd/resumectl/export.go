package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"resume-editor/internal/domain"
	"resume-editor/internal/usecase"
	"resume-editor/pkg/infrastructure"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a resume file to PDF with headless Chrome",
	RunE:  runExport,
}

var (
	exportInput   string
	exportOutput  string
	exportMode    string
	exportChrome  string
	exportTimeout time.Duration
)

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to resume JSON file (required)")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Path to output PDF file (required)")
	exportCmd.Flags().StringVarP(&exportMode, "mode", "m", string(domain.ExportRaster), "Export mode: raster or print")
	exportCmd.Flags().StringVar(&exportChrome, "chrome", os.Getenv("CHROME_PATH"), "Path to the Chrome binary")
	exportCmd.Flags().DurationVar(&exportTimeout, "timeout", 2*time.Minute, "Give up after this long")
	for _, f := range []string{"in", "out"} {
		if err := exportCmd.MarkFlagRequired(f); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", f, err))
		}
	}
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	mode := domain.ExportMode(exportMode)
	if !mode.Valid() {
		return fmt.Errorf("unknown mode %q, want raster or print", exportMode)
	}
	p, err := loadPage(exportInput)
	if err != nil {
		return err
	}
	html, err := usecase.RenderPage(p)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()
	pdf, err := usecase.ExportPDF(ctx, infrastructure.NewChromedpRenderer(exportChrome), html, mode)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := os.WriteFile(exportOutput, pdf, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", exportOutput, len(pdf))
	return err
}
