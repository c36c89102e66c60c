package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/schemas"
)

var (
	pdfInput  string
	pdfOutDir string
	pdfHTML   bool
)

var pdfCmd = &cobra.Command{
	Use:   "export-pdf",
	Short: "Render a CV document to PDF",
	Long:  "Renders a validated CV document JSON file with headless Chrome. Requires Chrome/Chromium.",
	RunE:  runExportPDF,
}

func init() {
	pdfCmd.Flags().StringVarP(&pdfInput, "in", "i", "", "Path to CV document JSON (required)")
	pdfCmd.Flags().StringVarP(&pdfOutDir, "out-dir", "o", ".", "Directory for the PDF")
	pdfCmd.Flags().BoolVar(&pdfHTML, "html", false, "Write the print HTML instead of a PDF")

	if err := pdfCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(pdfCmd)
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	doc, err := schemas.ValidateFile(pdfInput)
	if err != nil {
		return fmt.Errorf("refusing to export: %w", err)
	}

	name := rendering.PDFFilename(doc.PersonalInfo.Name, time.Now())
	if err := os.MkdirAll(pdfOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var data []byte
	if pdfHTML {
		html, err := rendering.RenderHTML(doc)
		if err != nil {
			return err
		}
		data = []byte(html)
		name = name[:len(name)-len(filepath.Ext(name))] + ".html"
	} else {
		data, err = rendering.NewChromeExporter(logger).ExportPDF(cmd.Context(), doc)
		if err != nil {
			return err
		}
	}

	path := filepath.Join(pdfOutDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
