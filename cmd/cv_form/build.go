package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/form"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/photo"
	"github.com/jonathan/cv-builder/internal/types"
)

var (
	buildInput  string
	buildPhoto  string
	buildOutput string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a CV document from form data",
	Long: `Reads a saved form (rendered HTML, or an application/x-www-form-urlencoded body)
and writes the serialized CV document as JSON. Incomplete entries are dropped.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildInput, "in", "i", "", "Path to form HTML or urlencoded form body (required)")
	buildCmd.Flags().StringVarP(&buildPhoto, "photo", "p", "", "Path to a JPG or PNG photo (optional)")
	buildCmd.Flags().StringVarP(&buildOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	if err := buildCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	doc, notices, err := buildDocument(cmd.Context(), buildInput, buildPhoto, appConfig.FormOptions())
	if err != nil {
		return err
	}
	for _, n := range notices {
		logger.Warn().Err(n).Msg(noticeText(n))
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintDocument(doc)
	}
	return writeJSON(cmd.OutOrStdout(), buildOutput, doc)
}

// buildDocument loads the form at formPath, attaches the photo at photoPath
// if given, and serializes the result.
func buildDocument(ctx context.Context, formPath, photoPath string, opts *form.Options) (*types.Document, []error, error) {
	state, notices, err := loadFormState(formPath, opts)
	if err != nil {
		return nil, nil, err
	}

	photoURL := ""
	if photoPath != "" {
		p, err := loadPhoto(ctx, photoPath)
		if err != nil {
			return nil, nil, err
		}
		photoURL = p.DataURI
	}
	return state.Document(photoURL), notices, nil
}

// loadFormState reads .html/.htm files as rendered markup and anything else
// as a urlencoded form body.
func loadFormState(path string, opts *form.Options) (*form.State, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open form file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return form.FromHTML(f, opts)
	default:
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read form file: %w", err)
		}
		values, err := url.ParseQuery(strings.TrimSpace(string(data)))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse form body: %w", err)
		}
		state, notices := form.FromValues(values, opts)
		return state, notices, nil
	}
}

// loadPhoto runs a file through photo intake. The declared type comes from
// the extension, as a browser file picker reports it.
func loadPhoto(ctx context.Context, path string) (*photo.Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat photo: %w", err)
	}

	var intake photo.Intake
	p, err := intake.Accept(ctx, photo.File{
		Name:    filepath.Base(path),
		Type:    mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
		Size:    info.Size(),
		Content: f,
	})
	if err != nil {
		return nil, photoError(err)
	}
	return p, nil
}

// photoError prefixes intake failures with their user-facing notice.
func photoError(err error) error {
	var rejected *photo.RejectedError
	if errors.As(err, &rejected) {
		return fmt.Errorf("%s: %w", rejected.Notice(), err)
	}
	var decodeErr *photo.DecodeError
	if errors.As(err, &decodeErr) {
		return fmt.Errorf("%s: %w", decodeErr.Notice(), err)
	}
	return err
}

func noticeText(err error) string {
	var n interface{ Notice() string }
	if errors.As(err, &n) {
		return n.Notice()
	}
	return err.Error()
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
