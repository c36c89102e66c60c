// Package main provides the cv_form CLI: the HTTP server plus offline tools
// for building, validating and improving CV documents.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/jonathan/cv-builder/internal/observability"
)

var (
	configPath string
	verbose    bool

	appConfig config.Config
	logger    = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "cv_form",
	Short: "CV builder form controller",
	Long: "cv_form serves the CV builder API (preview, validation, PDF export and the writing assistant) " +
		"and provides command line tools to build documents from form data and call the assistant.",
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging and detailed output")
}

func loadAppConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	appConfig = cfg
	logger = observability.Setup(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
