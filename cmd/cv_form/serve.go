package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/llm"
	"github.com/jonathan/cv-builder/internal/preview"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/server"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
	"github.com/jonathan/cv-builder/internal/writer"
)

var (
	servePort  int
	serveNoPDF bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing /preview, /form, /validate, /api/schema, /generate-pdf
and the /ai/* writing assistant endpoints.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveNoPDF, "no-pdf", false, "Disable PDF export (no Chrome available)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := appConfig.Port
	if servePort > 0 {
		port = servePort
	}

	store, err := preview.Open(ctx, appConfig.PreviewStoreURL, appConfig.TTL(), logger)
	if err != nil {
		return err
	}
	if p, ok := store.(preview.Purger); ok {
		go preview.RunPurger(ctx, p, time.Hour, logger)
	}

	svc, closeLLM, err := newWriter(ctx)
	if err != nil {
		_ = store.Close()
		return err
	}
	defer closeLLM()

	var exporter rendering.Exporter
	if !serveNoPDF {
		exporter = rendering.NewChromeExporter(logger)
	}

	srv, err := server.New(server.Config{
		Port:        port,
		Store:       store,
		Writer:      svc,
		Exporter:    exporter,
		FormOptions: appConfig.FormOptions(),
		PreviewTTL:  appConfig.TTL(),
		RateLimit:   ratelimit.LoadConfig(),
		Logger:      logger,
	})
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}

// newWriter builds the writing assistant for the configured provider. With no
// API key the server still starts and /ai/* answers 503.
func newWriter(ctx context.Context) (*writer.Service, func(), error) {
	llmConfig, apiKey, err := appConfig.LLM()
	if err != nil {
		return nil, nil, err
	}

	client, err := llm.NewClient(ctx, llmConfig, apiKey)
	if errors.Is(err, llm.ErrNoAPIKey) {
		logger.Warn().Str("provider", string(llmConfig.Provider)).Msg("no API key configured; writing assistant disabled")
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	logger.Info().
		Str("provider", string(llmConfig.Provider)).
		Str("model", client.GetModel(llm.TierStandard)).
		Msg("writing assistant enabled")
	return writer.New(client, logger), func() { _ = client.Close() }, nil
}
