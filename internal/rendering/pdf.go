package rendering

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/jonathan/cv-builder/internal/types"
)

// DefaultPDFTimeout bounds one export.
const DefaultPDFTimeout = 30 * time.Second

// A4 paper in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// Exporter produces a PDF for a document.
type Exporter interface {
	ExportPDF(ctx context.Context, doc *types.Document) ([]byte, error)
}

// ChromeExporter prints the HTML rendering in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeExporter struct {
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewChromeExporter creates an exporter with the default timeout.
func NewChromeExporter(logger zerolog.Logger) *ChromeExporter {
	return &ChromeExporter{Timeout: DefaultPDFTimeout, Logger: logger}
}

// ExportPDF renders doc to HTML and prints it.
func (e *ChromeExporter) ExportPDF(ctx context.Context, doc *types.Document) ([]byte, error) {
	html, err := RenderHTML(doc)
	if err != nil {
		return nil, err
	}
	return e.PrintHTML(ctx, html)
}

// PrintHTML loads html into a blank page and prints it to PDF.
func (e *ChromeExporter) PrintHTML(ctx context.Context, html string) ([]byte, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	start := time.Now()
	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &PDFError{Message: "browser printing failed", Timeout: timeout, Cause: err}
	}

	e.Logger.Debug().Int("bytes", len(pdf)).Dur("elapsed", time.Since(start)).Msg("pdf exported")
	return pdf, nil
}
