package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromedpEngine drives a headless Chrome for the two export stages:
// rasterizing a page to a bitmap and packaging a page into a PDF.
type ChromedpEngine struct{}

func NewChromedpEngine() *ChromedpEngine { return &ChromedpEngine{} }

// A4 at the 8.27in × 11.69in print size the PDF step uses; raster viewport
// uses the same proportions at 96dpi.
const (
	a4WidthIn    = 8.27
	a4HeightIn   = 11.69
	a4WidthPx    = 794
	a4HeightPx   = 1123
	chromeBudget = 60 * time.Second
)

// Rasterize renders the HTML in an A4-proportioned viewport and captures a
// full-page PNG. scale is the supersampling factor applied through the
// device scale, keeping text legible after PDF embedding.
func (e *ChromedpEngine) Rasterize(ctx context.Context, html string, scale float64) ([]byte, error) {
	var shot []byte
	err := e.run(ctx, html,
		chromedp.EmulateViewport(a4WidthPx, a4HeightPx, chromedp.EmulateScale(scale)),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		return nil, err
	}
	return shot, nil
}

// PrintPDF packages the HTML into a single PDF sized to A4.
func (e *ChromedpEngine) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	var pdfBuf []byte
	err := e.run(ctx, html,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

// run writes the HTML to a temp file and executes the actions against it in
// a fresh headless Chrome context.
func (e *ChromedpEngine) run(ctx context.Context, html string, actions ...chromedp.Action) error {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, chromeBudget)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return err
	}

	all := append([]chromedp.Action{
		chromedp.Navigate("file://" + htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}, actions...)
	return chromedp.Run(runCtx, all...)
}
