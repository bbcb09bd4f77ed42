// Package pdfgen renders the frontend's report preview page to PDF
// with a headless browser.
package pdfgen

import (
	"context"
	"fmt"
	"os"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

func frontendHost() string {
	if h := os.Getenv("FE_HOST_NAME"); h != "" {
		return h
	}
	return "http://localhost:8080"
}

// tokenStorageKey is the localStorage slot the frontend reads its
// bearer token from.
const tokenStorageKey = "__jWt-s3cReT__"

// Render loads the report preview for a workfile in a headless browser
// and returns the printed PDF bytes. The caller's token is seeded into
// the frontend's localStorage first so the preview can fetch its data.
func Render(ctx context.Context, token, workfileID string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	host := frontendHost()
	reportURL := fmt.Sprintf("%s/workfiles/%s/report-preview", host, workfileID)

	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(host),
		chromedp.Evaluate(fmt.Sprintf("localStorage.setItem(%q, %q)", tokenStorageKey, token), nil),
		chromedp.Navigate(reportURL),
		chromedp.WaitReady("body"),
		emulation.SetEmulatedMedia().WithMedia("print"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}
