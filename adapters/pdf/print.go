package resumepdf

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/goliatone/go-resume/resume"
)

// PrintEngine renders PDF output with Chromium's print pipeline.
type PrintEngine struct {
	Browser         *Browser
	Timeout         time.Duration
	BaseURL         string
	BlockExternal   bool
	PrintBackground bool
}

// Render prints the snapshot at the configured paper size and margins.
func (e *PrintEngine) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	if e == nil || e.Browser == nil {
		return nil, resume.NewError(resume.KindInternal, "chromium print engine requires a browser", nil)
	}
	layout, err := resolveLayout(req.Options)
	if err != nil {
		return nil, err
	}
	params := buildPrintToPDFParams(layout, e.PrintBackground)

	execCtx, cancel, err := e.Browser.tab(ctx, e.Timeout)
	if err != nil {
		return nil, resume.NewError(resume.KindInternal, "chromium engine init failed", err)
	}
	defer cancel()

	var pdf []byte
	actions := []chromedp.Action{
		emulation.SetDeviceMetricsOverride(int64(layout.captureWidth), int64(layout.pageHeightCSS()), 1, false),
	}
	actions = append(actions, loadDocument(injectBaseURL(req.HTML, e.BaseURL), e.BlockExternal)...)
	actions = append(actions, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = params.Do(ctx)
		return err
	}))

	if err := chromedp.Run(execCtx, actions...); err != nil {
		return nil, resume.NewError(resume.KindExport, "chromium pdf render failed", err)
	}
	return pdf, nil
}

func buildPrintToPDFParams(layout pageLayout, printBackground bool) *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPaperWidth(layout.widthIn).
		WithPaperHeight(layout.heightIn).
		WithMarginTop(layout.marginIn).
		WithMarginBottom(layout.marginIn).
		WithMarginLeft(layout.marginIn).
		WithMarginRight(layout.marginIn).
		WithPrintBackground(printBackground).
		WithPreferCSSPageSize(false).
		WithScale(1)
}
