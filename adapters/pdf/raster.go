package resumepdf

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/goliatone/go-resume/resume"
)

// RasterEngine captures the laid-out snapshot as an image and assembles the
// PDF one image per page.
type RasterEngine struct {
	Browser       *Browser
	Timeout       time.Duration
	BaseURL       string
	BlockExternal bool
}

// Render lays the snapshot out at the capture width, applies page breaks,
// screenshots it at the capture scale and paginates the result.
func (e *RasterEngine) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	if e == nil || e.Browser == nil {
		return nil, resume.NewError(resume.KindInternal, "chromium raster engine requires a browser", nil)
	}
	opts := req.Options
	layout, err := resolveLayout(opts)
	if err != nil {
		return nil, err
	}
	pageHeight := layout.pageHeightCSS()

	execCtx, cancel, err := e.Browser.tab(ctx, e.Timeout)
	if err != nil {
		return nil, resume.NewError(resume.KindInternal, "chromium engine init failed", err)
	}
	defer cancel()

	var height float64
	var capture []byte
	actions := []chromedp.Action{
		emulation.SetDeviceMetricsOverride(int64(layout.captureWidth), int64(pageHeight), 1, false),
	}
	actions = append(actions, loadDocument(injectBaseURL(req.HTML, e.BaseURL), e.BlockExternal)...)
	actions = append(actions,
		chromedp.Evaluate(pageBreakScript(pageHeight, opts.HasPageBreak(resume.PageBreakCSS), opts.HasPageBreak(resume.PageBreakLegacy)), &height),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if height <= 0 {
				return fmt.Errorf("snapshot has no height")
			}
			var err error
			capture, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatJpeg).
				WithQuality(jpegQuality(opts.Image.Quality)).
				WithCaptureBeyondViewport(true).
				WithClip(&page.Viewport{
					X:      0,
					Y:      float64(opts.Capture.ScrollY),
					Width:  float64(layout.captureWidth),
					Height: math.Ceil(height),
					Scale:  opts.Capture.Scale,
				}).
				Do(ctx)
			return err
		}),
	)

	if err := chromedp.Run(execCtx, actions...); err != nil {
		return nil, resume.NewError(resume.KindExport, "chromium raster capture failed", err)
	}

	img, err := decodeCapture(capture)
	if err != nil {
		return nil, err
	}
	pageHeightPx := int(math.Floor(float64(pageHeight) * float64(img.Bounds().Dx()) / float64(layout.captureWidth)))
	return assemblePDF(paginate(img, pageHeightPx), layout, opts)
}

// pageBreakScript returns an expression that inserts spacers so no
// break-inside:avoid element straddles a page boundary (css mode) and marker
// elements start a new page (legacy mode). It evaluates to the final height.
func pageBreakScript(pageHeight int, css, legacy bool) string {
	return fmt.Sprintf(`(function(pageHeight, css, legacy) {
  var root = document.body;
  function top(el) { return el.getBoundingClientRect().top + window.scrollY; }
  function spacer(h) {
    var d = document.createElement('div');
    d.style.height = h + 'px';
    d.style.width = '100%%';
    d.style.display = 'block';
    return d;
  }
  if (legacy) {
    root.querySelectorAll('.%s').forEach(function(el) {
      var rest = pageHeight - (top(el) %% pageHeight);
      if (rest < pageHeight) {
        el.style.display = 'block';
        el.style.height = rest + 'px';
      }
    });
  }
  if (css) {
    root.querySelectorAll('*').forEach(function(el) {
      var style = window.getComputedStyle(el);
      if (style.breakInside !== 'avoid' && style.pageBreakInside !== 'avoid') { return; }
      var rect = el.getBoundingClientRect();
      var start = rect.top + window.scrollY;
      var first = Math.floor(start / pageHeight);
      var last = Math.floor((start + rect.height - 1) / pageHeight);
      if (last > first && rect.height <= pageHeight) {
        el.parentNode.insertBefore(spacer((first + 1) * pageHeight - start), el);
      }
    });
  }
  return Math.max(document.documentElement.scrollHeight, document.body.scrollHeight);
})(%d, %t, %t)`, resume.LegacyBreakClass, pageHeight, css, legacy)
}

func jpegQuality(quality float64) int64 {
	q := int64(math.Round(quality * 100))
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
