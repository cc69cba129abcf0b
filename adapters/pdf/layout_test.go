package resumepdf

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/goliatone/go-resume/resume"
)

func TestToInches(t *testing.T) {
	tests := []struct {
		value float64
		unit  string
		want  float64
	}{
		{value: 1, unit: "in", want: 1},
		{value: 25.4, unit: "mm", want: 1},
		{value: 2.54, unit: "cm", want: 1},
		{value: 72, unit: "pt", want: 1},
		{value: 96, unit: "px", want: 1},
		{value: 2, unit: "", want: 2},
	}

	for _, tc := range tests {
		got, err := toInches(tc.value, tc.unit)
		if err != nil {
			t.Fatalf("toInches(%v, %q): %v", tc.value, tc.unit, err)
		}
		if diff := got - tc.want; diff > 0.0001 || diff < -0.0001 {
			t.Fatalf("toInches(%v, %q): expected %f, got %f", tc.value, tc.unit, tc.want, got)
		}
	}
	if _, err := toInches(1, "furlong"); resume.KindFromError(err) != resume.KindValidation {
		t.Fatalf("expected validation error for unknown unit")
	}
}

func TestResolveLayout_LetterPortrait(t *testing.T) {
	layout, err := resolveLayout(resume.DefaultExportOptions())
	if err != nil {
		t.Fatalf("resolveLayout: %v", err)
	}
	if layout.widthIn != 8.5 || layout.heightIn != 11 || layout.marginIn != 0 {
		t.Fatalf("unexpected layout %+v", layout)
	}
	if layout.paper.name != "Letter" {
		t.Fatalf("expected Letter paper, got %q", layout.paper.name)
	}
	if got := layout.pageHeightCSS(); got != 1056 {
		t.Fatalf("expected 1056px page height, got %d", got)
	}
}

func TestResolveLayout_Landscape(t *testing.T) {
	opts := resume.DefaultExportOptions()
	opts.Landscape = true
	layout, err := resolveLayout(opts)
	if err != nil {
		t.Fatalf("resolveLayout: %v", err)
	}
	if layout.widthIn != 11 || layout.heightIn != 8.5 {
		t.Fatalf("expected swapped dimensions, got %+v", layout)
	}
}

func TestResolveLayout_Invalid(t *testing.T) {
	opts := resume.DefaultExportOptions()
	opts.PageSize = "B7"
	if _, err := resolveLayout(opts); resume.KindFromError(err) != resume.KindValidation {
		t.Fatalf("expected validation error for page size, got %v", err)
	}

	opts = resume.DefaultExportOptions()
	opts.Margin = 5
	if _, err := resolveLayout(opts); resume.KindFromError(err) != resume.KindValidation {
		t.Fatalf("expected validation error for margins, got %v", err)
	}
}

func TestBuildPrintToPDFParams(t *testing.T) {
	opts := resume.DefaultExportOptions()
	opts.Margin = 10
	opts.Unit = "mm"
	layout, err := resolveLayout(opts)
	if err != nil {
		t.Fatalf("resolveLayout: %v", err)
	}
	params := buildPrintToPDFParams(layout, true)
	if params.PaperWidth != 8.5 || params.PaperHeight != 11 {
		t.Fatalf("expected letter paper, got width=%f height=%f", params.PaperWidth, params.PaperHeight)
	}
	if params.MarginTop == 0 || params.MarginLeft == 0 {
		t.Fatalf("expected margins to be set")
	}
	if !params.PrintBackground {
		t.Fatalf("expected print background true")
	}
}

func TestInjectBaseURL(t *testing.T) {
	input := []byte("<html><head><title>Test</title></head><body>ok</body></html>")
	out := injectBaseURL(input, "https://assets.local/")
	if !bytes.Contains(out, []byte(`<head><base href="https://assets.local/">`)) {
		t.Fatalf("expected base tag to be injected, got %s", out)
	}
	if got := injectBaseURL(input, ""); !bytes.Equal(got, input) {
		t.Fatalf("expected input untouched without base url")
	}
}

func TestPaginate(t *testing.T) {
	pages := paginate(solidImage(100, 250), 100)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	heights := []int{100, 100, 50}
	for i, page := range pages {
		if got := page.Bounds().Dy(); got != heights[i] {
			t.Fatalf("page %d: expected height %d, got %d", i, heights[i], got)
		}
		if got := page.Bounds().Dx(); got != 100 {
			t.Fatalf("page %d: expected width 100, got %d", i, got)
		}
	}

	if single := paginate(solidImage(10, 10), 100); len(single) != 1 {
		t.Fatalf("expected a short image to stay on one page")
	}
}

func TestAssemblePDF_PageCount(t *testing.T) {
	opts := resume.DefaultExportOptions()
	layout, err := resolveLayout(opts)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	pages := paginate(solidImage(80, 230), 100)

	data, err := assemblePDF(pages, layout, opts)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("expected pdf output")
	}
	count, err := PageCount(data)
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	if count != len(pages) {
		t.Fatalf("expected %d pages, got %d", len(pages), count)
	}

	if _, err := assemblePDF([]image.Image{}, layout, opts); resume.KindFromError(err) != resume.KindExport {
		t.Fatalf("expected export error for empty input")
	}
}

func TestPageBreakScript(t *testing.T) {
	script := pageBreakScript(1056, true, false)
	if !strings.HasSuffix(script, "(1056, true, false)") {
		t.Fatalf("expected arguments in script, got tail %q", script[len(script)-40:])
	}
	if !strings.Contains(script, "."+resume.LegacyBreakClass) {
		t.Fatalf("expected legacy marker selector")
	}
	if strings.Contains(script, "%!") {
		t.Fatalf("unexpected formatting artifacts in script")
	}
}

func TestJPEGQuality(t *testing.T) {
	if got := jpegQuality(0.98); got != 98 {
		t.Fatalf("expected 98, got %d", got)
	}
	if got := jpegQuality(3); got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
}

func TestWKHTMLTOPDFArgs(t *testing.T) {
	args, err := wkhtmltopdfArgs(resume.DefaultExportOptions())
	if err != nil {
		t.Fatalf("args: %v", err)
	}
	joined := strings.Join(args, " ")
	for _, want := range []string{"--page-size Letter", "--orientation Portrait", "--margin-top 0in", "--image-quality 98", "--viewport-size 816x1056"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in %q", want, joined)
		}
	}
}

func TestLoadDocument_BlockExternal(t *testing.T) {
	if got := len(loadDocument([]byte("<p>x</p>"), false)); got != 3 {
		t.Fatalf("expected 3 actions without blocking, got %d", got)
	}
	if got := len(loadDocument([]byte("<p>x</p>"), true)); got != 5 {
		t.Fatalf("expected 5 actions with blocking, got %d", got)
	}

	patterns := externalBlockPatterns()
	want := map[string]bool{"http://*:*/*": true, "https://*:*/*": true}
	if len(patterns) != len(want) {
		t.Fatalf("expected %d patterns, got %d", len(want), len(patterns))
	}
	for _, pattern := range patterns {
		if !want[pattern.URLPattern] {
			t.Fatalf("unexpected pattern %q", pattern.URLPattern)
		}
		if !pattern.Block {
			t.Fatalf("pattern %q does not block", pattern.URLPattern)
		}
	}
}
