package resumepdf

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/goliatone/go-resume/resume"
)

const cssPixelsPerInch = 96.0

type paperSize struct {
	width  float64
	height float64
	// fpdf size name
	name string
}

var pdfPageSizesInches = map[string]paperSize{
	"A3":     {width: 11.69, height: 16.54, name: "A3"},
	"A4":     {width: 8.27, height: 11.69, name: "A4"},
	"A5":     {width: 5.83, height: 8.27, name: "A5"},
	"LETTER": {width: 8.5, height: 11, name: "Letter"},
	"LEGAL":  {width: 8.5, height: 14, name: "Legal"},
}

// pageLayout is the resolved page geometry for a set of export options.
type pageLayout struct {
	paper        paperSize
	widthIn      float64
	heightIn     float64
	marginIn     float64
	captureWidth int
}

func resolveLayout(opts resume.ExportOptions) (pageLayout, error) {
	paper, ok := pdfPageSizesInches[strings.ToUpper(strings.TrimSpace(opts.PageSize))]
	if !ok {
		return pageLayout{}, resume.NewError(resume.KindValidation, fmt.Sprintf("unsupported pdf page size: %s", opts.PageSize), nil)
	}
	margin, err := toInches(opts.Margin, opts.Unit)
	if err != nil {
		return pageLayout{}, err
	}

	layout := pageLayout{
		paper:        paper,
		widthIn:      paper.width,
		heightIn:     paper.height,
		marginIn:     margin,
		captureWidth: opts.Capture.Width,
	}
	if opts.Landscape {
		layout.widthIn, layout.heightIn = paper.height, paper.width
	}
	if 2*margin >= layout.widthIn || 2*margin >= layout.heightIn {
		return pageLayout{}, resume.NewError(resume.KindValidation, "pdf margins leave no printable area", nil)
	}
	if layout.captureWidth <= 0 {
		layout.captureWidth = int(math.Round((layout.widthIn - 2*margin) * cssPixelsPerInch))
	}
	return layout, nil
}

// contentWidthIn is the printable width.
func (l pageLayout) contentWidthIn() float64 {
	return l.widthIn - 2*l.marginIn
}

// contentHeightIn is the printable height.
func (l pageLayout) contentHeightIn() float64 {
	return l.heightIn - 2*l.marginIn
}

// pageHeightCSS is the height in CSS pixels of one page of content laid out
// at captureWidth.
func (l pageLayout) pageHeightCSS() int {
	return int(math.Floor(float64(l.captureWidth) * l.contentHeightIn() / l.contentWidthIn()))
}

func toInches(value float64, unit string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "", "in":
		return value, nil
	case "cm":
		return value / 2.54, nil
	case "mm":
		return value / 25.4, nil
	case "pt":
		return value / 72.0, nil
	case "px":
		return value / cssPixelsPerInch, nil
	default:
		return 0, resume.NewError(resume.KindValidation, fmt.Sprintf("unsupported pdf length unit: %s", unit), nil)
	}
}

func injectBaseURL(htmlInput []byte, baseURL string) []byte {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return htmlInput
	}

	lower := strings.ToLower(string(htmlInput))
	if strings.Contains(lower, "<base") {
		return htmlInput
	}

	baseTag := fmt.Sprintf(`<base href="%s">`, html.EscapeString(baseURL))
	if headIdx := strings.Index(lower, "<head"); headIdx >= 0 {
		if end := strings.Index(lower[headIdx:], ">"); end >= 0 {
			insertPos := headIdx + end + 1
			return append(append([]byte{}, htmlInput[:insertPos]...), append([]byte(baseTag), htmlInput[insertPos:]...)...)
		}
	}

	return append([]byte(baseTag), htmlInput...)
}
