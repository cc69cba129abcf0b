package resume

import "strings"

// PageBreakMode selects how content is kept off page boundaries.
type PageBreakMode string

const (
	// PageBreakCSS honors break-inside/page-break-* rules (".avoid-break").
	PageBreakCSS PageBreakMode = "css"
	// PageBreakLegacy forces a break before ".html2pdf__page-break" markers.
	PageBreakLegacy PageBreakMode = "legacy"
)

const (
	DefaultFilename     = "Josh Odell Resume.pdf"
	DefaultPageSize     = "letter"
	DefaultUnit         = "in"
	DefaultImageType    = "jpeg"
	DefaultImageQuality = 0.98
	DefaultScale        = 2.0
	// DefaultCaptureWidth is the fixed layout width in CSS pixels (8.5in at 96dpi).
	DefaultCaptureWidth = 816

	// CaptureClass is applied to the root region while an export runs.
	CaptureClass = "pdf-capture"
	// PrintStyleID is the id of the injected print style element.
	PrintStyleID = "dynamic-pdf-styles"
	// LegacyBreakClass marks elements that start a new page in legacy mode.
	LegacyBreakClass = "html2pdf__page-break"
	// AvoidBreakClass marks elements that must not straddle a page boundary.
	AvoidBreakClass = "avoid-break"
)

// PrintStyles are injected into the page head for the duration of an export.
const PrintStyles = `
.pdf-capture {
    box-shadow: none !important;
    border-radius: 0 !important;
    margin: 0 !important;
    max-width: 816px !important;
    width: 816px !important;
    min-width: 816px !important;
}
.pdf-capture .text-3xl { font-size: 1.5rem !important; }
.pdf-capture .text-2xl { font-size: 1.25rem !important; }
.pdf-capture .text-lg { font-size: 1rem !important; }
.pdf-capture .text-base { font-size: 0.85rem !important; }
.pdf-capture .text-sm { font-size: 0.75rem !important; }
.pdf-capture .text-xs { font-size: 0.65rem !important; }
.pdf-capture p,
.pdf-capture li,
.pdf-capture div {
    line-height: 1.3 !important;
}
.pdf-capture aside { height: 1000px !important; }
.pdf-capture .ghost-spacer { height: 1000px !important; }
.avoid-break {
    page-break-inside: avoid;
    break-inside: avoid;
}
`

// ImageOptions configures raster compression.
type ImageOptions struct {
	Type    string
	Quality float64
}

// CaptureOptions configures how the page is rasterized.
type CaptureOptions struct {
	Scale   float64
	UseCORS bool
	ScrollY int
	Logging bool
	Width   int
}

// ExportOptions is the fixed configuration handed to the export pipeline.
type ExportOptions struct {
	Filename    string
	Margin      float64
	Image       ImageOptions
	Capture     CaptureOptions
	Unit        string
	PageSize    string
	Landscape   bool
	PageBreaks  []PageBreakMode
	PrintStyles string
}

// DefaultExportOptions returns the letter/portrait/zero-margin configuration.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Filename: DefaultFilename,
		Margin:   0,
		Image: ImageOptions{
			Type:    DefaultImageType,
			Quality: DefaultImageQuality,
		},
		Capture: CaptureOptions{
			Scale:   DefaultScale,
			UseCORS: true,
			ScrollY: 0,
			Logging: false,
			Width:   DefaultCaptureWidth,
		},
		Unit:        DefaultUnit,
		PageSize:    DefaultPageSize,
		Landscape:   false,
		PageBreaks:  []PageBreakMode{PageBreakCSS, PageBreakLegacy},
		PrintStyles: PrintStyles,
	}
}

// WithDefaults fills zero values from DefaultExportOptions.
func (o ExportOptions) WithDefaults() ExportOptions {
	defaults := DefaultExportOptions()
	if strings.TrimSpace(o.Filename) == "" {
		o.Filename = defaults.Filename
	}
	if o.Image.Type == "" {
		o.Image.Type = defaults.Image.Type
	}
	if o.Image.Quality == 0 {
		o.Image.Quality = defaults.Image.Quality
	}
	if o.Capture.Scale == 0 {
		o.Capture.Scale = defaults.Capture.Scale
	}
	if o.Capture.Width == 0 {
		o.Capture.Width = defaults.Capture.Width
	}
	if o.Unit == "" {
		o.Unit = defaults.Unit
	}
	if o.PageSize == "" {
		o.PageSize = defaults.PageSize
	}
	if o.PageBreaks == nil {
		o.PageBreaks = defaults.PageBreaks
	}
	if o.PrintStyles == "" {
		o.PrintStyles = defaults.PrintStyles
	}
	return o
}

// Validate checks option ranges.
func (o ExportOptions) Validate() error {
	if o.Image.Quality <= 0 || o.Image.Quality > 1 {
		return NewError(KindValidation, "image quality must be in (0, 1]", nil)
	}
	if o.Capture.Scale <= 0 || o.Capture.Scale > 4 {
		return NewError(KindValidation, "capture scale must be in (0, 4]", nil)
	}
	if o.Margin < 0 {
		return NewError(KindValidation, "margin must not be negative", nil)
	}
	if _, err := NormalizeFilename(o.Filename); err != nil {
		return err
	}
	for _, mode := range o.PageBreaks {
		switch mode {
		case PageBreakCSS, PageBreakLegacy:
		default:
			return NewError(KindValidation, "unknown page break mode: "+string(mode), nil)
		}
	}
	return nil
}

// HasPageBreak reports whether a page-break mode is enabled.
func (o ExportOptions) HasPageBreak(mode PageBreakMode) bool {
	for _, m := range o.PageBreaks {
		if m == mode {
			return true
		}
	}
	return false
}
