package command

import (
	"context"
	"strings"

	gcmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-resume/resume"
)

// LoadResumeHandler runs the data loader against a page.
type LoadResumeHandler struct {
	Loader *resume.Loader
	Page   *resume.Page
}

func NewLoadResumeHandler(loader *resume.Loader, page *resume.Page) *LoadResumeHandler {
	return &LoadResumeHandler{Loader: loader, Page: page}
}

// Execute loads and renders the document. A failed load still leaves the
// error fragment on the page; the failure is returned so callers can report
// it.
func (h *LoadResumeHandler) Execute(ctx context.Context, msg LoadResume) error {
	if h == nil || h.Loader == nil {
		return errors.New("resume loader is required", errors.CategoryInternal).
			WithTextCode("LOADER_REQUIRED")
	}
	if h.Page == nil {
		return errors.New("page is required", errors.CategoryInternal).
			WithTextCode("PAGE_REQUIRED")
	}

	result := h.Loader.Load(ctx, h.Page)
	if msg.Result != nil {
		*msg.Result = result
	}
	if res := gcmd.ResultFromContext[resume.LoadResult](ctx); res != nil {
		res.Store(result)
	}
	if result.Err != nil {
		return result.Err
	}
	if msg.Strict {
		if issues := result.Document.Validate(); len(issues) > 0 {
			return resume.ValidationError(issues)
		}
	}
	return nil
}

// ExportResumeHandler runs the export orchestrator.
type ExportResumeHandler struct {
	Exporter *resume.Exporter
}

func NewExportResumeHandler(exporter *resume.Exporter) *ExportResumeHandler {
	return &ExportResumeHandler{Exporter: exporter}
}

func (h *ExportResumeHandler) Execute(ctx context.Context, msg ExportResume) error {
	if h == nil || h.Exporter == nil {
		return errors.New("resume exporter is required", errors.CategoryInternal).
			WithTextCode("EXPORTER_REQUIRED")
	}

	opts := h.Exporter.Options
	if name := strings.TrimSpace(msg.Filename); name != "" {
		opts.Filename = name
	}
	result, err := h.Exporter.ExportWith(ctx, opts)
	if err != nil {
		return err
	}
	if msg.Result != nil {
		*msg.Result = result
	}
	if res := gcmd.ResultFromContext[resume.ExportResult](ctx); res != nil {
		res.Store(result)
	}
	return nil
}
