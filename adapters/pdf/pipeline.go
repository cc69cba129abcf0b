package resumepdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-resume/resume"
)

// DefaultMaxHTMLBytes guards snapshot size before conversion.
const DefaultMaxHTMLBytes int64 = 8 * 1024 * 1024

// RenderRequest contains the snapshot and options for PDF engines.
type RenderRequest struct {
	HTML    []byte
	Options resume.ExportOptions
}

// Engine renders HTML content into PDF bytes.
type Engine interface {
	Render(ctx context.Context, req RenderRequest) ([]byte, error)
}

// EngineFunc adapts a function to an Engine.
type EngineFunc func(ctx context.Context, req RenderRequest) ([]byte, error)

func (f EngineFunc) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	if f == nil {
		return nil, errors.New("pdf engine func is nil")
	}
	return f(ctx, req)
}

// Pipeline adapts an Engine to resume.Pipeline.
type Pipeline struct {
	Engine       Engine
	MaxHTMLBytes int64
}

// NewPipeline creates a pipeline for the engine.
func NewPipeline(engine Engine) Pipeline {
	return Pipeline{Engine: engine}
}

// Export renders the snapshot and reports the page count of the output.
func (p Pipeline) Export(ctx context.Context, req resume.PipelineRequest) (resume.PipelineResult, error) {
	if p.Engine == nil {
		return resume.PipelineResult{}, resume.NewError(resume.KindValidation, "pdf pipeline requires engine", nil)
	}
	maxBytes := p.MaxHTMLBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxHTMLBytes
	}
	if int64(len(req.HTML)) > maxBytes {
		return resume.PipelineResult{}, resume.NewError(resume.KindValidation,
			fmt.Sprintf("pdf pipeline max html bytes exceeded (%d > %d)", len(req.HTML), maxBytes), nil)
	}

	data, err := p.Engine.Render(ctx, RenderRequest{HTML: req.HTML, Options: req.Options.WithDefaults()})
	if err != nil {
		return resume.PipelineResult{}, err
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return resume.PipelineResult{}, resume.NewError(resume.KindExport, "pdf engine returned no document", nil)
	}

	// Page counting is best effort; some producers write structures the reader rejects.
	pages, _ := PageCount(data)
	return resume.PipelineResult{Data: data, Pages: pages}, nil
}
