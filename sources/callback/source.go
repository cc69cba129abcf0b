package resumecallback

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/goliatone/go-resume/resume"
)

// FetchFunc returns the raw JSON resource.
type FetchFunc func(ctx context.Context) (io.ReadCloser, error)

// Source wraps a callback function as a resume.Source.
type Source struct {
	fn FetchFunc
}

var _ resume.Source = (*Source)(nil)

// NewSource creates a callback-based Source.
func NewSource(fn FetchFunc) *Source {
	return &Source{fn: fn}
}

// Fetch delegates to the configured callback.
func (s *Source) Fetch(ctx context.Context) (io.ReadCloser, error) {
	if s == nil || s.fn == nil {
		return nil, resume.NewError(resume.KindValidation, "callback source requires a function", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fn(ctx)
}

// DocumentFunc builds a document in process.
type DocumentFunc func(ctx context.Context) (resume.Document, error)

// FromDocument encodes the callback's document as JSON on every fetch, so the
// loader parses it the same way it parses a remote resource.
func FromDocument(fn DocumentFunc) *Source {
	return NewSource(func(ctx context.Context) (io.ReadCloser, error) {
		if fn == nil {
			return nil, resume.NewError(resume.KindValidation, "document callback is nil", nil)
		}
		doc, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(doc)
		if err != nil {
			return nil, resume.NewError(resume.KindInternal, "encode document", err)
		}
		return io.NopCloser(bytes.NewReader(payload)), nil
	})
}

// Static serves the same payload on every fetch.
func Static(payload []byte) *Source {
	data := append([]byte(nil), payload...)
	return NewSource(func(ctx context.Context) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}
