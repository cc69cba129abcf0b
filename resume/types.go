package resume

import (
	"context"
	"io"
	"time"
)

// Document is the parsed résumé data source.
type Document struct {
	Profile    Profile       `json:"profile"`
	Contact    []ContactItem `json:"contact"`
	Education  []Education   `json:"education"`
	Skills     []string      `json:"skills"`
	Summary    string        `json:"summary"`
	Experience []Experience  `json:"experience"`
	Projects   []Project     `json:"projects"`
}

// Profile holds the header fields.
type Profile struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	AvatarURL string `json:"avatarUrl"`
	Initials  string `json:"initials"`
}

// ContactItem is a single contact line. Link is optional.
type ContactItem struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
	Link string `json:"link,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

// Experience is a single job entry. ColorClass and PeriodClass carry styling
// tags for the timeline marker and the period badge.
type Experience struct {
	Role         string   `json:"role"`
	Company      string   `json:"company"`
	Period       string   `json:"period"`
	ColorClass   string   `json:"colorClass"`
	PeriodClass  string   `json:"periodClass"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements"`
}

// Project is a single project card.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Source retrieves the raw JSON document.
type Source interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context) (io.ReadCloser, error)

func (f SourceFunc) Fetch(ctx context.Context) (io.ReadCloser, error) {
	if f == nil {
		return nil, NewError(KindValidation, "source func is nil", nil)
	}
	return f(ctx)
}

// PipelineRequest is the input handed to an export pipeline.
type PipelineRequest struct {
	HTML    []byte
	Options ExportOptions
}

// PipelineResult is the output of an export pipeline.
type PipelineResult struct {
	Data  []byte
	Pages int
}

// Pipeline converts a rendered page snapshot into a downloadable document.
type Pipeline interface {
	Export(ctx context.Context, req PipelineRequest) (PipelineResult, error)
}

// PipelineFunc adapts a function to a Pipeline.
type PipelineFunc func(ctx context.Context, req PipelineRequest) (PipelineResult, error)

func (f PipelineFunc) Export(ctx context.Context, req PipelineRequest) (PipelineResult, error) {
	if f == nil {
		return PipelineResult{}, NewError(KindValidation, "pipeline func is nil", nil)
	}
	return f(ctx, req)
}

// ArtifactMeta captures stored artifact metadata.
type ArtifactMeta struct {
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size,omitempty"`
	Filename    string    `json:"filename,omitempty"`
	Pages       int       `json:"pages,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// ArtifactRef references a stored artifact.
type ArtifactRef struct {
	Key  string
	Meta ArtifactMeta
}

// ArtifactStore stores exported documents.
type ArtifactStore interface {
	Put(ctx context.Context, key string, r io.Reader, meta ArtifactMeta) (ArtifactRef, error)
	Open(ctx context.Context, key string) (io.ReadCloser, ArtifactMeta, error)
	Delete(ctx context.Context, key string) error
}

// Alerter surfaces user-facing failure messages.
type Alerter interface {
	Alert(ctx context.Context, message string)
}

// AlertFunc adapts a function to an Alerter.
type AlertFunc func(ctx context.Context, message string)

func (f AlertFunc) Alert(ctx context.Context, message string) {
	if f != nil {
		f(ctx, message)
	}
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

type nopAlerter struct{}

func (nopAlerter) Alert(context.Context, string) {}
