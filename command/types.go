package command

import (
	"strings"

	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-resume/resume"
)

// LoadResume fetches the document and renders it into the page.
type LoadResume struct {
	// Strict fails the command when recommended fields are missing.
	Strict bool
	Result *resume.LoadResult
}

func (LoadResume) Type() string { return "resume:load" }

func (LoadResume) Validate() error { return nil }

// ExportResume exports the rendered page to a PDF.
type ExportResume struct {
	// Filename overrides the configured download name when set.
	Filename string
	Result   *resume.ExportResult
}

func (ExportResume) Type() string { return "resume:export" }

func (msg ExportResume) Validate() error {
	if strings.TrimSpace(msg.Filename) == "" {
		return nil
	}
	if _, err := resume.NormalizeFilename(msg.Filename); err != nil {
		return errors.New("filename is invalid", errors.CategoryValidation).
			WithTextCode("FILENAME_INVALID")
	}
	return nil
}
