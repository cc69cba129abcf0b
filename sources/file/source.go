package filesource

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-resume/resume"
)

// Source reads the résumé JSON from a file. When FS is set the path is
// resolved inside it, otherwise against the host filesystem.
type Source struct {
	Path string
	FS   fs.FS
}

var _ resume.Source = (*Source)(nil)

// NewSource creates a source for a path on the host filesystem.
func NewSource(path string) *Source {
	return &Source{Path: path}
}

// NewFSSource creates a source for a path inside fsys.
func NewFSSource(fsys fs.FS, path string) *Source {
	return &Source{Path: path, FS: fsys}
}

// Fetch opens the file. A missing file is a not-found failure.
func (s *Source) Fetch(ctx context.Context) (io.ReadCloser, error) {
	if s == nil || strings.TrimSpace(s.Path) == "" {
		return nil, resume.NewError(resume.KindValidation, "file source requires a path", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		file io.ReadCloser
		err  error
	)
	if s.FS != nil {
		file, err = s.FS.Open(s.Path)
	} else {
		file, err = os.Open(s.Path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, resume.NewError(resume.KindNotFound, fmt.Sprintf("resume data %q not found", s.Path), err)
		}
		return nil, resume.NewError(resume.KindFetch, fmt.Sprintf("open resume data %q", s.Path), err)
	}
	return file, nil
}
