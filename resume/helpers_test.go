package resume

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func loadTestPage(t *testing.T) *Page {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("testdata", "page.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	page, err := NewPage(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return page
}

func loadTestDocument(t *testing.T) Document {
	t.Helper()
	file, err := os.Open(filepath.Join("testdata", "resume_data.json"))
	if err != nil {
		t.Fatalf("open document: %v", err)
	}
	defer file.Close()
	doc, err := DecodeDocument(file, 0)
	if err != nil {
		t.Fatalf("decode document: %v", err)
	}
	return doc
}

func fileSource(path string) Source {
	return SourceFunc(func(ctx context.Context) (io.ReadCloser, error) {
		_ = ctx
		return os.Open(path)
	})
}

type recordingLogger struct {
	errors []string
	infos  []string
}

func (l *recordingLogger) Debugf(string, ...any) {}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.infos = append(l.infos, format)
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, format)
}

func regionMarkup(t *testing.T, page *Page) map[string]string {
	t.Helper()
	out := make(map[string]string, len(Regions))
	for _, id := range Regions {
		markup, err := page.InnerHTML(id)
		if err != nil {
			t.Fatalf("inner html %s: %v", id, err)
		}
		if id == RegionProfileAvatar {
			markup, _ = page.Attr(id, "src")
		}
		out[id] = markup
	}
	return out
}
