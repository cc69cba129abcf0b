package httpsource

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-resume/resume"
)

func TestSource_URL(t *testing.T) {
	source := NewSource("https://example.test/cv")
	got, err := source.URL(time.UnixMilli(1700000000123))
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if want := "https://example.test/cv/resume_data.json?t=1700000000123"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if _, err := NewSource("ftp://example.test").URL(time.Now()); resume.KindFromError(err) != resume.KindValidation {
		t.Fatalf("expected validation error for scheme, got %v", err)
	}
	if _, err := NewSource("").URL(time.Now()); resume.KindFromError(err) != resume.KindValidation {
		t.Fatalf("expected validation error for empty base, got %v", err)
	}
}

func TestSource_FetchSendsFreshToken(t *testing.T) {
	var mu sync.Mutex
	var tokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resume_data.json" {
			http.NotFound(w, r)
			return
		}
		mu.Lock()
		tokens = append(tokens, r.URL.Query().Get(CacheBustParam))
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"profile":{"name":"Ada","title":"Engineer"}}`)
	}))
	defer server.Close()

	tick := time.UnixMilli(1000)
	source := NewSource(server.URL)
	source.Clock = func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}
	loader := resume.NewLoader(source)

	for i := 0; i < 2; i++ {
		doc, err := loader.Fetch(context.Background())
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if doc.Profile.Name != "Ada" {
			t.Fatalf("unexpected document %+v", doc.Profile)
		}
	}

	if len(tokens) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(tokens))
	}
	if tokens[0] == "" || tokens[0] == tokens[1] {
		t.Fatalf("expected distinct tokens, got %q", tokens)
	}
}

func TestSource_FetchStatusFailures(t *testing.T) {
	tests := []struct {
		status int
		kind   resume.ErrorKind
	}{
		{status: http.StatusInternalServerError, kind: resume.KindFetch},
		{status: http.StatusForbidden, kind: resume.KindFetch},
		{status: http.StatusNotFound, kind: resume.KindNotFound},
	}

	for _, tc := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		_, err := NewSource(server.URL).Fetch(context.Background())
		server.Close()
		if resume.KindFromError(err) != tc.kind {
			t.Fatalf("status %d: expected %s, got %v", tc.status, tc.kind, err)
		}
	}
}

func TestSource_FetchNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	_, err := NewSource(addr).Fetch(context.Background())
	if resume.KindFromError(err) != resume.KindFetch {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestSource_FetchHonorsContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := NewSource(server.URL).Fetch(ctx)
	if resume.KindFromError(err) != resume.KindTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestLoader_HTTPFailureShowsErrorFragment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	page, err := resume.NewPageFromString(`<html><body><div id="resume-content"><p>old</p></div></body></html>`)
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	result := resume.NewLoader(NewSource(server.URL)).Load(context.Background(), page)
	if result.OK() {
		t.Fatalf("expected load failure")
	}
	inner, err := page.InnerHTML(resume.RegionRoot)
	if err != nil {
		t.Fatalf("inner: %v", err)
	}
	if inner != resume.ErrorFragment {
		t.Fatalf("expected error fragment, got %q", inner)
	}
}
