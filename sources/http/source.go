package httpsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-resume/resume"
)

const (
	// DefaultResource is the JSON resource fetched relative to the base URL.
	DefaultResource = "resume_data.json"
	// CacheBustParam carries the per-request token.
	CacheBustParam = "t"
	// DefaultTimeout bounds a single fetch when the client has none.
	DefaultTimeout = 15 * time.Second
)

// Clock returns the current time.
type Clock func() time.Time

// Source fetches the résumé JSON over HTTP. Every request carries a fresh
// cache-busting token so intermediaries never serve a stale document.
type Source struct {
	BaseURL  string
	Resource string
	Client   *http.Client
	Clock    Clock
	Header   http.Header
}

var _ resume.Source = (*Source)(nil)

// NewSource creates a source rooted at baseURL.
func NewSource(baseURL string) *Source {
	return &Source{BaseURL: baseURL}
}

// URL returns the request URL for the given instant.
func (s *Source) URL(now time.Time) (string, error) {
	if s == nil || strings.TrimSpace(s.BaseURL) == "" {
		return "", resume.NewError(resume.KindValidation, "http source requires a base url", nil)
	}
	base, err := url.Parse(strings.TrimSpace(s.BaseURL))
	if err != nil {
		return "", resume.NewError(resume.KindValidation, "invalid base url", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return "", resume.NewError(resume.KindValidation, fmt.Sprintf("unsupported url scheme %q", base.Scheme), nil)
	}

	resource := s.Resource
	if resource == "" {
		resource = DefaultResource
	}
	ref, err := url.Parse(resource)
	if err != nil {
		return "", resume.NewError(resume.KindValidation, "invalid resource path", err)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	target := base.ResolveReference(ref)

	query := target.Query()
	query.Set(CacheBustParam, strconv.FormatInt(now.UnixMilli(), 10))
	target.RawQuery = query.Encode()
	return target.String(), nil
}

// Fetch performs the GET request. Non-2xx responses are fetch failures.
func (s *Source) Fetch(ctx context.Context) (io.ReadCloser, error) {
	target, err := s.URL(s.now())
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, resume.NewError(resume.KindValidation, "build request", err)
	}
	for key, values := range s.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.client().Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, resume.NewError(resume.KindFetch, "request resume data", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		kind := resume.KindFetch
		if resp.StatusCode == http.StatusNotFound {
			kind = resume.KindNotFound
		}
		return nil, resume.NewError(kind, fmt.Sprintf("resume data request failed: %s", resp.Status), nil)
	}
	return resp.Body, nil
}

func (s *Source) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: DefaultTimeout}
}

func (s *Source) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
