package resume

import (
	"context"
	"time"
)

// ErrorFragment is written into the root region when the document cannot be loaded.
const ErrorFragment = `<div class="p-8 text-center text-red-500">` +
	`<h2 class="text-xl font-bold">Error Loading Data</h2>` +
	`<p>Could not load &#39;resume_data.json&#39;. Please ensure you are running this on a local server.</p>` +
	`</div>`

// Loader fetches the document once and renders it into a page.
type Loader struct {
	Source   Source
	Renderer ViewRenderer
	Logger   Logger
	MaxBytes int64
}

// LoadResult reports the outcome of a load. Err is set when the error
// fragment was rendered instead of the document.
type LoadResult struct {
	Document Document
	Err      error
	Duration time.Duration
}

// OK reports whether the document was rendered.
func (r LoadResult) OK() bool {
	return r.Err == nil
}

// NewLoader creates a loader for the source.
func NewLoader(source Source) *Loader {
	return &Loader{Source: source, Logger: NopLogger{}}
}

// Fetch retrieves and parses the document without touching any page.
func (l *Loader) Fetch(ctx context.Context) (Document, error) {
	if l == nil || l.Source == nil {
		return Document{}, NewError(KindValidation, "loader requires a source", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	body, err := l.Source.Fetch(ctx)
	if err != nil {
		if KindFromError(err) == KindInternal {
			err = NewError(KindFetch, "fetch document", err)
		}
		return Document{}, err
	}
	if body == nil {
		return Document{}, NewError(KindFetch, "source returned no body", nil)
	}
	defer body.Close()

	return DecodeDocument(body, l.MaxBytes)
}

// Load fetches the document and renders it into the page. Any failure is
// logged and replaced by ErrorFragment in the root region; it is never
// returned as an error and there is no retry.
func (l *Loader) Load(ctx context.Context, page *Page) LoadResult {
	started := time.Now()
	logger := l.logger()

	doc, err := l.Fetch(ctx)
	if err == nil {
		err = l.Renderer.Render(page, doc)
	}
	if err != nil {
		logger.Errorf("error fetching resume data: %v", err)
		if page != nil {
			if ferr := page.SetInnerHTML(RegionRoot, ErrorFragment); ferr != nil {
				logger.Errorf("render error fragment: %v", ferr)
			}
		}
		return LoadResult{Err: err, Duration: time.Since(started)}
	}

	logger.Infof("resume rendered: %d contact, %d experience, %d projects",
		len(doc.Contact), len(doc.Experience), len(doc.Projects))
	return LoadResult{Document: doc, Duration: time.Since(started)}
}

func (l *Loader) logger() Logger {
	if l == nil || l.Logger == nil {
		return NopLogger{}
	}
	return l.Logger
}
