package resume

import (
	"bytes"
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ExportState is the orchestrator state.
type ExportState int32

const (
	StateIdle ExportState = iota
	StatePreparing
	StateExporting
)

func (s ExportState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreparing:
		return "preparing"
	case StateExporting:
		return "exporting"
	default:
		return "unknown"
	}
}

const (
	// ExportAlertMessage is surfaced to the user when an export fails.
	ExportAlertMessage = "Error generating PDF."
	// BusyButtonHTML replaces the button label while an export runs.
	BusyButtonHTML = `<i class="fas fa-spinner fa-spin"></i> Generating...`
)

// BusyButtonClasses are added to the button while an export runs.
var BusyButtonClasses = []string{"opacity-75", "cursor-not-allowed"}

// ExportResult describes a finished export.
type ExportResult struct {
	ID       string
	Filename string
	Ref      ArtifactRef
	Bytes    int64
	Pages    int
	Duration time.Duration
	// Data holds the document when no store is configured.
	Data []byte
}

// Exporter snapshots the rendered root region and hands it to a Pipeline.
// At most one export runs at a time; re-entrant calls are rejected with
// ErrExportInProgress and are not queued.
type Exporter struct {
	Page     *Page
	Pipeline Pipeline
	Store    ArtifactStore
	Options  ExportOptions
	Alerter  Alerter
	Logger   Logger
	Timeout  time.Duration
	NewID    func() string

	state atomic.Int32
}

// NewExporter creates an exporter with default options.
func NewExporter(page *Page, pipeline Pipeline) *Exporter {
	return &Exporter{
		Page:     page,
		Pipeline: pipeline,
		Options:  DefaultExportOptions(),
		Alerter:  nopAlerter{},
		Logger:   NopLogger{},
	}
}

// State returns the current orchestrator state.
func (e *Exporter) State() ExportState {
	return ExportState(e.state.Load())
}

// Export runs one export with the configured options. The page is switched
// into its print layout for the duration of the pipeline call and restored on
// every exit path.
func (e *Exporter) Export(ctx context.Context) (ExportResult, error) {
	if e == nil {
		return ExportResult{}, NewError(KindInternal, "exporter is nil", nil)
	}
	return e.ExportWith(ctx, e.Options)
}

// ExportWith runs one export with options in place of the configured ones.
// Zero fields fall back to DefaultExportOptions.
func (e *Exporter) ExportWith(ctx context.Context, options ExportOptions) (ExportResult, error) {
	if e == nil {
		return ExportResult{}, NewError(KindInternal, "exporter is nil", nil)
	}
	if e.Page == nil || e.Pipeline == nil {
		return ExportResult{}, NewError(KindValidation, "exporter requires a page and a pipeline", nil)
	}
	if !e.state.CompareAndSwap(int32(StateIdle), int32(StatePreparing)) {
		e.logger().Debugf("export ignored: %s in progress", e.State())
		return ExportResult{}, ErrExportInProgress
	}
	defer e.state.Store(int32(StateIdle))

	if ctx == nil {
		ctx = context.Background()
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	opts := options.WithDefaults()
	filename, err := NormalizeFilename(opts.Filename)
	if err != nil {
		return ExportResult{}, err
	}
	opts.Filename = filename
	if err := opts.Validate(); err != nil {
		return ExportResult{}, err
	}

	started := time.Now()
	id := e.newID()

	release, err := e.prepare(opts)
	if err != nil {
		return ExportResult{}, e.fail(ctx, id, err)
	}
	defer release()

	e.state.Store(int32(StateExporting))
	e.logger().Debugf("export %s: rendering %q", id, opts.Filename)

	snapshot, err := e.Page.Snapshot(RegionRoot)
	if err != nil {
		release()
		return ExportResult{}, e.fail(ctx, id, err)
	}

	out, err := e.Pipeline.Export(ctx, PipelineRequest{HTML: snapshot, Options: opts})
	release()
	if err != nil {
		return ExportResult{}, e.fail(ctx, id, err)
	}

	result := ExportResult{
		ID:       id,
		Filename: opts.Filename,
		Bytes:    int64(len(out.Data)),
		Pages:    out.Pages,
	}

	if e.Store != nil {
		ref, err := e.Store.Put(ctx, id+"/"+opts.Filename, bytes.NewReader(out.Data), ArtifactMeta{
			ContentType: "application/pdf",
			Filename:    opts.Filename,
			Pages:       out.Pages,
		})
		if err != nil {
			return ExportResult{}, e.fail(ctx, id, err)
		}
		result.Ref = ref
	} else {
		result.Data = out.Data
	}

	result.Duration = time.Since(started)
	e.logger().Infof("export %s: wrote %q (%d bytes, %d pages) in %s",
		id, result.Filename, result.Bytes, result.Pages, result.Duration)
	return result, nil
}

// prepare applies the print layout and returns its release func. Release
// undoes only what prepare changed and may be called more than once.
func (e *Exporter) prepare(opts ExportOptions) (func(), error) {
	var undo []func()
	release := func() {
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
		undo = nil
	}

	if !e.Page.Has(RegionRoot) {
		return release, NewError(KindNotFound, "export target "+RegionRoot+" not found", nil)
	}

	removeStyle, err := e.Page.InjectStyle(PrintStyleID, opts.PrintStyles)
	if err != nil {
		return release, err
	}
	undo = append(undo, removeStyle)

	if e.Page.Has(ExportButton) {
		undo = append(undo, e.busyButton())
	}

	if !e.Page.HasClass(RegionRoot, CaptureClass) {
		if err := e.Page.AddClass(RegionRoot, CaptureClass); err != nil {
			release()
			return func() {}, err
		}
		undo = append(undo, func() {
			_ = e.Page.RemoveClass(RegionRoot, CaptureClass)
		})
	}

	return release, nil
}

func (e *Exporter) busyButton() func() {
	page := e.Page
	label, _ := page.InnerHTML(ExportButton)
	_, wasDisabled := page.Attr(ExportButton, "disabled")

	var added []string
	for _, class := range BusyButtonClasses {
		if !page.HasClass(ExportButton, class) {
			added = append(added, class)
		}
	}

	_ = page.SetInnerHTML(ExportButton, BusyButtonHTML)
	_ = page.SetAttr(ExportButton, "disabled", "")
	_ = page.AddClass(ExportButton, added...)

	return func() {
		_ = page.SetInnerHTML(ExportButton, label)
		if !wasDisabled {
			_ = page.RemoveAttr(ExportButton, "disabled")
		}
		if len(added) > 0 {
			_ = page.RemoveClass(ExportButton, added...)
		}
	}
}

func (e *Exporter) fail(ctx context.Context, id string, err error) error {
	e.logger().Errorf("export %s failed: %v", id, err)
	e.alerter().Alert(ctx, ExportAlertMessage)
	if KindFromError(err) == KindInternal {
		return NewError(KindExport, "export failed", err)
	}
	return err
}

func (e *Exporter) newID() string {
	if e.NewID != nil {
		if id := e.NewID(); id != "" {
			return id
		}
	}
	return uuid.NewString()
}

func (e *Exporter) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

func (e *Exporter) alerter() Alerter {
	if e.Alerter == nil {
		return nopAlerter{}
	}
	return e.Alerter
}
