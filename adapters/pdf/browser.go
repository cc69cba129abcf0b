package resumepdf

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Browser is a lazily started headless Chromium shared by the Chromium engines.
type Browser struct {
	Path     string
	Headless bool
	Args     []string

	initOnce      sync.Once
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewBrowser creates a headless browser handle. The process starts on first use.
func NewBrowser(path string, args ...string) *Browser {
	return &Browser{Path: path, Headless: true, Args: args}
}

// Close releases Chromium resources if they have been initialized.
func (b *Browser) Close() error {
	if b == nil {
		return nil
	}
	if b.browserCancel != nil {
		b.browserCancel()
	}
	if b.allocCancel != nil {
		b.allocCancel()
	}
	return nil
}

// tab opens a new tab bound to ctx and the optional timeout.
func (b *Browser) tab(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc, error) {
	if b == nil {
		return nil, nil, errors.New("chromium browser is nil")
	}
	if err := b.ensure(); err != nil {
		return nil, nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tabCtx, cancelTab := chromedp.NewContext(b.browserCtx)
	reqCtx, cancelReq := context.WithCancel(tabCtx)
	go func() {
		select {
		case <-ctx.Done():
			cancelReq()
		case <-reqCtx.Done():
		}
	}()

	execCtx := reqCtx

	cancel := func() {
		cancelReq()
		cancelTab()
	}
	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, timeout)
		inner := cancel
		cancel = func() {
			cancelTimeout()
			inner()
		}
	}
	return execCtx, cancel, nil
}

func (b *Browser) ensure() error {
	b.initOnce.Do(func() {
		options := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		if b.Path != "" {
			options = append(options, chromedp.ExecPath(b.Path))
		}
		options = append(options, chromedp.Flag("headless", b.Headless))
		options = append(options, allocatorOptionsFromArgs(b.Args)...)

		b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(context.Background(), options...)
		b.browserCtx, b.browserCancel = chromedp.NewContext(b.allocCtx)
	})
	if b.allocCtx == nil || b.browserCtx == nil {
		return errors.New("chromium allocator unavailable")
	}
	return nil
}

// externalBlockPatterns matches every http(s) request regardless of host,
// port or path.
func externalBlockPatterns() []*network.BlockPattern {
	return []*network.BlockPattern{
		{URLPattern: "http://*:*/*", Block: true},
		{URLPattern: "https://*:*/*", Block: true},
	}
}

// loadDocument replaces the tab document with the snapshot.
func loadDocument(htmlInput []byte, blockExternal bool) []chromedp.Action {
	var actions []chromedp.Action
	if blockExternal {
		actions = append(actions,
			network.Enable(),
			network.SetBlockedURLs().WithURLPatterns(externalBlockPatterns()),
		)
	}
	return append(actions,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(htmlInput)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func allocatorOptionsFromArgs(args []string) []chromedp.ExecAllocatorOption {
	options := make([]chromedp.ExecAllocatorOption, 0, len(args))
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		arg = strings.TrimPrefix(arg, "--")
		if arg == "" {
			continue
		}
		if name, value, ok := strings.Cut(arg, "="); ok {
			options = append(options, chromedp.Flag(name, value))
			continue
		}
		options = append(options, chromedp.Flag(arg, true))
	}
	return options
}
