package resumepdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-resume/resume"
)

// WKHTMLTOPDFEngine invokes wkhtmltopdf for HTML-to-PDF conversion.
type WKHTMLTOPDFEngine struct {
	Command string
	Args    []string
	Env     []string
	Timeout time.Duration
}

// Render executes wkhtmltopdf using stdin/stdout for HTML/PDF.
func (e WKHTMLTOPDFEngine) Render(ctx context.Context, req RenderRequest) ([]byte, error) {
	cmdPath := strings.TrimSpace(e.Command)
	if cmdPath == "" {
		cmdPath = "wkhtmltopdf"
	}
	if ctx == nil {
		ctx = context.Background()
	}
	args, err := wkhtmltopdfArgs(req.Options)
	if err != nil {
		return nil, err
	}

	cmdCtx := ctx
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		cmdCtx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	args = append(args, e.Args...)
	args = append(args, "-", "-")
	cmd := exec.CommandContext(cmdCtx, cmdPath, args...)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}
	cmd.Stdin = bytes.NewReader(req.HTML)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if message == "" {
			message = "wkhtmltopdf failed"
		}
		return nil, resume.NewError(resume.KindExport, message, err)
	}
	return stdout.Bytes(), nil
}

func wkhtmltopdfArgs(opts resume.ExportOptions) ([]string, error) {
	layout, err := resolveLayout(opts)
	if err != nil {
		return nil, err
	}
	margin := strconv.FormatFloat(layout.marginIn, 'f', -1, 64) + "in"
	orientation := "Portrait"
	if opts.Landscape {
		orientation = "Landscape"
	}
	return []string{
		"--quiet",
		"--page-size", layout.paper.name,
		"--orientation", orientation,
		"--margin-top", margin,
		"--margin-bottom", margin,
		"--margin-left", margin,
		"--margin-right", margin,
		"--image-quality", fmt.Sprint(jpegQuality(opts.Image.Quality)),
		"--viewport-size", fmt.Sprintf("%dx%d", layout.captureWidth, layout.pageHeightCSS()),
		"--title", opts.Filename,
	}, nil
}
