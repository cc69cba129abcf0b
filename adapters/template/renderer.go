package resumetemplate

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-resume/resume"
)

// DefaultMaxShellBytes bounds rendered shell output.
const DefaultMaxShellBytes int64 = 2 * 1024 * 1024

// TemplateExecutor executes a named template with data.
type TemplateExecutor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

// Theme holds the palette exposed to the shell as CSS variables.
type Theme struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
	Dark      string `json:"dark" yaml:"dark"`
	Light     string `json:"light" yaml:"light"`
}

// DefaultTheme is the blue/slate palette of the stock page.
func DefaultTheme() Theme {
	return Theme{
		Primary:   "#2563eb",
		Secondary: "#1e40af",
		Dark:      "#0f172a",
		Light:     "#f8fafc",
	}
}

// ShellData is the context passed to shell templates.
type ShellData struct {
	Title       string    `json:"title,omitempty"`
	Lang        string    `json:"lang,omitempty"`
	ButtonLabel string    `json:"button_label,omitempty"`
	Stylesheets []string  `json:"stylesheets,omitempty"`
	Scripts     []string  `json:"scripts,omitempty"`
	Theme       Theme     `json:"theme"`
	GeneratedAt time.Time `json:"generated_at,omitempty"`
}

func (d ShellData) withDefaults() ShellData {
	if strings.TrimSpace(d.Title) == "" {
		d.Title = "Resume"
	}
	if strings.TrimSpace(d.ButtonLabel) == "" {
		d.ButtonLabel = "Download PDF"
	}
	theme := DefaultTheme()
	if d.Theme.Primary == "" {
		d.Theme.Primary = theme.Primary
	}
	if d.Theme.Secondary == "" {
		d.Theme.Secondary = theme.Secondary
	}
	if d.Theme.Dark == "" {
		d.Theme.Dark = theme.Dark
	}
	if d.Theme.Light == "" {
		d.Theme.Light = theme.Light
	}
	return d
}

// Context exposes the data with snake_case keys for pongo2 templates.
func (d ShellData) Context() pongo2.Context {
	ctx := pongo2.Context{
		"title":        d.Title,
		"lang":         d.Lang,
		"button_label": d.ButtonLabel,
		"stylesheets":  d.Stylesheets,
		"scripts":      d.Scripts,
		"theme": map[string]string{
			"primary":   d.Theme.Primary,
			"secondary": d.Theme.Secondary,
			"dark":      d.Theme.Dark,
			"light":     d.Theme.Light,
		},
	}
	if !d.GeneratedAt.IsZero() {
		ctx["generated"] = d.GeneratedAt.Format(time.RFC3339)
	}
	return ctx
}

// Renderer renders page shells.
type Renderer struct {
	Templates    TemplateExecutor
	TemplateName string
	MaxBytes     int64
}

// Render executes the shell template into w and returns the bytes written.
func (r Renderer) Render(ctx context.Context, w io.Writer, data ShellData) (int64, error) {
	if r.Templates == nil {
		return 0, resume.NewError(resume.KindValidation, "shell renderer requires templates", nil)
	}
	if w == nil {
		return 0, resume.NewError(resume.KindValidation, "shell renderer requires writer", nil)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	name := r.TemplateName
	if name == "" {
		name = DefaultTemplateName
	}
	maxBytes := r.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxShellBytes
	}

	cw := &countingWriter{w: w, limit: maxBytes}
	if err := r.Templates.ExecuteTemplate(cw, name, data.withDefaults()); err != nil {
		if resume.KindFromError(err) != resume.KindInternal {
			return cw.count, err
		}
		return cw.count, resume.NewError(resume.KindInternal, "execute shell template", err)
	}
	return cw.count, nil
}

// RenderPage renders the shell and parses it into a Page holding every
// region the view renderer and the exporter need.
func (r Renderer) RenderPage(ctx context.Context, data ShellData) (*resume.Page, error) {
	var buf bytes.Buffer
	if _, err := r.Render(ctx, &buf, data); err != nil {
		return nil, err
	}
	page, err := resume.NewPage(&buf)
	if err != nil {
		return nil, err
	}

	required := append([]string{resume.RegionRoot, resume.ExportButton}, resume.Regions...)
	if missing := page.Missing(required...); len(missing) > 0 {
		return nil, resume.NewError(resume.KindValidation, "page shell is missing regions: "+strings.Join(missing, ", "), nil)
	}
	return page, nil
}

type countingWriter struct {
	w     io.Writer
	count int64
	limit int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	if cw.limit > 0 && cw.count+int64(len(p)) > cw.limit {
		return 0, resume.NewError(resume.KindValidation, "shell renderer max bytes exceeded", nil)
	}
	n, err := cw.w.Write(p)
	cw.count += int64(n)
	return n, err
}
