package resumetemplate

import (
	"embed"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-resume/resume"
)

// DefaultTemplateName names the embedded page shell.
const DefaultTemplateName = "resume"

//go:embed shell/*.html
var shellFS embed.FS

// PongoExecutor executes pongo2 templates registered by name.
type PongoExecutor struct {
	mu        sync.RWMutex
	templates map[string]*pongo2.Template
}

var _ TemplateExecutor = (*PongoExecutor)(nil)

// NewPongoExecutor returns an executor preloaded with the embedded shell.
func NewPongoExecutor() (*PongoExecutor, error) {
	exec := &PongoExecutor{templates: map[string]*pongo2.Template{}}
	raw, err := shellFS.ReadFile(path.Join("shell", DefaultTemplateName+".html"))
	if err != nil {
		return nil, resume.NewError(resume.KindInternal, "read embedded shell", err)
	}
	if err := exec.Register(DefaultTemplateName, string(raw)); err != nil {
		return nil, err
	}
	return exec, nil
}

// Register compiles src and stores it under name, replacing any previous one.
func (e *PongoExecutor) Register(name, src string) error {
	tpl, err := pongo2.FromString(src)
	if err != nil {
		return resume.NewError(resume.KindParse, fmt.Sprintf("compile template %q", name), err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.templates == nil {
		e.templates = map[string]*pongo2.Template{}
	}
	e.templates[name] = tpl
	return nil
}

// RegisterFile compiles the template at filename and stores it under name.
func (e *PongoExecutor) RegisterFile(name, filename string) error {
	tpl, err := pongo2.FromFile(filename)
	if err != nil {
		return resume.NewError(resume.KindParse, fmt.Sprintf("compile template file %q", filename), err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.templates == nil {
		e.templates = map[string]*pongo2.Template{}
	}
	e.templates[name] = tpl
	return nil
}

// ExecuteTemplate renders the named template. data must be a ShellData, a
// pongo2.Context or a map[string]any.
func (e *PongoExecutor) ExecuteTemplate(w io.Writer, name string, data any) error {
	e.mu.RLock()
	tpl, ok := e.templates[name]
	e.mu.RUnlock()
	if !ok {
		return resume.NewError(resume.KindNotFound, fmt.Sprintf("template %q not registered", name), nil)
	}

	var ctx pongo2.Context
	switch v := data.(type) {
	case ShellData:
		ctx = v.Context()
	case *ShellData:
		ctx = v.Context()
	case pongo2.Context:
		ctx = v
	case map[string]any:
		ctx = pongo2.Context(v)
	case nil:
		ctx = pongo2.Context{}
	default:
		return resume.NewError(resume.KindValidation, fmt.Sprintf("unsupported template data %T", data), nil)
	}
	return tpl.ExecuteWriter(ctx, w)
}
