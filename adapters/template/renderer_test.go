package resumetemplate

import (
	"bytes"
	"context"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-resume/resume"
)

func TestRenderer_MissingTemplates(t *testing.T) {
	_, err := Renderer{}.Render(context.Background(), &bytes.Buffer{}, ShellData{})
	if resume.KindFromError(err) != resume.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRenderer_DefaultShell(t *testing.T) {
	exec, err := NewPongoExecutor()
	if err != nil {
		t.Fatalf("executor: %v", err)
	}
	renderer := Renderer{Templates: exec}

	buf := &bytes.Buffer{}
	n, err := renderer.Render(context.Background(), buf, ShellData{
		Title:       "Ada Lovelace",
		Stylesheets: []string{"https://cdn.example.com/fa.css"},
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if int64(len(out)) != n {
		t.Fatalf("expected %d bytes reported, got %d", len(out), n)
	}
	for _, want := range []string{
		"<title>Ada Lovelace</title>",
		`<link rel="stylesheet" href="https://cdn.example.com/fa.css">`,
		"--color-primary: #2563eb;",
		"--color-light: #f8fafc;",
		"Download PDF",
		"generated 2024-01-02T03:04:05Z",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderer_EscapesTitle(t *testing.T) {
	exec, err := NewPongoExecutor()
	if err != nil {
		t.Fatalf("executor: %v", err)
	}
	buf := &bytes.Buffer{}
	if _, err := (Renderer{Templates: exec}).Render(context.Background(), buf, ShellData{Title: "<script>x</script>"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(buf.String(), "<script>x</script>") {
		t.Fatalf("expected title to be escaped")
	}
}

func TestRenderer_RenderPageHasRegions(t *testing.T) {
	exec, err := NewPongoExecutor()
	if err != nil {
		t.Fatalf("executor: %v", err)
	}
	page, err := Renderer{Templates: exec}.RenderPage(context.Background(), ShellData{})
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if missing := page.Missing(resume.Regions...); len(missing) != 0 {
		t.Fatalf("unexpected missing regions: %v", missing)
	}
	if !page.Has(resume.ExportButton) || !page.Has(resume.RegionRoot) {
		t.Fatalf("expected export button and root region")
	}
}

func TestRenderer_RenderPageMissingRegion(t *testing.T) {
	tmpl := template.Must(template.New("resume").Parse(`<html><body><div id="resume-content">{{.Title}}</div></body></html>`))
	_, err := Renderer{Templates: tmpl}.RenderPage(context.Background(), ShellData{Title: "x"})
	if resume.KindFromError(err) != resume.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), resume.RegionContact) {
		t.Fatalf("expected missing region in error, got %v", err)
	}
}

func TestRenderer_HTMLTemplateExecutor(t *testing.T) {
	tmpl := template.Must(template.New("custom").Parse(`<p style="color: {{.Theme.Primary}}">{{.ButtonLabel}}</p>`))
	buf := &bytes.Buffer{}
	_, err := Renderer{Templates: tmpl, TemplateName: "custom"}.Render(context.Background(), buf, ShellData{ButtonLabel: "Save"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := buf.String(); got != `<p style="color: #2563eb">Save</p>` {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestRenderer_MaxBytes(t *testing.T) {
	exec, err := NewPongoExecutor()
	if err != nil {
		t.Fatalf("executor: %v", err)
	}
	_, err = Renderer{Templates: exec, MaxBytes: 16}.Render(context.Background(), &bytes.Buffer{}, ShellData{})
	if err == nil {
		t.Fatalf("expected max bytes error")
	}
}

func TestPongoExecutor_UnknownTemplate(t *testing.T) {
	exec, err := NewPongoExecutor()
	if err != nil {
		t.Fatalf("executor: %v", err)
	}
	err = exec.ExecuteTemplate(&bytes.Buffer{}, "missing", nil)
	if resume.KindFromError(err) != resume.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPongoExecutor_Register(t *testing.T) {
	exec := &PongoExecutor{}
	if err := exec.Register("hello", "Hello {{ name }}"); err != nil {
		t.Fatalf("register: %v", err)
	}
	buf := &bytes.Buffer{}
	if err := exec.ExecuteTemplate(buf, "hello", map[string]any{"name": "Ada"}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if buf.String() != "Hello Ada" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if err := exec.Register("broken", "{% if %}"); resume.KindFromError(err) != resume.KindParse {
		t.Fatalf("expected parse error, got %v", err)
	}
}
