// Package resumetemplate renders the page shell that holds the résumé
// regions, the root region and the export button.
//
// Renderer executes a TemplateExecutor by name (default "resume"). Two
// executors are provided: PongoExecutor for Django/Pongo2-style templates
// (the embedded default shell is one) and any *html/template.Template, which
// already satisfies TemplateExecutor. RenderPage parses the output into a
// resume.Page and rejects shells that lack a region the view renderer writes.
package resumetemplate
