// Package resumepdf provides export pipelines that turn a rendered résumé
// snapshot into a PDF.
//
// Pipeline wraps an Engine and inspects the produced document. Engines:
//
//   - PrintEngine prints the snapshot through headless Chromium (vector output,
//     CSS page breaks handled by the browser).
//   - RasterEngine lays the snapshot out at a fixed width, applies the css and
//     legacy page-break modes, captures a JPEG at the configured scale and
//     quality and assembles one image per page.
//   - WKHTMLTOPDFEngine shells out to wkhtmltopdf.
//
// Chromium engines share a Browser so one process serves every export.
package resumepdf
