// Package resume renders a résumé page from a JSON document and exports the
// rendered page to PDF through a pluggable pipeline.
//
// The page is a server-side HTML tree (see Page) holding named display regions.
// Loader fetches and parses the Document, ViewRenderer maps it into structured
// fragments for each region, and Exporter snapshots the rendered root region and
// hands it to a Pipeline (see the adapters/pdf package) while temporarily
// switching the page into its print layout.
package resume
