// Package render turns a report snapshot into a single self-contained HTML
// document. Stylesheet and script are embedded in the binary and inlined into
// every document, so reports open without network access.
//
// Rendering is a pure function of its input:
//
//	var buf bytes.Buffer
//	err := render.Render(&buf, render.Document{Title: "Import", ...})
package render
