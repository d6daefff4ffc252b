package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"
)

// Entry categories known to the filter panel. WARNING has a filter and a style
// but nothing produces it.
const (
	CategoryInfo    = "INFO"
	CategoryDebug   = "DEBUG"
	CategoryWarning = "WARNING"
	CategoryError   = "ERROR"
)

//go:embed assets/report.html.tmpl assets/report.css assets/report.js
var assets embed.FS

var (
	categories       = []string{CategoryInfo, CategoryDebug, CategoryWarning, CategoryError}
	refreshIntervals = []int{0, 5, 10, 20, 30}

	reportTemplate = template.Must(template.ParseFS(assets, "assets/report.html.tmpl"))
	reportCSS      = template.CSS(mustRead("assets/report.css"))
	reportJS       = template.JS(mustRead("assets/report.js"))
)

// Document is the read-only view rendered into a report. Timestamps are
// already formatted by the caller.
type Document struct {
	Title       string
	Description string
	RunID       string
	Start       string
	End         string
	Sections    []Section
}

// Section is one block of the report body.
type Section struct {
	Key     string
	Name    string
	Start   string
	End     string
	Elapsed string // empty while the section is open
	Entries []Entry
}

// Entry is one log line.
type Entry struct {
	Type     string
	DateTime string
	Value    string
}

type page struct {
	Document
	Categories       []string
	RefreshIntervals []int
	CSS              template.CSS
	JS               template.JS
}

// Render writes doc as HTML to w.
func Render(w io.Writer, doc Document) error {
	p := page{
		Document:         doc,
		Categories:       categories,
		RefreshIntervals: refreshIntervals,
		CSS:              reportCSS,
		JS:               reportJS,
	}
	if err := reportTemplate.Execute(w, p); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Categories returns the entry categories offered by the filter panel, in
// display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// Millis formats d as whole milliseconds.
func Millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

func mustRead(name string) string {
	data, err := assets.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(data)
}
