package htmllog

import (
	"io"
	"time"

	"github.com/angeloszaimis/htmllog/internal/dateformat"
	"github.com/angeloszaimis/htmllog/internal/render"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return dateformat.Entry(t)
}

// document maps a snapshot onto the renderer's view.
func document(s Snapshot) render.Document {
	doc := render.Document{
		Title:       s.Title,
		Description: s.Description,
		RunID:       s.RunID,
		Start:       formatTime(s.Start),
		End:         formatTime(s.End),
		Sections:    make([]render.Section, 0, len(s.Sections)),
	}

	for _, sec := range s.Sections {
		rs := render.Section{
			Key:     sec.Key,
			Name:    sec.Name,
			Start:   formatTime(sec.Start),
			End:     formatTime(sec.End),
			Entries: make([]render.Entry, 0, len(sec.Logs)),
		}
		if sec.Closed {
			rs.Elapsed = render.Millis(sec.Elapsed)
		}
		for _, e := range sec.Logs {
			rs.Entries = append(rs.Entries, render.Entry{
				Type:     string(e.Type),
				DateTime: e.DateTime,
				Value:    e.Value,
			})
		}
		doc.Sections = append(doc.Sections, rs)
	}

	return doc
}

// Render writes the current report to w without touching the report file.
func (l *Logger) Render(w io.Writer) error {
	return render.Render(w, document(l.Snapshot()))
}
