package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// ReportsHandler serves the report tree rooted at dir. Directory listings are
// enabled so runs can be browsed by date. Responses are never cached, which
// keeps auto-refreshing reports current.
func ReportsHandler(dir string, log *slog.Logger) http.Handler {
	files := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		rec.Header().Set("Cache-Control", "no-store")

		files.ServeHTTP(rec, r)

		log.Debug("served report request",
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(started)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
