package htmllog

import (
	"log/slog"
	"time"

	"github.com/spf13/afero"
)

type options struct {
	now    func() time.Time
	fs     afero.Fs
	logger *slog.Logger
}

// Option configures a Logger.
type Option func(*options)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithFs sets the filesystem reports are written to. Default: the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithLogger sets the logger used for diagnostics about the report itself,
// such as the file being written. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions() options {
	return options{
		now:    time.Now,
		fs:     afero.NewOsFs(),
		logger: slog.New(slog.DiscardHandler),
	}
}
