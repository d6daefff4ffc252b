package htmllog

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/angeloszaimis/htmllog/internal/render"
	"github.com/angeloszaimis/htmllog/internal/storage"
)

// TitlePattern is the set of titles accepted by New. The title becomes part
// of the report file name.
var TitlePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Logger accumulates sections and entries for a single run and persists them
// as an HTML report after every change.
type Logger struct {
	mu sync.Mutex

	title       string
	description string
	logsPath    string
	runID       string
	start       time.Time
	end         time.Time

	order    []string
	sections map[string]*Section

	store *storage.Store
	now   func() time.Time
	log   *slog.Logger
}

// New creates a Logger for a run starting now. Nothing is written until the
// first mutating call.
func New(title, description, logsPath string, opts ...Option) (*Logger, error) {
	if err := validateIdentity(title, logsPath); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	runID := uuid.NewString()
	return &Logger{
		title:       title,
		description: description,
		logsPath:    logsPath,
		runID:       runID,
		start:       o.now(),
		sections:    make(map[string]*Section),
		store:       storage.New(o.fs, logsPath),
		now:         o.now,
		log:         o.logger.With(slog.String("report", title), slog.String("run", runID)),
	}, nil
}

func validateIdentity(title, logsPath string) error {
	return validation.Errors{
		"title":    validation.Validate(title, validation.Required, validation.Match(TitlePattern)),
		"logsPath": validation.Validate(logsPath, validation.Required),
	}.Filter()
}

// Path returns the report file for this run. It never changes.
func (l *Logger) Path() string {
	return l.store.Path(l.title, l.start)
}

// LogsPath returns the base directory reports are written under.
func (l *Logger) LogsPath() string {
	return l.logsPath
}

// RunID returns the identifier of this run.
func (l *Logger) RunID() string {
	return l.runID
}

// CreateSection opens a section. Creating a key that already exists resets
// that section in place: its entries are dropped, its position is kept.
func (l *Logger) CreateSection(name, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.createSection(name, key)
	return l.save()
}

// CloseSection stamps the section's end time and elapsed duration.
func (l *Logger) CloseSection(key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.closeSection(key); err != nil {
		return err
	}
	return l.save()
}

// Info appends an INFO entry to the section.
func (l *Logger) Info(sectionKey, value string) error {
	return l.add(sectionKey, TypeInfo, value)
}

// Error appends an ERROR entry to the section.
func (l *Logger) Error(sectionKey, value string) error {
	return l.add(sectionKey, TypeError, value)
}

// Debug appends a DEBUG entry to the section.
func (l *Logger) Debug(sectionKey, value string) error {
	return l.add(sectionKey, TypeDebug, value)
}

// ErrorException records an ERROR entry in the EXCEPTIONS section.
func (l *Logger) ErrorException(message string) error {
	return l.exception(TypeError, message)
}

// DebugException records a DEBUG entry in the EXCEPTIONS section.
func (l *Logger) DebugException(message string) error {
	return l.exception(TypeDebug, message)
}

// Save re-renders the report and overwrites the run's file.
func (l *Logger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.save()
}

// Snapshot returns a copy of the current state.
func (l *Logger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.snapshot()
}

func (l *Logger) add(key string, typ EntryType, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.append(key, typ, value); err != nil {
		return err
	}
	return l.save()
}

// exception creates EXCEPTIONS once per Logger. Later calls reuse it, so the
// elapsed time is always measured from the first exception.
func (l *Logger) exception(typ EntryType, message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.sections[ExceptionsKey]; !ok {
		l.createSection(ExceptionsName, ExceptionsKey)
		if err := l.save(); err != nil {
			return err
		}
	}

	if err := l.append(ExceptionsKey, typ, message); err != nil {
		return err
	}
	if err := l.save(); err != nil {
		return err
	}

	if err := l.closeSection(ExceptionsKey); err != nil {
		return err
	}
	return l.save()
}

func (l *Logger) createSection(name, key string) {
	now := l.now()

	if _, exists := l.sections[key]; exists {
		l.log.Warn("section recreated, previous entries discarded", slog.String("section", key))
	} else {
		l.order = append(l.order, key)
	}

	l.sections[key] = &Section{
		Key:   key,
		Name:  name,
		Start: now,
		End:   now,
	}
}

func (l *Logger) closeSection(key string) error {
	sec, err := l.lookup(key)
	if err != nil {
		return err
	}

	sec.End = l.now()
	sec.Elapsed = sec.End.Sub(sec.Start)
	sec.Closed = true
	return nil
}

func (l *Logger) append(key string, typ EntryType, value string) error {
	sec, err := l.lookup(key)
	if err != nil {
		return err
	}

	sec.Logs = append(sec.Logs, Entry{
		Type:     typ,
		Value:    value,
		DateTime: formatTime(l.now()),
	})
	return nil
}

func (l *Logger) lookup(key string) (*Section, error) {
	sec, ok := l.sections[key]
	if !ok {
		return nil, fmt.Errorf("htmllog: %w: %q", ErrSectionNotFound, key)
	}
	return sec, nil
}

func (l *Logger) save() error {
	l.end = l.now()

	if err := l.store.EnsureDayDir(l.start); err != nil {
		return fmt.Errorf("htmllog: save: %w", err)
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, document(l.snapshot())); err != nil {
		return fmt.Errorf("htmllog: save: %w", err)
	}

	path := l.Path()
	if err := l.store.Write(path, buf.Bytes()); err != nil {
		return fmt.Errorf("htmllog: save: %w", err)
	}

	l.log.Debug("report saved",
		slog.String("path", path),
		slog.Int("sections", len(l.order)),
		slog.Int("bytes", buf.Len()))
	return nil
}

func (l *Logger) snapshot() Snapshot {
	s := Snapshot{
		Title:       l.title,
		Description: l.description,
		RunID:       l.runID,
		Start:       l.start,
		End:         l.end,
		Sections:    make([]Section, 0, len(l.order)),
	}
	for _, key := range l.order {
		s.Sections = append(s.Sections, l.sections[key].clone())
	}
	return s
}
