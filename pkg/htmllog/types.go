package htmllog

import (
	"errors"
	"time"
)

// EntryType is the severity of an entry.
type EntryType string

const (
	TypeInfo  EntryType = "INFO"
	TypeError EntryType = "ERROR"
	TypeDebug EntryType = "DEBUG"
)

// Reserved section used by ErrorException and DebugException.
const (
	ExceptionsKey  = "EXCEPTIONS"
	ExceptionsName = "Unhandled exceptions"
)

// ErrSectionNotFound is returned when an operation names a section that was
// never created.
var ErrSectionNotFound = errors.New("section not found")

// Entry is one log message.
type Entry struct {
	Type     EntryType
	Value    string
	DateTime string
}

// Section is a named, ordered group of entries. End equals Start until the
// section is closed.
type Section struct {
	Key     string
	Name    string
	Start   time.Time
	End     time.Time
	Elapsed time.Duration
	Closed  bool
	Logs    []Entry
}

func (s *Section) clone() Section {
	c := *s
	c.Logs = make([]Entry, len(s.Logs))
	copy(c.Logs, s.Logs)
	return c
}

// Snapshot is a point-in-time copy of a Logger's state.
type Snapshot struct {
	Title       string
	Description string
	RunID       string
	Start       time.Time
	End         time.Time
	Sections    []Section
}

// Section returns the section with the given key.
func (s Snapshot) Section(key string) (Section, bool) {
	for _, sec := range s.Sections {
		if sec.Key == key {
			return sec, true
		}
	}
	return Section{}, false
}
