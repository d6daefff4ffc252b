package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644

	fileStampLayout = "20060102_150405"
	fileExt         = ".html"
)

// Store writes report files beneath a base directory.
type Store struct {
	fs   afero.Fs
	base string
}

// New creates a store rooted at base. A nil fs means the OS filesystem.
func New(fs afero.Fs, base string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs, base: base}
}

// Base returns the root directory of the store.
func (s *Store) Base() string {
	return s.base
}

// DayDir returns <base>/YYYY/MM/DD for t.
func (s *Store) DayDir(t time.Time) string {
	return filepath.Join(s.dayLevels(t)...)
}

// Path returns the report file for a run titled title that started at start.
func (s *Store) Path(title string, start time.Time) string {
	return filepath.Join(s.DayDir(start), FileName(title, start))
}

// FileName returns <title>_<YYYYMMDD_HHmmss>.html.
func FileName(title string, start time.Time) string {
	return title + "_" + start.Format(fileStampLayout) + fileExt
}

// EnsureDayDir creates the YYYY, YYYY/MM and YYYY/MM/DD levels under the base
// directory, checking each level before creating it. The base itself must
// already exist.
func (s *Store) EnsureDayDir(t time.Time) error {
	levels := s.dayLevels(t)
	dir := levels[0]
	for _, part := range levels[1:] {
		dir = filepath.Join(dir, part)
		_, err := s.fs.Stat(dir)
		if err == nil {
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("storage: stat %s: %w", dir, err)
		}
		if err := s.fs.Mkdir(dir, dirPerm); err != nil {
			return fmt.Errorf("storage: mkdir %s: %w", dir, err)
		}
	}
	return nil
}

// Write replaces the contents of path with data. The data is written to a
// sibling temp file first and renamed into place.
func (s *Store) Write(path string, data []byte) error {
	tmp, err := afero.TempFile(s.fs, filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("storage: create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("storage: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("storage: close %s: %w", tmpName, err)
	}
	if err := s.fs.Chmod(tmpName, filePerm); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("storage: chmod %s: %w", tmpName, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("storage: rename %s: %w", path, err)
	}
	return nil
}

// Read returns the current contents of path.
func (s *Store) Read(path string) ([]byte, error) {
	return afero.ReadFile(s.fs, path)
}

// dayLevels returns [base, YYYY, MM, DD].
func (s *Store) dayLevels(t time.Time) []string {
	return []string{s.base, t.Format("2006"), t.Format("01"), t.Format("02")}
}
