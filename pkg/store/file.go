package store

import (
	"cmp"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridtable/pkg/errors"
)

// File stores one JSON file per record in a directory. It suits a single
// serve process; concurrent processes sharing the directory see each
// other's writes but are not coordinated.
type File struct {
	mu      sync.RWMutex
	baseDir string
	logger  *log.Logger
}

// NewFile opens a file store. An empty baseDir means
// ~/.config/gridtable/tables.
func NewFile(baseDir string, logger *log.Logger) (*File, error) {
	if baseDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "locate config dir")
		}
		baseDir = filepath.Join(dir, "gridtable", "tables")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create store dir")
	}
	return &File{baseDir: baseDir, logger: orDiscard(logger)}, nil
}

// Path returns the store directory.
func (s *File) Path() string { return s.baseDir }

func (s *File) recordPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *File) Put(_ context.Context, rec Record) error {
	if err := ValidateID(rec.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode record %s", rec.ID)
	}
	// Write then rename so readers never see a partial file.
	tmp := s.recordPath(rec.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write record %s", rec.ID)
	}
	if err := os.Rename(tmp, s.recordPath(rec.ID)); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInternal, err, "write record %s", rec.ID)
	}
	s.logger.Debug("stored table", "id", rec.ID, "version", rec.Version, "dir", s.baseDir)
	return nil
}

func (s *File) Get(_ context.Context, id string) (Record, error) {
	if err := ValidateID(id); err != nil {
		return Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.recordPath(id), id)
}

func (s *File) read(path, id string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, notFound(id)
		}
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "read record %s", id)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "decode record %s", id)
	}
	return rec, nil
}

// List skips files that cannot be decoded, logging a warning for each.
func (s *File) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read store dir")
	}
	var out []Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id := entry.Name()[:len(entry.Name())-len(".json")]
		rec, err := s.read(filepath.Join(s.baseDir, entry.Name()), id)
		if err != nil {
			s.logger.Warn("skipping unreadable record", "file", entry.Name(), "err", err)
			continue
		}
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b Record) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *File) Delete(_ context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.recordPath(id)); err != nil {
		if os.IsNotExist(err) {
			return notFound(id)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "remove record %s", id)
	}
	return nil
}

func (s *File) Close() error { return nil }

var _ Store = (*File)(nil)
