package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	errlist "github.com/pixil98/go-errors"
)

var (
	ErrExists = errors.New("record already exists")
	ErrNoData = errors.New("store has no data file")
)

type ValidatingSpec interface {
	Validate() error
}

type Storer[T ValidatingSpec] interface {
	Save(string, T) error
	Create(string, T) error
	Delete(string) (bool, error)
	Get(string) T
	Exists(string) bool
	GetAll() map[string]T
}

// FileStore keeps every record of a kind in a single JSON file holding a
// mapping from id to record. Records are cached in memory and the whole
// file is rewritten on every change.
type FileStore[T ValidatingSpec] struct {
	path    string
	records map[string]T

	mu sync.RWMutex
}

func NewFileStore[T ValidatingSpec](path string) (*FileStore[T], error) {
	s := &FileStore[T]{
		path:    path,
		records: map[string]T{},
	}

	err := s.load()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Path returns the location of the backing file.
func (s *FileStore[T]) Path() string {
	return s.path
}

func (s *FileStore[T]) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clear existing records when loading
	s.records = map[string]T{}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("no existing store found, starting empty", "path", s.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}

	records := map[string]T{}
	if len(strings.TrimSpace(string(data))) > 0 {
		err = json.Unmarshal(data, &records)
		if err != nil {
			return fmt.Errorf("unmarshalling %s: %w", filepath.Base(s.path), err)
		}
	}

	el := errlist.NewErrorList()
	for id, rec := range records {
		if id == "" {
			el.Add(fmt.Errorf("empty key in %s", filepath.Base(s.path)))
			continue
		}
		if err := rec.Validate(); err != nil {
			el.Add(fmt.Errorf("validating %s: %w", id, err))
		}
	}
	if err := el.Err(); err != nil {
		return err
	}

	s.records = records
	slog.Info("loaded store", "path", s.path, "records", len(records))
	return nil
}

// Save upserts a record and rewrites the backing file. The cached value is
// updated even if writing fails.
func (s *FileStore[T]) Save(id string, o T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[id] = o
	return s.persist()
}

// Create inserts a record, failing with ErrExists if the id is taken.
func (s *FileStore[T]) Create(id string, o T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; ok {
		return ErrExists
	}
	s.records[id] = o
	return s.persist()
}

// Delete removes a record. Returns false if it did not exist.
func (s *FileStore[T]) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false, nil
	}
	delete(s.records, id)
	return true, s.persist()
}

func (s *FileStore[T]) Get(id string) T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.records[id]

	if !ok {
		var nilVal T
		return nilVal
	}

	return val
}

func (s *FileStore[T]) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[id]
	return ok
}

func (s *FileStore[T]) GetAll() map[string]T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vals := map[string]T{}
	for id, v := range s.records {
		vals[id] = v
	}

	return vals
}

// Backup copies the backing file into dir as <name>_backup_<timestamp><ext>
// and returns the path of the copy.
func (s *FileStore[T]) Backup(dir string, now time.Time) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoData
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", s.path, err)
	}

	base := filepath.Base(s.path)
	ext := filepath.Ext(base)
	name := fmt.Sprintf("%s_backup_%s%s", strings.TrimSuffix(base, ext), now.Format("20060102_150405"), ext)
	dest := filepath.Join(dir, name)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}
	if err := atomicWrite(dest, data, 0644); err != nil {
		return "", err
	}
	return dest, nil
}

// persist must be called with the write lock held.
func (s *FileStore[T]) persist() error {
	jsonData, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	return replaceFile(s.path, jsonData, 0644)
}

// replaceFile moves the current file aside, writes the new contents and
// drops the old copy. If writing fails the old file is put back.
func replaceFile(path string, data []byte, perm os.FileMode) error {
	backup := path + ".backup"

	hadOld := false
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, backup); err != nil {
			return fmt.Errorf("moving aside %s: %w", filepath.Base(path), err)
		}
		hadOld = true
	}

	if err := atomicWrite(path, data, perm); err != nil {
		if hadOld {
			if restoreErr := os.Rename(backup, path); restoreErr != nil {
				slog.Error("failed to restore backup after write failure", "path", path, "error", restoreErr)
			} else {
				slog.Warn("restored previous file after write failure", "path", path)
			}
		}
		return err
	}

	if hadOld {
		if err := os.Remove(backup); err != nil {
			slog.Warn("failed to remove backup file", "path", backup, "error", err)
		}
	}
	return nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
// This prevents partial or empty files if the process is interrupted.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
