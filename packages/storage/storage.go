// Package storage owns reqvault's on-disk layout under ~/.reqvault:
// collections/<name>.json, environments.json, history.json and
// config.json. It reads raw text for the codec and persists serializer
// output verbatim, using temp-file-and-rename writes so a crash never
// leaves a half-written file.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/reqvault/packages/core/collection"
	"github.com/abdul-hamid-achik/reqvault/packages/core/config"
	"github.com/abdul-hamid-achik/reqvault/packages/core/env"
	"github.com/abdul-hamid-achik/reqvault/packages/core/json"
	"github.com/abdul-hamid-achik/reqvault/packages/history"
)

type Storage struct {
	base string
}

// New opens the default store at ~/.reqvault, creating it if needed.
func New() (*Storage, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("home directory not found: %w", err)
	}
	return WithPath(filepath.Join(home, ".reqvault"))
}

// WithPath opens a store rooted at an explicit directory.
func WithPath(path string) (*Storage, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, err
	}
	return &Storage{base: path}, nil
}

func (s *Storage) BasePath() string {
	return s.base
}

func (s *Storage) collectionsDir() (string, error) {
	dir := filepath.Join(s.base, "collections")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (s *Storage) EnvironmentsPath() string {
	return filepath.Join(s.base, "environments.json")
}

func (s *Storage) HistoryPath() string {
	return filepath.Join(s.base, "history.json")
}

func (s *Storage) HistoryIndexPath() string {
	return filepath.Join(s.base, "history.db")
}

func (s *Storage) ConfigPath() string {
	return filepath.Join(s.base, "config.json")
}

func (s *Storage) collectionPath(name string) (string, error) {
	dir, err := s.collectionsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sanitizeFilename(name)+".json"), nil
}

// SaveCollection persists a collection as pretty-printed JSON.
func (s *Storage) SaveCollection(c *collection.Collection) error {
	path, err := s.collectionPath(c.Name)
	if err != nil {
		return err
	}
	return writeAtomic(path, json.Serialize(c.ToValue(), true))
}

// LoadCollection reads and decodes one collection. A parse failure
// means the file is corrupt and is reported as such, never repaired.
func (s *Storage) LoadCollection(name string) (*collection.Collection, error) {
	path, err := s.collectionPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := json.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("collection %q is corrupt: %w", name, err)
	}
	c, err := collection.FromValue(v)
	if err != nil {
		return nil, fmt.Errorf("collection %q is corrupt: %w", name, err)
	}
	return c, nil
}

// ListCollections returns the stored collection names.
func (s *Storage) ListCollections() ([]string, error) {
	dir, err := s.collectionsDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return names, nil
}

func (s *Storage) DeleteCollection(name string) error {
	path, err := s.collectionPath(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// SaveEnvironments persists the environment store.
func (s *Storage) SaveEnvironments(set *env.Set) error {
	return writeAtomic(s.EnvironmentsPath(), json.Serialize(set.ToValue(), true))
}

// LoadEnvironments reads the environment store; a missing file is an
// empty store, not an error.
func (s *Storage) LoadEnvironments() (*env.Set, error) {
	data, err := os.ReadFile(s.EnvironmentsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return env.NewSet(), nil
	}
	if err != nil {
		return nil, err
	}
	v, err := json.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("environment store is corrupt: %w", err)
	}
	set, err := env.FromValue(v)
	if err != nil {
		return nil, fmt.Errorf("environment store is corrupt: %w", err)
	}
	return set, nil
}

// AppendHistory records a new entry, newest first, keeping at most
// history.MaxEntries.
func (s *Storage) AppendHistory(e *history.Entry) error {
	entries, err := s.LoadHistory()
	if err != nil {
		return err
	}
	entries = history.Prepend(entries, e)
	return writeAtomic(s.HistoryPath(), json.Serialize(history.ToValue(entries), true))
}

// LoadHistory reads the history file; a missing file is empty history.
func (s *Storage) LoadHistory() ([]*history.Entry, error) {
	data, err := os.ReadFile(s.HistoryPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v, err := json.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("history is corrupt: %w", err)
	}
	entries, err := history.FromValue(v)
	if err != nil {
		return nil, fmt.Errorf("history is corrupt: %w", err)
	}
	return entries, nil
}

func (s *Storage) ClearHistory() error {
	err := os.Remove(s.HistoryPath())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LoadConfig reads config.json; a missing file yields the defaults.
func (s *Storage) LoadConfig() (*config.Config, error) {
	data, err := os.ReadFile(s.ConfigPath())
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	v, err := json.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("config is corrupt: %w", err)
	}
	c, err := config.FromValue(v)
	if err != nil {
		return nil, fmt.Errorf("config is corrupt: %w", err)
	}
	return c, nil
}

func (s *Storage) SaveConfig(c *config.Config) error {
	return writeAtomic(s.ConfigPath(), json.Serialize(c.ToValue(), true))
}

// writeAtomic writes text to path through a temp file in the same
// directory followed by a rename.
func writeAtomic(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".reqvault-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(text + "\n"); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// sanitizeFilename strips characters that are unsafe in file names.
func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
