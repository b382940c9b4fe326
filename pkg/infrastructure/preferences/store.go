// Package preferences stores user preferences in a YAML file.
package preferences

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
	"github.com/vsinha/fibercalc/pkg/domain/repositories"
)

// FileStore is a PreferenceRepository backed by a single YAML file. A
// missing file reads as the defaults; every Save rewrites the file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ repositories.PreferenceRepository = (*FileStore)(nil)

// NewFileStore returns a store for path. The file is not touched until the
// first Load or Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the per-user preferences location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("preferences: locate config dir: %w", err)
	}
	return filepath.Join(dir, "fibercalc", "preferences.yaml"), nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (entities.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs := entities.DefaultPreferences()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("preferences: read %s: %w", s.path, err)
	}
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return entities.DefaultPreferences(), fmt.Errorf("preferences: parse %s: %w", s.path, err)
	}
	if prefs.UnitSystem == "" {
		prefs.UnitSystem = entities.Imperial
	}
	if prefs.Counters == nil {
		prefs.Counters = make(map[string]int)
	}
	return prefs, nil
}

func (s *FileStore) Save(prefs entities.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("preferences: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("preferences: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".preferences-*.yaml")
	if err != nil {
		return fmt.Errorf("preferences: create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("preferences: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("preferences: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("preferences: replace %s: %w", s.path, err)
	}
	return nil
}
