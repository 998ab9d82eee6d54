package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/zhubert/cadcopilot/internal/errors"
)

// FileStore keeps the record as JSON in a single file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns ~/.cadcopilot/settings.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cadcopilot", "settings.json"), nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, errors.SettingsLoadFailed(s.path, err)
	}

	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return Settings{}, errors.SettingsLoadFailed(s.path, err)
	}
	return loaded.Normalize(), nil
}

func (s *FileStore) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.SettingsSaveFailed(s.path, err)
	}
	data, err := json.MarshalIndent(settings.Normalize(), "", "  ")
	if err != nil {
		return errors.SettingsSaveFailed(s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.SettingsSaveFailed(s.path, err)
	}
	return nil
}
