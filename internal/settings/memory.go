package settings

import "sync"

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu     sync.Mutex
	record *Settings

	// SaveErr, when set, is returned by Save.
	SaveErr error
	// Saves counts successful Save calls.
	Saves int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.record == nil {
		return Default(), nil
	}
	return *m.record, nil
}

func (m *MemoryStore) Save(s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	n := s.Normalize()
	m.record = &n
	m.Saves++
	return nil
}
