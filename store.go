package flashclass

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// MemoryStore is a process-lifetime CredentialStore. Useful for tests and
// hosts that keep their own persistence.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ CredentialStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// FileStore persists credentials as a JSON document, the client-side analog
// of profile-scoped browser storage. Writes are last-write-wins; there is no
// cross-process invalidation.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger Logger
	values map[string]string
}

var _ CredentialStore = (*FileStore)(nil)

// NewFileStore loads (or lazily creates) the store file at path. A missing
// or unreadable file starts empty rather than failing; the store contract
// has no error channel.
func NewFileStore(path string) *FileStore {
	s := &FileStore{
		path:   path,
		logger: defLogger{},
		values: map[string]string{},
	}
	s.load()
	return s
}

// DefaultStorePath resolves the credential file under the user config dir.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "flashclass", "credentials.json")
}

func (s *FileStore) WithLogger(logger Logger) *FileStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.persist()
}

func (s *FileStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.persist()
}

func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		s.logger.Error("credential file %s is corrupt, starting empty: %v", s.path, err)
		return
	}
	s.values = values
}

func (s *FileStore) persist() {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		s.logger.Error("unable to serialize credentials: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.logger.Error("unable to create credential dir: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Error("unable to persist credentials: %v", err)
	}
}
