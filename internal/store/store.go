// Package store persists the Threadweaver economy: the currency balance and
// purchased upgrades. Both live in one small document on disk.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Garsondee/threadweaver/internal/game"
)

// DefaultFileName is used under os.TempDir when no path is configured.
const DefaultFileName = "threadweaver_state.json"

// SaveFile is the persisted document.
type SaveFile struct {
	Currency uint32             `json:"currency" msgpack:"currency" jsonschema:"minimum=0"`
	Upgrades game.UpgradeLevels `json:"upgrades" msgpack:"upgrades"`
}

// DefaultSaveFile is the state of a fresh install.
func DefaultSaveFile() SaveFile {
	return SaveFile{Upgrades: game.DefaultUpgradeLevels()}
}

// DefaultPath returns the fallback save location.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), DefaultFileName)
}

// --- File store ---

// FileStore keeps the save document in a single file. Read and Write report
// errors; the game.Persistence methods swallow them into defaults and record
// the most recent one for Err.
type FileStore struct {
	path  string
	codec Codec

	mu      sync.Mutex
	lastErr error
}

var _ game.Persistence = (*FileStore)(nil)

// NewFileStore returns a store for path, choosing the codec from its
// extension. An empty path means DefaultPath.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path, codec: CodecFor(path)}
}

func (s *FileStore) Path() string { return s.path }

// Read loads the document. A missing file yields defaults and no error;
// unreadable or corrupt data yields defaults and the wrapped cause.
func (s *FileStore) Read() (SaveFile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSaveFile(), nil
	}
	if err != nil {
		return DefaultSaveFile(), fmt.Errorf("read save %s: %w", s.path, err)
	}

	doc := DefaultSaveFile()
	if err := s.codec.Unmarshal(data, &doc); err != nil {
		return DefaultSaveFile(), fmt.Errorf("decode save %s (%s): %w", s.path, s.codec.Name(), err)
	}
	doc.Upgrades = doc.Upgrades.Normalize()
	return doc, nil
}

// Write replaces the document atomically through a temp file and rename.
func (s *FileStore) Write(doc SaveFile) error {
	data, err := s.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode save (%s): %w", s.codec.Name(), err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".threadweaver-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace save %s: %w", s.path, err)
	}
	return nil
}

// Err returns the last error swallowed by the Persistence methods.
func (s *FileStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *FileStore) note(err error) {
	if err != nil {
		s.lastErr = err
	}
}

func (s *FileStore) LoadCurrency() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.Read()
	s.note(err)
	return doc.Currency
}

func (s *FileStore) LoadUpgrades() game.UpgradeLevels {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.Read()
	s.note(err)
	return doc.Upgrades
}

// SaveCurrency rewrites the document with the new balance, keeping the
// stored upgrades.
func (s *FileStore) SaveCurrency(balance uint32) {
	s.update(func(doc *SaveFile) { doc.Currency = balance })
}

func (s *FileStore) SaveUpgrades(levels game.UpgradeLevels) {
	s.update(func(doc *SaveFile) { doc.Upgrades = levels.Clone() })
}

func (s *FileStore) update(edit func(*SaveFile)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.Read()
	s.note(err)
	edit(&doc)
	s.note(s.Write(doc))
}

// --- Memory store ---

// MemoryStore is an in-process Persistence for headless runs and tests.
type MemoryStore struct {
	mu  sync.Mutex
	doc SaveFile
}

var _ game.Persistence = (*MemoryStore)(nil)

// NewMemoryStore starts from doc.
func NewMemoryStore(doc SaveFile) *MemoryStore {
	doc.Upgrades = doc.Upgrades.Normalize()
	return &MemoryStore{doc: doc}
}

func (m *MemoryStore) LoadCurrency() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Currency
}

func (m *MemoryStore) SaveCurrency(balance uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.Currency = balance
}

func (m *MemoryStore) LoadUpgrades() game.UpgradeLevels {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Upgrades.Clone()
}

func (m *MemoryStore) SaveUpgrades(levels game.UpgradeLevels) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.Upgrades = levels.Clone()
}

// Snapshot returns a copy of the stored document.
func (m *MemoryStore) Snapshot() SaveFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.doc
	out.Upgrades = m.doc.Upgrades.Clone()
	return out
}
