// Package stats persists cross-match player counters and checkout attempt logs
package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/myusername/darts-scorer/pkg/models"
)

// Recorder receives the counters emitted by a match
type Recorder interface {
	RecordProfile(profile models.PlayerProfile) error
	RecordCheckoutAttempt(attempt models.CheckoutAttempt) error
	RetractCheckoutAttempt(id uuid.UUID) error
}

// ErrAttemptNotFound is returned when retracting an attempt that was never recorded
var ErrAttemptNotFound = errors.New("checkout attempt not found")

// document is the on-disk layout of a stats file
type document struct {
	Players  map[string]models.PlayerProfile `json:"players"`
	Attempts []models.CheckoutAttempt        `json:"checkout_attempts"`
}

// MemoryStore keeps everything in memory
type MemoryStore struct {
	mu  sync.Mutex
	doc document
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: document{Players: make(map[string]models.PlayerProfile)}}
}

// RecordProfile replaces the stored profile for profile.Name
func (s *MemoryStore) RecordProfile(profile models.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.recordProfile(profile)
	return nil
}

// RecordCheckoutAttempt appends the attempt to the log
func (s *MemoryStore) RecordCheckoutAttempt(attempt models.CheckoutAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Attempts = append(s.doc.Attempts, attempt)
	return nil
}

// RetractCheckoutAttempt removes an attempt, used when a turn is undone
func (s *MemoryStore) RetractCheckoutAttempt(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.retract(id)
}

// Profiles returns a copy of every stored profile keyed by player name
func (s *MemoryStore) Profiles() map[string]models.PlayerProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.profiles()
}

// Attempts returns a copy of the checkout attempt log
func (s *MemoryStore) Attempts() []models.CheckoutAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CheckoutAttempt(nil), s.doc.Attempts...)
}

// FileStore keeps the stats in a single JSON file that is rewritten on every change
type FileStore struct {
	path string
	mu   sync.Mutex
	doc  document
}

// OpenFileStore loads path, or starts empty if the file does not exist yet.
// Profiles are normalized once here and trusted afterwards.
func OpenFileStore(path string) (*FileStore, error) {
	store := &FileStore{path: path, doc: document{Players: make(map[string]models.PlayerProfile)}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("Stats file %s does not exist yet, starting empty", path)
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading stats file: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &store.doc); err != nil {
			return nil, fmt.Errorf("error parsing stats file %s: %w", path, err)
		}
	}
	if store.doc.Players == nil {
		store.doc.Players = make(map[string]models.PlayerProfile)
	}
	for name, p := range store.doc.Players {
		if p.Name == "" {
			p.Name = name
		}
		p.Normalize()
		store.doc.Players[name] = p
	}

	log.Printf("Loaded %d player profiles and %d checkout attempts from %s",
		len(store.doc.Players), len(store.doc.Attempts), path)
	return store, nil
}

// Path returns the file backing the store
func (s *FileStore) Path() string {
	return s.path
}

// RecordProfile replaces the stored profile and saves the file
func (s *FileStore) RecordProfile(profile models.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.recordProfile(profile)
	return s.save()
}

// RecordCheckoutAttempt appends the attempt and saves the file
func (s *FileStore) RecordCheckoutAttempt(attempt models.CheckoutAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Attempts = append(s.doc.Attempts, attempt)
	return s.save()
}

// RetractCheckoutAttempt removes the attempt and saves the file
func (s *FileStore) RetractCheckoutAttempt(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.doc.retract(id); err != nil {
		return err
	}
	return s.save()
}

// Profiles returns a copy of every stored profile keyed by player name
func (s *FileStore) Profiles() map[string]models.PlayerProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.profiles()
}

// Attempts returns a copy of the checkout attempt log
func (s *FileStore) Attempts() []models.CheckoutAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CheckoutAttempt(nil), s.doc.Attempts...)
}

// save writes to a temporary file next to path and renames it into place
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding stats: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary stats file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing stats: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing temporary stats file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("error saving stats file: %w", err)
	}
	return nil
}

func (d *document) recordProfile(profile models.PlayerProfile) {
	if d.Players == nil {
		d.Players = make(map[string]models.PlayerProfile)
	}
	d.Players[profile.Name] = profile
}

func (d *document) retract(id uuid.UUID) error {
	for i, a := range d.Attempts {
		if a.ID == id {
			d.Attempts = append(d.Attempts[:i], d.Attempts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrAttemptNotFound, id)
}

func (d *document) profiles() map[string]models.PlayerProfile {
	out := make(map[string]models.PlayerProfile, len(d.Players))
	for name, p := range d.Players {
		out[name] = p
	}
	return out
}

// SortedProfiles returns the profiles ordered by three-dart average, best first,
// with ties broken by name.
func SortedProfiles(profiles map[string]models.PlayerProfile) []models.PlayerProfile {
	out := make([]models.PlayerProfile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].ThreeDartAverage(), out[j].ThreeDartAverage()
		if ai != aj {
			return ai > aj
		}
		return out[i].Name < out[j].Name
	})
	return out
}
