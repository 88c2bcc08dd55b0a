package history

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"x-impressions/internal/models"
)

const (
	fileName = "view_history.json"
	// readings older than this are dropped on load
	retention = 30 * 24 * time.Hour
)

// Store keeps the latest reading per post in a JSON file, for runs without a database.
type Store struct {
	mu       sync.Mutex
	filePath string
	latest   map[string]models.ViewSnapshot
	now      func() time.Time
}

// NewStore creates or loads the history file under dir.
func NewStore(dir string) *Store {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create history directory: %v", err)
	}
	s := &Store{
		filePath: filepath.Join(dir, fileName),
		latest:   make(map[string]models.ViewSnapshot),
		now:      time.Now,
	}
	s.load()
	return s
}

// Latest returns the previous reading for postURL, or nil.
func (s *Store) Latest(postURL string) *models.ViewSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.latest[postURL]
	if !ok {
		return nil
	}
	return &snap
}

// Record replaces the stored reading for snap.PostURL and writes the file.
func (s *Store) Record(snap models.ViewSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[snap.PostURL] = snap
	return s.save()
}

func (s *Store) load() {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read %s: %v", fileName, err)
		}
		return
	}

	var entries []models.ViewSnapshot
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse %s: %v", fileName, err)
		return
	}

	cutoff := s.now().Add(-retention)
	loaded := 0
	for _, e := range entries {
		if e.ScrapedAt.After(cutoff) {
			s.latest[e.PostURL] = e
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previous readings (%d expired and removed)", loaded, len(entries)-loaded)
}

func (s *Store) save() error {
	entries := make([]models.ViewSnapshot, 0, len(s.latest))
	for _, snap := range s.latest {
		entries = append(entries, snap)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0644)
}
