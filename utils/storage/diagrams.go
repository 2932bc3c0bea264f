package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/processforge/bpmn-architect/utils/config"
)

// SavedDiagram is one persisted BPMN diagram
type SavedDiagram struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	XML     string    `json:"xml"`
	SavedAt time.Time `json:"savedAt"`
}

// Store keeps saved diagrams in a single JSON file under the data directory.
// A corrupted file is treated as empty rather than an error, so a bad write
// never locks the user out of saving new diagrams.
type Store struct {
	path  string
	mutex sync.Mutex
}

// NewStore creates a diagram store in the given data directory
func NewStore(dataDir string) *Store {
	return &Store{path: filepath.Join(dataDir, "saved-diagrams.json")}
}

func (s *Store) load() []SavedDiagram {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var diagrams []SavedDiagram
	if err := json.Unmarshal(data, &diagrams); err != nil {
		config.DebugLog("[Storage] Discarding corrupted diagram file: %v", err)
		return nil
	}
	return diagrams
}

func (s *Store) write(diagrams []SavedDiagram) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(diagrams, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling diagrams: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error writing diagram file: %w", err)
	}
	return nil
}

// List returns all saved diagrams, newest first
func (s *Store) List() []SavedDiagram {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	diagrams := s.load()
	sort.Slice(diagrams, func(i, j int) bool {
		return diagrams[i].SavedAt.After(diagrams[j].SavedAt)
	})
	return diagrams
}

// Save stores a new diagram and returns it with its generated ID. An empty
// title gets a timestamped default.
func (s *Store) Save(xml, title string) (*SavedDiagram, error) {
	if strings.TrimSpace(xml) == "" {
		return nil, fmt.Errorf("cannot save an empty diagram")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now().UTC()
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Diagram from " + now.Format("2006-01-02 15:04")
	}

	diagram := SavedDiagram{
		ID:      "bpmn_" + uuid.NewString(),
		Title:   title,
		XML:     xml,
		SavedAt: now,
	}

	diagrams := append([]SavedDiagram{diagram}, s.load()...)
	if err := s.write(diagrams); err != nil {
		return nil, err
	}

	config.VerboseLog("Saved diagram %s (%q)", diagram.ID, diagram.Title)
	return &diagram, nil
}

// Get returns a diagram by ID, or nil when it does not exist
func (s *Store) Get(id string) *SavedDiagram {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, diagram := range s.load() {
		if diagram.ID == id {
			d := diagram
			return &d
		}
	}
	return nil
}

// Delete removes a diagram by ID
func (s *Store) Delete(id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	diagrams := s.load()
	kept := diagrams[:0]
	found := false
	for _, diagram := range diagrams {
		if diagram.ID == id {
			found = true
			continue
		}
		kept = append(kept, diagram)
	}
	if !found {
		return fmt.Errorf("diagram %s not found", id)
	}
	return s.write(kept)
}

// Rename updates a diagram's title. An empty new title leaves it unchanged.
func (s *Store) Rename(id, title string) (*SavedDiagram, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	diagrams := s.load()
	for i := range diagrams {
		if diagrams[i].ID == id {
			if strings.TrimSpace(title) != "" {
				diagrams[i].Title = strings.TrimSpace(title)
			}
			if err := s.write(diagrams); err != nil {
				return nil, err
			}
			d := diagrams[i]
			return &d, nil
		}
	}
	return nil, fmt.Errorf("diagram %s not found", id)
}
