package prompts

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/fileutil"
)

// Kind identifies one of the pipeline's prompt templates
type Kind string

const (
	Generation Kind = "generation"
	Refinement Kind = "refinement"
	Validation Kind = "validation"
	Correction Kind = "correction"
)

//go:embed defaults/*.txt
var defaultTemplates embed.FS

var fileByKind = map[Kind]string{
	Generation: "bpmn-generation-prompt.txt",
	Refinement: "bpmn-refinement-prompt.txt",
	Validation: "bpmn-validation-prompt.txt",
	Correction: "bpmn-correction-prompt.txt",
}

// Kinds returns every known prompt kind
func Kinds() []Kind {
	return []Kind{Generation, Refinement, Validation, Correction}
}

// ValidKind reports whether the given string names a prompt kind
func ValidKind(s string) bool {
	_, ok := fileByKind[Kind(s)]
	return ok
}

// Store reads and writes the prompt template files. Templates are re-read on
// every Get so admin edits take effect on the next pipeline run.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the given directory. An empty dir uses
// BPMN_ARCHITECT_PROMPTS or "./prompts".
func NewStore(dir string) *Store {
	if dir == "" {
		dir = os.Getenv("BPMN_ARCHITECT_PROMPTS")
	}
	if dir == "" {
		dir = "prompts"
	}
	return &Store{dir: dir}
}

// Dir returns the directory backing the store
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(kind Kind) (string, error) {
	name, ok := fileByKind[kind]
	if !ok {
		return "", fmt.Errorf("unknown prompt kind: %s", kind)
	}
	return filepath.Join(s.dir, name), nil
}

// Get returns the current template text for a kind. A missing or unreadable
// file yields the embedded default template; Get never returns an error for
// the known kinds because a degraded template is still a usable one.
func (s *Store) Get(kind Kind) string {
	path, err := s.path(kind)
	if err != nil {
		config.DebugLog("[Prompts] %v", err)
		return fmt.Sprintf("No prompt template is configured for kind %q.", kind)
	}

	data, err := fileutil.SafeReadFile(path)
	if err != nil {
		config.DebugLog("[Prompts] Falling back to embedded %s template: %v", kind, err)
		return s.embeddedDefault(kind)
	}
	return string(data)
}

// embeddedDefault returns the built-in template shipped with the binary
func (s *Store) embeddedDefault(kind Kind) string {
	name := fileByKind[kind]
	data, err := defaultTemplates.ReadFile("defaults/" + name)
	if err != nil {
		// Only reachable if the embed set and fileByKind disagree
		return fmt.Sprintf("The %s prompt template could not be loaded. Please save one via the admin surface.", kind)
	}
	return string(data)
}

// Save overwrites the template file for a kind, creating the directory as needed
func (s *Store) Save(kind Kind, text string) error {
	path, err := s.path(kind)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("error creating prompts directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("error saving %s prompt: %w", kind, err)
	}

	config.VerboseLog("Saved %s prompt template (%d bytes)", kind, len(text))
	return nil
}
