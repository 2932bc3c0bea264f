package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testXML = `<?xml version="1.0"?><bpmn:definitions></bpmn:definitions>`

func TestSaveAndGet(t *testing.T) {
	store := NewStore(t.TempDir())

	saved, err := store.Save(testXML, "Order process")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if saved.ID == "" || !strings.HasPrefix(saved.ID, "bpmn_") {
		t.Errorf("ID = %q", saved.ID)
	}
	if saved.Title != "Order process" {
		t.Errorf("Title = %q", saved.Title)
	}
	if saved.SavedAt.IsZero() {
		t.Error("SavedAt not set")
	}

	got := store.Get(saved.ID)
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.XML != testXML {
		t.Errorf("XML = %q", got.XML)
	}
}

func TestSaveEmptyXML(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Save("   ", "title"); err == nil {
		t.Error("empty XML should be rejected")
	}
}

func TestSaveDefaultTitle(t *testing.T) {
	store := NewStore(t.TempDir())

	saved, err := store.Save(testXML, "  ")
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(saved.Title, "Diagram from ") {
		t.Errorf("Title = %q, want a timestamped default", saved.Title)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := NewStore(t.TempDir())

	first, err := store.Save(testXML, "first")
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := store.Save(testXML, "second")
	if err != nil {
		t.Fatal(err)
	}

	diagrams := store.List()
	if len(diagrams) != 2 {
		t.Fatalf("got %d diagrams, want 2", len(diagrams))
	}
	if diagrams[0].ID != second.ID || diagrams[1].ID != first.ID {
		t.Errorf("order = %s, %s; want newest first", diagrams[0].Title, diagrams[1].Title)
	}
}

func TestDelete(t *testing.T) {
	store := NewStore(t.TempDir())

	saved, err := store.Save(testXML, "doomed")
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(saved.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Get(saved.ID) != nil {
		t.Error("deleted diagram still retrievable")
	}
	if err := store.Delete(saved.ID); err == nil {
		t.Error("deleting a missing diagram should fail")
	}
}

func TestRename(t *testing.T) {
	store := NewStore(t.TempDir())

	saved, err := store.Save(testXML, "old title")
	if err != nil {
		t.Fatal(err)
	}

	renamed, err := store.Rename(saved.ID, "new title")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if renamed.Title != "new title" {
		t.Errorf("Title = %q", renamed.Title)
	}
	if got := store.Get(saved.ID); got.Title != "new title" {
		t.Errorf("persisted Title = %q", got.Title)
	}

	// Blank titles leave the current one in place
	unchanged, err := store.Rename(saved.ID, "  ")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if unchanged.Title != "new title" {
		t.Errorf("Title = %q, blank rename should not change it", unchanged.Title)
	}

	if _, err := store.Rename("bpmn_missing", "x"); err == nil {
		t.Error("renaming a missing diagram should fail")
	}
}

func TestCorruptedFileTreatedAsEmpty(t *testing.T) {
	dataDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dataDir, "saved-diagrams.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(dataDir)
	if got := store.List(); len(got) != 0 {
		t.Errorf("corrupted file yielded %d diagrams", len(got))
	}

	// Saving still works and replaces the corrupted file
	if _, err := store.Save(testXML, "recovered"); err != nil {
		t.Fatalf("Save after corruption failed: %v", err)
	}
	if got := store.List(); len(got) != 1 {
		t.Errorf("got %d diagrams after recovery, want 1", len(got))
	}
}
