package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/processforge/bpmn-architect/utils/config"
)

// Archive persists diagrams to Postgres for deployments that want shared
// history instead of the per-instance JSON file.
type Archive struct {
	db *sql.DB
}

// OpenArchive connects to the configured database and ensures the diagrams
// table exists.
func OpenArchive(dbConfig *config.DatabaseConfig) (*Archive, error) {
	if dbConfig == nil || dbConfig.DSN == "" {
		return nil, fmt.Errorf("database archive is not configured")
	}

	db, err := sql.Open("postgres", dbConfig.DSN)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	archive := &Archive{db: db}
	if err := archive.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return archive, nil
}

func (a *Archive) ensureSchema() error {
	_, err := a.db.Exec(`
		CREATE TABLE IF NOT EXISTS diagrams (
			id       TEXT PRIMARY KEY,
			title    TEXT NOT NULL,
			xml      TEXT NOT NULL,
			saved_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("error creating diagrams table: %w", err)
	}
	return nil
}

// Close releases the database connection
func (a *Archive) Close() error {
	return a.db.Close()
}

// List returns all archived diagrams, newest first
func (a *Archive) List() ([]SavedDiagram, error) {
	rows, err := a.db.Query(`SELECT id, title, xml, saved_at FROM diagrams ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing diagrams: %w", err)
	}
	defer rows.Close()

	var diagrams []SavedDiagram
	for rows.Next() {
		var d SavedDiagram
		if err := rows.Scan(&d.ID, &d.Title, &d.XML, &d.SavedAt); err != nil {
			return nil, fmt.Errorf("error scanning diagram row: %w", err)
		}
		diagrams = append(diagrams, d)
	}
	return diagrams, rows.Err()
}

// Save stores a new diagram in the archive
func (a *Archive) Save(xml, title string) (*SavedDiagram, error) {
	if xml == "" {
		return nil, fmt.Errorf("cannot archive an empty diagram")
	}
	if title == "" {
		title = "Diagram from " + time.Now().UTC().Format("2006-01-02 15:04")
	}

	diagram := SavedDiagram{
		ID:      "bpmn_" + uuid.NewString(),
		Title:   title,
		XML:     xml,
		SavedAt: time.Now().UTC(),
	}

	_, err := a.db.Exec(
		`INSERT INTO diagrams (id, title, xml, saved_at) VALUES ($1, $2, $3, $4)`,
		diagram.ID, diagram.Title, diagram.XML, diagram.SavedAt)
	if err != nil {
		return nil, fmt.Errorf("error archiving diagram: %w", err)
	}
	return &diagram, nil
}

// Get returns an archived diagram by ID
func (a *Archive) Get(id string) (*SavedDiagram, error) {
	var d SavedDiagram
	err := a.db.QueryRow(
		`SELECT id, title, xml, saved_at FROM diagrams WHERE id = $1`, id).
		Scan(&d.ID, &d.Title, &d.XML, &d.SavedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("diagram %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("error reading diagram: %w", err)
	}
	return &d, nil
}

// Delete removes an archived diagram by ID
func (a *Archive) Delete(id string) error {
	result, err := a.db.Exec(`DELETE FROM diagrams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting diagram: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("diagram %s not found", id)
	}
	return nil
}

// Rename updates an archived diagram's title. An empty new title leaves it
// unchanged.
func (a *Archive) Rename(id, title string) (*SavedDiagram, error) {
	if title != "" {
		result, err := a.db.Exec(`UPDATE diagrams SET title = $1 WHERE id = $2`, title, id)
		if err != nil {
			return nil, fmt.Errorf("error renaming diagram: %w", err)
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return nil, fmt.Errorf("diagram %s not found", id)
		}
	}
	return a.Get(id)
}
