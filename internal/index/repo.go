package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/starford/raido/internal/models"
)

// UpsertRecord inserts or replaces one record row.
func (db *DB) UpsertRecord(rec models.NoteRecord, checksum string) error {
	tagsJSON, _ := json.Marshal(nonNil(rec.Tags))
	aliasesJSON, _ := json.Marshal(nonNil(rec.Aliases))
	propsJSON, _ := json.Marshal(rec.Properties)
	if rec.Properties == nil {
		propsJSON = []byte("{}")
	}

	_, err := db.conn.Exec(`
		INSERT INTO records (path, basename, extension, title, checksum,
			tags, aliases, properties, open_tasks, created, modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			basename   = excluded.basename,
			extension  = excluded.extension,
			title      = excluded.title,
			checksum   = excluded.checksum,
			tags       = excluded.tags,
			aliases    = excluded.aliases,
			properties = excluded.properties,
			open_tasks = excluded.open_tasks,
			created    = excluded.created,
			modified   = excluded.modified
	`, rec.Path, rec.Basename, rec.Extension, rec.Title, checksum,
		string(tagsJSON), string(aliasesJSON), string(propsJSON),
		rec.OpenTasks, rec.Created, rec.Modified)
	if err != nil {
		return fmt.Errorf("index: upsert record: %w", err)
	}
	return nil
}

// DeleteRecord removes a record row.
func (db *DB) DeleteRecord(path string) error {
	if _, err := db.conn.Exec(`DELETE FROM records WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete record: %w", err)
	}
	return nil
}

// GetRecord returns one record by path, or nil when it is not indexed.
func (db *DB) GetRecord(path string) (*models.NoteRecord, error) {
	row := db.conn.QueryRow(`
		SELECT path, basename, extension, title, tags, aliases, properties,
			open_tasks, created, modified
		FROM records WHERE path = ?
	`, path)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("index: get record: %w", err)
	}
	return rec, nil
}

// ListRecords returns every indexed record. Order is unspecified; the
// sorting engine imposes the final order.
func (db *DB) ListRecords() ([]models.NoteRecord, error) {
	rows, err := db.conn.Query(`
		SELECT path, basename, extension, title, tags, aliases, properties,
			open_tasks, created, modified
		FROM records
	`)
	if err != nil {
		return nil, fmt.Errorf("index: list records: %w", err)
	}
	defer rows.Close()

	var out []models.NoteRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("index: scan record: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// AllChecksums returns the stored checksum for every indexed path.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM records`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.NoteRecord, error) {
	var rec models.NoteRecord
	var tagsJSON, aliasesJSON, propsJSON string
	if err := s.Scan(&rec.Path, &rec.Basename, &rec.Extension, &rec.Title,
		&tagsJSON, &aliasesJSON, &propsJSON,
		&rec.OpenTasks, &rec.Created, &rec.Modified); err != nil {
		return nil, err
	}
	_ = json.Unmarshal([]byte(tagsJSON), &rec.Tags)
	_ = json.Unmarshal([]byte(aliasesJSON), &rec.Aliases)
	_ = json.Unmarshal([]byte(propsJSON), &rec.Properties)
	if len(rec.Properties) == 0 {
		rec.Properties = nil
	}
	return &rec, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
