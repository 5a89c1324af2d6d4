// Package models defines the domain types for Raido.
package models

import (
	"path"
	"strings"
)

// Property is one frontmatter property of a note. The map key in
// NoteRecord.Properties is the case-folded form; Key keeps the casing
// as it appeared in the file, for display.
type Property struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// NoteRecord is the indexed representation of one vault file. Timestamps
// are epoch milliseconds. Tags keep their original casing; comparisons
// are case-insensitive everywhere.
type NoteRecord struct {
	Path       string              `json:"path"`
	Basename   string              `json:"basename"`
	Extension  string              `json:"extension"`
	Title      string              `json:"title,omitempty"`
	Aliases    []string            `json:"aliases,omitempty"`
	Created    int64               `json:"created"`
	Modified   int64               `json:"modified"`
	Tags       []string            `json:"tags,omitempty"`
	Properties map[string]Property `json:"properties,omitempty"`
	OpenTasks  int                 `json:"open_tasks"`
}

// DisplayName returns the frontmatter title when present, otherwise the
// basename without its extension.
func (r *NoteRecord) DisplayName() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Basename
}

// Folder returns the directory portion of the record's vault path, ""
// for root-level files.
func (r *NoteRecord) Folder() string {
	dir := path.Dir(r.Path)
	if dir == "." {
		return ""
	}
	return dir
}

// Property looks up a frontmatter property by case-insensitive key.
func (r *NoteRecord) Property(key string) (Property, bool) {
	p, ok := r.Properties[strings.ToLower(key)]
	return p, ok
}

// FileMetadata is a lightweight listing entry returned by the storage
// provider.
type FileMetadata struct {
	Path     string `json:"path"`
	Checksum string `json:"checksum"`
	Created  int64  `json:"created"`
	Modified int64  `json:"modified"`
}

// SplitName breaks a vault path into basename (without extension) and
// extension (without the dot). Dotfiles have no extension.
func SplitName(p string) (base, ext string) {
	name := path.Base(p)
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}
