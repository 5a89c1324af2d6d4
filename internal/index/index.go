package index

import "github.com/starford/raido/internal/models"

// RecordSource is the read side of the index: the capability search and
// listing consume. Depend on this rather than *DB to facilitate testing.
type RecordSource interface {
	ListRecords() ([]models.NoteRecord, error)
	GetRecord(path string) (*models.NoteRecord, error)
}

// RecordIndex is the full read/write index interface.
type RecordIndex interface {
	RecordSource
	UpsertRecord(rec models.NoteRecord, checksum string) error
	DeleteRecord(path string) error
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies RecordIndex at compile time.
var _ RecordIndex = (*DB)(nil)
