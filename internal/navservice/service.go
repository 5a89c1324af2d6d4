// Package navservice coordinates storage, index, query evaluation, and
// sorting behind a single service facade.
package navservice

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/checksum"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/query"
	"github.com/starford/raido/internal/sorting"
	"github.com/starford/raido/internal/storage"
)

// NoteDetail is the full representation of a note.
type NoteDetail struct {
	models.NoteRecord
	Content  string `json:"content"`
	Checksum string `json:"checksum"`
}

// SearchRequest describes one search invocation.
type SearchRequest struct {
	Query  string
	Sort   sorting.Spec
	Limit  int
	Offset int
}

// SearchResult carries one page of matches plus the pre-pagination total.
type SearchResult struct {
	Records []models.NoteRecord `json:"records"`
	Total   int                 `json:"total"`
}

// Service coordinates vault operations.
type Service struct {
	store  storage.Provider
	db     index.RecordIndex
	parser *query.Parser
	eval   *query.Evaluator
}

// NewService creates a new navigator service. parser and eval may be nil,
// in which case defaults are used.
func NewService(store storage.Provider, db index.RecordIndex, parser *query.Parser, eval *query.Evaluator) *Service {
	if parser == nil {
		parser = query.NewParser()
	}
	if eval == nil {
		eval = query.NewEvaluator()
	}
	return &Service{store: store, db: db, parser: parser, eval: eval}
}

// Search filters the indexed records with the parsed query, sorts them,
// and returns the requested page.
func (s *Service) Search(_ context.Context, req SearchRequest) (*SearchResult, error) {
	if err := req.Sort.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidSort, err)
	}

	records, err := s.db.ListRecords()
	if err != nil {
		return nil, err
	}

	pred := s.parser.Parse(req.Query)
	matched := records[:0]
	for i := range records {
		if s.eval.Matches(pred, &records[i]) {
			matched = append(matched, records[i])
		}
	}

	sorting.Sort(matched, req.Sort)

	total := len(matched)
	if req.Offset > 0 {
		if req.Offset >= total {
			matched = nil
		} else {
			matched = matched[req.Offset:]
		}
	}
	if req.Limit > 0 && req.Limit < len(matched) {
		matched = matched[:req.Limit]
	}
	if matched == nil {
		matched = []models.NoteRecord{}
	}
	return &SearchResult{Records: matched, Total: total}, nil
}

// GetNote reads a note from storage and returns it with its indexed
// metadata.
func (s *Service) GetNote(_ context.Context, path string) (*NoteDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildDetail(path, data)
}

// CreateNote writes a new note and indexes it.
func (s *Service) CreateNote(_ context.Context, path string, content []byte) (*NoteDetail, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildDetail(path, content)
}

// UpdateNote writes updated content with optimistic concurrency.
func (s *Service) UpdateNote(_ context.Context, path string, content []byte, ifMatch string) (*NoteDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexFile(path, content); err != nil {
		return nil, err
	}
	return s.buildDetail(path, content)
}

// DeleteNote removes a note from storage and index.
func (s *Service) DeleteNote(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.db.DeleteRecord(path)
}

// MoveNote renames a note within the vault and reindexes it under the
// new path.
func (s *Service) MoveNote(_ context.Context, oldPath, newPath string) (*NoteDetail, error) {
	if _, err := s.store.Read(newPath); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Move(oldPath, newPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if err := s.db.DeleteRecord(oldPath); err != nil {
		return nil, err
	}
	data, err := s.store.Read(newPath)
	if err != nil {
		return nil, err
	}
	if err := s.IndexFile(newPath, data); err != nil {
		return nil, err
	}
	return s.buildDetail(newPath, data)
}

// IndexFile builds the record for one file and upserts it into the index.
// Exported so that sync and watcher integrations can reuse it.
func (s *Service) IndexFile(path string, data []byte) error {
	meta, err := s.store.Stat(path)
	if err != nil {
		return err
	}
	meta.Checksum = checksum.Sum(data)
	rec, err := index.BuildRecord(meta, data)
	if err != nil {
		return err
	}
	return s.db.UpsertRecord(rec, meta.Checksum)
}

// buildDetail constructs a NoteDetail from raw data without re-reading
// the file.
func (s *Service) buildDetail(path string, data []byte) (*NoteDetail, error) {
	meta, err := s.store.Stat(path)
	if err != nil {
		return nil, err
	}
	rec, err := index.BuildRecord(meta, data)
	if err != nil {
		return nil, err
	}
	return &NoteDetail{
		NoteRecord: rec,
		Content:    string(data),
		Checksum:   checksum.Sum(data),
	}, nil
}
