package index

import (
	"log/slog"
	"strings"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/parser"
	"github.com/starford/raido/internal/storage"
)

// BuildRecord turns one vault file into its indexed record. Markdown
// files contribute frontmatter metadata; every other file indexes with
// identity and timestamps only.
func BuildRecord(meta models.FileMetadata, data []byte) (models.NoteRecord, error) {
	base, ext := models.SplitName(meta.Path)
	rec := models.NoteRecord{
		Path:      meta.Path,
		Basename:  base,
		Extension: ext,
		Created:   meta.Created,
		Modified:  meta.Modified,
	}
	if !strings.EqualFold(ext, "md") {
		return rec, nil
	}

	res, err := parser.Parse(data)
	if err != nil {
		return rec, err
	}
	rec.Title = res.Title
	rec.Tags = res.Tags
	rec.Aliases = res.Aliases
	rec.Properties = res.Properties
	rec.OpenTasks = res.OpenTasks
	if res.Created != nil {
		rec.Created = res.Created.UnixMilli()
	}
	return rec, nil
}

// Sync walks the vault and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, m, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteRecord(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile builds the record for one file and upserts it.
func indexFile(db *DB, meta models.FileMetadata, data []byte) error {
	rec, err := BuildRecord(meta, data)
	if err != nil {
		return err
	}
	return db.UpsertRecord(rec, meta.Checksum)
}
