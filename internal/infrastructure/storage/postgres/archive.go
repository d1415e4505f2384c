package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	"makhzan/internal/core/id"
)

// ImportFile is a committed import's source workbook, kept for
// provenance. The raw bytes are zstd-compressed at rest.
type ImportFile struct {
	ID          id.ID     `db:"id"`
	FileName    string    `db:"file_name"`
	SheetName   string    `db:"sheet_name"`
	RowCount    int       `db:"row_count"`
	SizeBytes   int       `db:"size_bytes"`
	ContentZstd []byte    `db:"content_zstd"`
	CreatedAt   time.Time `db:"created_at"`
}

var importFileColumns = []string{
	"id", "file_name", "sheet_name", "row_count", "size_bytes", "content_zstd", "created_at",
}

// ArchiveStore persists source workbooks for committed imports.
type ArchiveStore struct {
	txm     *TxManager
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewArchiveStore creates a new archive store.
func NewArchiveStore(txm *TxManager) (*ArchiveStore, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &ArchiveStore{
		txm:     txm,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Save compresses and stores one workbook alongside its import metadata.
func (s *ArchiveStore) Save(ctx context.Context, fileName, sheetName string, rowCount int, content []byte) (*ImportFile, error) {
	f := &ImportFile{
		ID:          id.New(),
		FileName:    fileName,
		SheetName:   sheetName,
		RowCount:    rowCount,
		SizeBytes:   len(content),
		ContentZstd: s.encoder.EncodeAll(content, nil),
		CreatedAt:   time.Now().UTC(),
	}

	sql, args, err := builder().
		Insert(importFileTable).
		Columns(importFileColumns...).
		Values(f.ID, f.FileName, f.SheetName, f.RowCount, f.SizeBytes, f.ContentZstd, f.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	if _, err := s.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("insert import file: %w", err)
	}
	return f, nil
}

// Get returns an archived file's metadata and decompressed content.
func (s *ArchiveStore) Get(ctx context.Context, fileID id.ID) (*ImportFile, []byte, error) {
	sql, args, err := builder().
		Select(importFileColumns...).
		From(importFileTable).
		Where(squirrel.Eq{"id": fileID}).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("build query: %w", err)
	}

	var f ImportFile
	err = pgxscan.Get(ctx, s.txm.GetQuerier(ctx), &f, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("get import file: %w", err)
	}

	content, err := s.decoder.DecodeAll(f.ContentZstd, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("decompress import file: %w", err)
	}
	return &f, content, nil
}

// List returns archived file metadata, newest first, without content.
func (s *ArchiveStore) List(ctx context.Context) ([]*ImportFile, error) {
	sql, args, err := builder().
		Select("id", "file_name", "sheet_name", "row_count", "size_bytes", "created_at").
		From(importFileTable).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []*ImportFile
	if err := pgxscan.Select(ctx, s.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list import files: %w", err)
	}
	return out, nil
}
