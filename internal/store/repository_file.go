package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// fileRepository is the PostgreSQL-backed implementation of [FileRepository].
// It manages attachment metadata rows in the "files" table; the bytes
// themselves live in the [BlobStore].
type fileRepository struct {
	*DB
	logger *logger.Logger
}

// NewFileRepository constructs a [FileRepository] backed by the provided
// database connection and logger.
func NewFileRepository(db *DB, logger *logger.Logger) FileRepository {
	logger.Debug().Msg("creating file repository")
	return &fileRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateFile inserts attachment metadata and returns the record with its
// server-assigned FileID.
func (r *fileRepository) CreateFile(ctx context.Context, file models.File) (models.File, error) {
	log := logger.FromContext(ctx)

	row := r.QueryRowContext(ctx, createFile, file.UserID, file.FileName, file.StoragePath, file.SizeLabel)
	if err := row.Scan(&file.FileID); err != nil {
		log.Err(err).
			Str("func", "*fileRepository.CreateFile").
			Int64("user_id", file.UserID).
			Str("file_name", file.FileName).
			Msg("failed to insert file metadata")
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return file, nil
}

// GetFileByID retrieves attachment metadata scoped to its owner.
func (r *fileRepository) GetFileByID(ctx context.Context, fileID, userID int64) (models.File, error) {
	log := logger.FromContext(ctx)

	var file models.File
	row := r.QueryRowContext(ctx, findFileByID, fileID, userID)
	if err := row.Scan(&file.FileID, &file.UserID, &file.FileName, &file.StoragePath, &file.SizeLabel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.File{}, ErrFileNotFound
		}

		log.Err(err).
			Str("func", "*fileRepository.GetFileByID").
			Int64("file_id", fileID).
			Int64("user_id", userID).
			Msg("failed to look up file metadata")
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return file, nil
}

// DeleteFile removes attachment metadata scoped to its owner and returns
// the deleted row so the caller can remove the stored bytes.
func (r *fileRepository) DeleteFile(ctx context.Context, fileID, userID int64) (models.File, error) {
	log := logger.FromContext(ctx)

	var file models.File
	row := r.QueryRowContext(ctx, deleteFile, fileID, userID)
	if err := row.Scan(&file.FileID, &file.UserID, &file.FileName, &file.StoragePath, &file.SizeLabel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.File{}, ErrFileNotFound
		}

		log.Err(err).
			Str("func", "*fileRepository.DeleteFile").
			Int64("file_id", fileID).
			Int64("user_id", userID).
			Msg("failed to delete file metadata")
		return models.File{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return file, nil
}

// SweepOrphanFiles deletes file rows older than cutoff that no note
// references and returns them for byte cleanup. Orphans can only appear
// when a crash separates attachment creation from note creation; the grace
// cutoff keeps in-flight uploads out of the sweep.
func (r *fileRepository) SweepOrphanFiles(ctx context.Context, cutoff time.Time) ([]models.File, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, sweepOrphanFiles, cutoff)
	if err != nil {
		log.Err(err).Str("func", "*fileRepository.SweepOrphanFiles").Msg("failed to sweep orphan files")
		return nil, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	defer rows.Close()

	swept := make([]models.File, 0, 8)
	for rows.Next() {
		var file models.File
		if scanErr := rows.Scan(&file.FileID, &file.UserID, &file.FileName, &file.StoragePath, &file.SizeLabel); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		swept = append(swept, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return swept, nil
}
