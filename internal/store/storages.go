package store

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// Storages bundles every persistence component the service layer depends on.
type Storages struct {
	UserRepository UserRepository
	NoteRepository NoteRepository
	FileRepository FileRepository
	BlobStore      BlobStore
}

// NewStorages connects to PostgreSQL, prepares the blob store directory,
// and wires up all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, *DB, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, nil, err
	}

	blobStore, err := NewDiskBlobStore(cfg.Files, logger)
	if err != nil {
		return nil, nil, err
	}

	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		NoteRepository: NewNoteRepository(db, logger),
		FileRepository: NewFileRepository(db, logger),
		BlobStore:      blobStore,
	}, db, nil
}
