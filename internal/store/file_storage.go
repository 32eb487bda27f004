// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
)

// diskBlobStore is the filesystem implementation of [BlobStore]. Attachment
// bytes are written under a single upload directory with generated UUID
// names; the original file name lives only in the metadata row, so blob
// names never collide and never leak user input into the filesystem.
type diskBlobStore struct {
	uploadDir string
	names     *utils.UUIDGenerator
	logger    *logger.Logger
}

// NewDiskBlobStore constructs a [BlobStore] rooted at cfg.UploadDir,
// creating the directory if it does not exist yet.
func NewDiskBlobStore(cfg config.Files, logger *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o750); err != nil {
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}

	logger.Debug().Str("upload_dir", cfg.UploadDir).Msg("creating disk blob store")
	return &diskBlobStore{
		uploadDir: cfg.UploadDir,
		names:     utils.NewUUIDGenerator(),
		logger:    logger,
	}, nil
}

// Save streams src into a freshly named blob file. The returned storage
// path is relative to the upload directory and is what callers persist in
// the file metadata row. A partially written blob is removed on error.
func (d *diskBlobStore) Save(ctx context.Context, src io.Reader) (string, int64, error) {
	log := logger.FromContext(ctx)

	name := d.names.Generate()
	fullPath := filepath.Join(d.uploadDir, name)

	dst, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		log.Err(err).Str("func", "*diskBlobStore.Save").Msg("failed to create blob file")
		return "", 0, fmt.Errorf("error creating blob file: %w", err)
	}

	written, err := io.Copy(dst, src)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(fullPath)
		log.Err(err).Str("func", "*diskBlobStore.Save").Msg("failed to write blob file")
		return "", 0, fmt.Errorf("error writing blob file: %w", err)
	}

	return name, written, nil
}

// Open returns a reader over the blob stored at storagePath.
// A missing blob reports [ErrFileNotFound].
func (d *diskBlobStore) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(d.uploadDir, storagePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("error opening blob file: %w", err)
	}

	return f, nil
}

// Remove deletes the blob stored at storagePath. Removing an already
// missing blob is not an error, so cascade cleanups stay idempotent.
func (d *diskBlobStore) Remove(ctx context.Context, storagePath string) error {
	err := os.Remove(filepath.Join(d.uploadDir, storagePath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing blob file: %w", err)
	}

	return nil
}
