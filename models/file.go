// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "io"

// File holds the metadata of a single uploaded attachment.
//
// The actual bytes live in the blob store under StoragePath; the database
// row carries only lightweight metadata. A file is owned by exactly one
// user and is destroyed as a cascade of deleting the referencing note.
type File struct {
	// FileID is the internal unique identifier of the attachment.
	FileID int64 `json:"id"`

	// UserID is the identifier of the owning user.
	UserID int64 `json:"-"`

	// FileName is the original name of the uploaded file, used as the
	// suggested name when the attachment is downloaded.
	FileName string `json:"file_name"`

	// StoragePath locates the stored bytes inside the blob store.
	// It is an internal detail and is never serialized.
	StoragePath string `json:"-"`

	// SizeLabel is a human-readable size computed at upload time
	// (e.g. "1.25 MB").
	SizeLabel string `json:"size"`
}

// TableName returns the name of the database table
// associated with the File model.
func (f File) TableName() string {
	return "files"
}

// Upload is an incoming multipart file as seen by the service layer.
// Size is the declared size in bytes; Content streams the payload.
type Upload struct {
	FileName string
	Size     int64
	Content  io.Reader
}
