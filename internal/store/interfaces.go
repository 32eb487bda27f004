package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
)

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	// CreateUser inserts a new user and returns the persisted record with
	// server-assigned fields. Returns ErrEmailAlreadyExists on a duplicate
	// (case-normalized) email.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks up a user by its lower-cased email.
	// Returns ErrNoUserWasFound when no such user exists.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// UpdateCurrentToken replaces the user's stored session token.
	UpdateCurrentToken(ctx context.Context, userID int64, token string) error
}

// NoteRepository persists notes and runs ownership-scoped queries over them.
type NoteRepository interface {
	// CreateNote inserts a new note and returns it with server-assigned
	// NoteID and CreatedAt.
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)

	// GetNotesByOwner returns all notes of the given user in insertion
	// order, each joined with its attachment metadata when present.
	GetNotesByOwner(ctx context.Context, userID int64) ([]models.Note, error)

	// SetDone updates the done flag of a single note owned by userID.
	// Returns ErrNoteNotFound when the note does not exist or belongs to a
	// different user.
	SetDone(ctx context.Context, noteID, userID int64, done bool) error

	// DeleteNote removes a note owned by userID and reports the file ID the
	// note referenced (0 when it had no attachment).
	// Returns ErrNoteNotFound when the note does not exist or belongs to a
	// different user.
	DeleteNote(ctx context.Context, noteID, userID int64) (fileID int64, err error)

	// SearchNotes returns the owner's notes where any of the keyword tokens
	// appears as a case-insensitive substring of the title or the body.
	SearchNotes(ctx context.Context, userID int64, keywords []string) ([]models.Note, error)
}

// FileRepository persists attachment metadata.
type FileRepository interface {
	// CreateFile inserts attachment metadata and returns it with the
	// server-assigned FileID.
	CreateFile(ctx context.Context, file models.File) (models.File, error)

	// GetFileByID looks up attachment metadata owned by userID.
	// Returns ErrFileNotFound when no such row exists.
	GetFileByID(ctx context.Context, fileID, userID int64) (models.File, error)

	// DeleteFile removes attachment metadata owned by userID and returns
	// the deleted row so the caller can clean up the stored bytes.
	// Returns ErrFileNotFound when no such row exists.
	DeleteFile(ctx context.Context, fileID, userID int64) (models.File, error)

	// SweepOrphanFiles deletes file rows created before cutoff that no note
	// references and returns them so the caller can remove the bytes.
	// Orphans appear when a crash lands between attachment and note
	// creation; the sweep is an explicit maintenance operation.
	SweepOrphanFiles(ctx context.Context, cutoff time.Time) ([]models.File, error)
}

// BlobStore reads and writes the raw attachment bytes referenced by
// [models.File.StoragePath].
type BlobStore interface {
	// Save streams src into a newly named blob and returns its storage path
	// together with the number of bytes written.
	Save(ctx context.Context, src io.Reader) (storagePath string, size int64, err error)

	// Open returns a reader over the blob at storagePath.
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Remove deletes the blob at storagePath.
	Remove(ctx context.Context, storagePath string) error
}
