package service

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
)

// AuthService covers registration, login, and the session token lifecycle.
type AuthService interface {
	// RegisterUser creates a new account, issues a session token, and
	// persists it as the user's current token. Registration doubles as a
	// login; the caller only needs to set the session cookies.
	RegisterUser(ctx context.Context, name, email, password string) (models.User, models.Token, error)

	// Login authenticates an existing user and issues a fresh session
	// token, replacing any previously stored one.
	Login(ctx context.Context, email, password string) (models.User, models.Token, error)

	// ParseToken validates and decodes a raw session token string.
	// Every validation failure is normalised to ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// RefreshToken re-issues a token for the same identity with a fresh
	// expiry window, implementing the sliding session expiration.
	RefreshToken(ctx context.Context, token models.Token) (models.Token, error)
}

// NoteService covers ownership-scoped note and attachment operations.
type NoteService interface {
	// ListNotes returns all notes of one user in insertion order, joined
	// with attachment metadata.
	ListNotes(ctx context.Context, userID int64) ([]models.Note, error)

	// CreateNote creates a note with an optional attachment. An absent or
	// oversized upload degrades silently to a note without attachment.
	CreateNote(ctx context.Context, userID int64, title, body string, upload *models.Upload) (models.Note, error)

	// UpdateNote applies a done toggle or a cascade delete to one note.
	// Delete takes precedence when both are requested.
	UpdateNote(ctx context.Context, userID, noteID int64, update models.NoteUpdate) error

	// DownloadAttachment streams the attachment bytes together with the
	// original file name to suggest to the client.
	DownloadAttachment(ctx context.Context, userID, fileID int64) (io.ReadCloser, string, error)

	// SearchNotes performs the keyword search over the user's notes.
	// Returns ErrEmptySearchQuery for an empty or all-whitespace query.
	SearchNotes(ctx context.Context, userID int64, query string) ([]models.Note, error)

	// SweepOrphanAttachments removes attachment rows and bytes older than
	// grace that no note references. Explicit maintenance operation; the
	// server never runs it in the background.
	SweepOrphanAttachments(ctx context.Context, grace time.Duration) (int, error)
}
