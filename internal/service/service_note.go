package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// noteService is the concrete implementation of NoteService. All operations
// are scoped to the owning user; the owner ID always comes from the
// verified session token, never from client-supplied input.
type noteService struct {
	noteRepository store.NoteRepository
	fileRepository store.FileRepository
	blobStore      store.BlobStore

	// uploadLimitBytes is the attachment size cutoff. Uploads above it are
	// ignored, not rejected: the note is created without an attachment.
	uploadLimitBytes int64

	logger *logger.Logger
}

// NewNoteService constructs a NoteService wired to the note and file
// repositories and the blob store, with the upload limit taken from cfg.
func NewNoteService(storages *store.Storages, cfg config.Files, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository:   storages.NoteRepository,
		fileRepository:   storages.FileRepository,
		blobStore:        storages.BlobStore,
		uploadLimitBytes: cfg.UploadLimitBytes,
		logger:           logger,
	}
}

// ListNotes returns all notes of one user in insertion order, each joined
// with its attachment metadata when present.
func (s *noteService) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	notes, err := s.noteRepository.GetNotesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notes failed: %w", err)
	}

	return notes, nil
}

// CreateNote creates a note with an optional attachment.
//
// The attachment step runs first: when upload is present and its size is
// within the limit, the bytes are written to the blob store and a metadata
// row is created before the note row references it (write-once reference;
// a crash in between leaves an orphan for SweepOrphanAttachments). A
// missing or oversized upload silently degrades to a note without an
// attachment; the note creation itself must not fail because of it.
//
// Returns ErrInvalidDataProvided when the title is empty.
func (s *noteService) CreateNote(ctx context.Context, userID int64, title, body string, upload *models.Upload) (models.Note, error) {
	log := logger.FromContext(ctx)

	if title == "" {
		log.Error().Int64("user_id", userID).Msg("note creation without title")
		return models.Note{}, ErrInvalidDataProvided
	}

	attachment, err := s.saveAttachment(ctx, userID, upload)
	if err != nil {
		return models.Note{}, err
	}

	note := models.Note{
		UserID:     userID,
		Title:      title,
		Body:       body,
		Attachment: attachment,
	}

	createdNote, err := s.noteRepository.CreateNote(ctx, note)
	if err != nil {
		return models.Note{}, fmt.Errorf("note creation failed: %w", err)
	}

	return createdNote, nil
}

// saveAttachment persists the uploaded bytes and metadata, or returns nil
// when the upload is absent or over the size limit.
func (s *noteService) saveAttachment(ctx context.Context, userID int64, upload *models.Upload) (*models.File, error) {
	log := logger.FromContext(ctx)

	if upload == nil {
		return nil, nil
	}
	if upload.Size > s.uploadLimitBytes {
		log.Info().
			Int64("user_id", userID).
			Str("file_name", upload.FileName).
			Int64("size", upload.Size).
			Int64("limit", s.uploadLimitBytes).
			Msg("attachment over size limit, note will be created without it")
		return nil, nil
	}

	// LimitReader guards against a client lying in the declared size.
	storagePath, written, err := s.blobStore.Save(ctx, io.LimitReader(upload.Content, s.uploadLimitBytes))
	if err != nil {
		return nil, fmt.Errorf("saving attachment bytes failed: %w", err)
	}

	file := models.File{
		UserID:      userID,
		FileName:    upload.FileName,
		StoragePath: storagePath,
		SizeLabel:   sizeLabel(written),
	}

	createdFile, err := s.fileRepository.CreateFile(ctx, file)
	if err != nil {
		// The metadata insert failed after the bytes were written; remove
		// the blob so it does not linger until the orphan sweep.
		if removeErr := s.blobStore.Remove(ctx, storagePath); removeErr != nil {
			log.Err(removeErr).Str("storage_path", storagePath).Msg("failed to remove blob after metadata insert failure")
		}
		return nil, fmt.Errorf("saving attachment metadata failed: %w", err)
	}

	return &createdFile, nil
}

// UpdateNote applies a done toggle or a cascade delete to one note.
// Delete takes precedence when both are signaled in the same request.
func (s *noteService) UpdateNote(ctx context.Context, userID, noteID int64, update models.NoteUpdate) error {
	if update.Delete {
		return s.deleteNote(ctx, userID, noteID)
	}

	if update.Done != nil {
		if err := s.noteRepository.SetDone(ctx, noteID, userID, *update.Done); err != nil {
			return fmt.Errorf("updating done flag failed: %w", err)
		}
		return nil
	}

	return ErrNoUpdateRequested
}

// deleteNote removes the note and cascades to its attachment: the note row
// goes first (it holds the reference), then the file metadata, then the
// stored bytes. A failure to remove the bytes is logged and swallowed;
// metadata deletion must never be blocked by blob cleanup.
func (s *noteService) deleteNote(ctx context.Context, userID, noteID int64) error {
	log := logger.FromContext(ctx)

	fileID, err := s.noteRepository.DeleteNote(ctx, noteID, userID)
	if err != nil {
		return fmt.Errorf("note deletion failed: %w", err)
	}

	if fileID == 0 {
		return nil
	}

	deletedFile, err := s.fileRepository.DeleteFile(ctx, fileID, userID)
	if err != nil {
		return fmt.Errorf("cascade deletion of attachment metadata failed: %w", err)
	}

	if err := s.blobStore.Remove(ctx, deletedFile.StoragePath); err != nil {
		log.Err(err).
			Int64("file_id", fileID).
			Str("storage_path", deletedFile.StoragePath).
			Msg("best-effort removal of attachment bytes failed")
	}

	return nil
}

// DownloadAttachment streams the attachment bytes and reports the original
// file name to suggest to the client. The lookup is scoped to the owner;
// an unknown or foreign file ID yields store.ErrFileNotFound.
func (s *noteService) DownloadAttachment(ctx context.Context, userID, fileID int64) (io.ReadCloser, string, error) {
	file, err := s.fileRepository.GetFileByID(ctx, fileID, userID)
	if err != nil {
		return nil, "", fmt.Errorf("attachment lookup failed: %w", err)
	}

	reader, err := s.blobStore.Open(ctx, file.StoragePath)
	if err != nil {
		return nil, "", fmt.Errorf("opening attachment bytes failed: %w", err)
	}

	return reader, file.FileName, nil
}

// SearchNotes performs the keyword search over one user's notes.
//
// An empty or all-whitespace query returns ErrEmptySearchQuery, the
// "no query entered" sentinel, distinct from a valid query with zero
// matches. Otherwise the query is split on whitespace and any token
// matching as a case-insensitive substring of title or body qualifies
// (OR semantics across tokens).
func (s *noteService) SearchNotes(ctx context.Context, userID int64, query string) ([]models.Note, error) {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return nil, ErrEmptySearchQuery
	}

	notes, err := s.noteRepository.SearchNotes(ctx, userID, keywords)
	if err != nil {
		return nil, fmt.Errorf("note search failed: %w", err)
	}

	return notes, nil
}

// SweepOrphanAttachments deletes attachment rows older than grace that no
// note references, then removes their bytes best-effort. Returns the number
// of metadata rows swept.
func (s *noteService) SweepOrphanAttachments(ctx context.Context, grace time.Duration) (int, error) {
	log := logger.FromContext(ctx)

	swept, err := s.fileRepository.SweepOrphanFiles(ctx, time.Now().Add(-grace))
	if err != nil {
		return 0, fmt.Errorf("orphan sweep failed: %w", err)
	}

	for _, file := range swept {
		if err := s.blobStore.Remove(ctx, file.StoragePath); err != nil {
			log.Err(err).
				Int64("file_id", file.FileID).
				Str("storage_path", file.StoragePath).
				Msg("best-effort removal of orphan bytes failed")
		}
	}

	return len(swept), nil
}

// sizeLabel renders a byte count as the human-readable string stored with
// the attachment metadata, e.g. "1.25 MB".
func sizeLabel(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/(1<<20))
}
