// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.NoteRepository
// ─────────────────────────────────────────────

type mockNoteRepository struct {
	createNoteFn      func(ctx context.Context, note models.Note) (models.Note, error)
	getNotesByOwnerFn func(ctx context.Context, userID int64) ([]models.Note, error)
	setDoneFn         func(ctx context.Context, noteID, userID int64, done bool) error
	deleteNoteFn      func(ctx context.Context, noteID, userID int64) (int64, error)
	searchNotesFn     func(ctx context.Context, userID int64, keywords []string) ([]models.Note, error)
}

func (m *mockNoteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if m.createNoteFn != nil {
		return m.createNoteFn(ctx, note)
	}
	note.NoteID = 1
	return note, nil
}

func (m *mockNoteRepository) GetNotesByOwner(ctx context.Context, userID int64) ([]models.Note, error) {
	if m.getNotesByOwnerFn != nil {
		return m.getNotesByOwnerFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockNoteRepository) SetDone(ctx context.Context, noteID, userID int64, done bool) error {
	if m.setDoneFn != nil {
		return m.setDoneFn(ctx, noteID, userID, done)
	}
	return nil
}

func (m *mockNoteRepository) DeleteNote(ctx context.Context, noteID, userID int64) (int64, error) {
	if m.deleteNoteFn != nil {
		return m.deleteNoteFn(ctx, noteID, userID)
	}
	return 0, nil
}

func (m *mockNoteRepository) SearchNotes(ctx context.Context, userID int64, keywords []string) ([]models.Note, error) {
	if m.searchNotesFn != nil {
		return m.searchNotesFn(ctx, userID, keywords)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.FileRepository
// ─────────────────────────────────────────────

type mockFileRepository struct {
	createFileFn       func(ctx context.Context, file models.File) (models.File, error)
	getFileByIDFn      func(ctx context.Context, fileID, userID int64) (models.File, error)
	deleteFileFn       func(ctx context.Context, fileID, userID int64) (models.File, error)
	sweepOrphanFilesFn func(ctx context.Context, cutoff time.Time) ([]models.File, error)
}

func (m *mockFileRepository) CreateFile(ctx context.Context, file models.File) (models.File, error) {
	if m.createFileFn != nil {
		return m.createFileFn(ctx, file)
	}
	file.FileID = 1
	return file, nil
}

func (m *mockFileRepository) GetFileByID(ctx context.Context, fileID, userID int64) (models.File, error) {
	if m.getFileByIDFn != nil {
		return m.getFileByIDFn(ctx, fileID, userID)
	}
	return models.File{}, store.ErrFileNotFound
}

func (m *mockFileRepository) DeleteFile(ctx context.Context, fileID, userID int64) (models.File, error) {
	if m.deleteFileFn != nil {
		return m.deleteFileFn(ctx, fileID, userID)
	}
	return models.File{}, store.ErrFileNotFound
}

func (m *mockFileRepository) SweepOrphanFiles(ctx context.Context, cutoff time.Time) ([]models.File, error) {
	if m.sweepOrphanFilesFn != nil {
		return m.sweepOrphanFilesFn(ctx, cutoff)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.BlobStore
// ─────────────────────────────────────────────

type mockBlobStore struct {
	saveFn   func(ctx context.Context, src io.Reader) (string, int64, error)
	openFn   func(ctx context.Context, storagePath string) (io.ReadCloser, error)
	removeFn func(ctx context.Context, storagePath string) error
}

func (m *mockBlobStore) Save(ctx context.Context, src io.Reader) (string, int64, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, src)
	}
	written, err := io.Copy(io.Discard, src)
	return "blob-name", written, err
}

func (m *mockBlobStore) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	if m.openFn != nil {
		return m.openFn(ctx, storagePath)
	}
	return io.NopCloser(strings.NewReader("")), nil
}

func (m *mockBlobStore) Remove(ctx context.Context, storagePath string) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, storagePath)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

const testUploadLimit = 5_000_000

func newTestNoteService(notes *mockNoteRepository, files *mockFileRepository, blobs *mockBlobStore) *noteService {
	return &noteService{
		noteRepository:   notes,
		fileRepository:   files,
		blobStore:        blobs,
		uploadLimitBytes: testUploadLimit,
		logger:           logger.Nop(),
	}
}

func testUpload(name, content string) *models.Upload {
	return &models.Upload{
		FileName: name,
		Size:     int64(len(content)),
		Content:  strings.NewReader(content),
	}
}

// ─────────────────────────────────────────────
// CreateNote
// ─────────────────────────────────────────────

func TestCreateNote_WithoutAttachment(t *testing.T) {
	notes := &mockNoteRepository{
		createNoteFn: func(_ context.Context, note models.Note) (models.Note, error) {
			assert.Nil(t, note.Attachment)
			note.NoteID = 10
			return note, nil
		},
	}
	svc := newTestNoteService(notes, &mockFileRepository{}, &mockBlobStore{})

	created, err := svc.CreateNote(context.Background(), 42, "groceries", "milk", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.NoteID)
	assert.Equal(t, int64(42), created.UserID)
}

func TestCreateNote_EmptyTitle(t *testing.T) {
	svc := newTestNoteService(&mockNoteRepository{}, &mockFileRepository{}, &mockBlobStore{})

	_, err := svc.CreateNote(context.Background(), 42, "", "body", nil)
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCreateNote_WithAttachment(t *testing.T) {
	var savedBytes string
	blobs := &mockBlobStore{
		saveFn: func(_ context.Context, src io.Reader) (string, int64, error) {
			data, err := io.ReadAll(src)
			require.NoError(t, err)
			savedBytes = string(data)
			return "blob-name", int64(len(data)), nil
		},
	}
	files := &mockFileRepository{
		createFileFn: func(_ context.Context, file models.File) (models.File, error) {
			assert.Equal(t, int64(42), file.UserID)
			assert.Equal(t, "report.pdf", file.FileName)
			assert.Equal(t, "blob-name", file.StoragePath)
			file.FileID = 5
			return file, nil
		},
	}
	notes := &mockNoteRepository{
		createNoteFn: func(_ context.Context, note models.Note) (models.Note, error) {
			require.NotNil(t, note.Attachment)
			assert.Equal(t, int64(5), note.Attachment.FileID)
			note.NoteID = 10
			return note, nil
		},
	}
	svc := newTestNoteService(notes, files, blobs)

	created, err := svc.CreateNote(context.Background(), 42, "report", "see attached", testUpload("report.pdf", "pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", savedBytes)
	require.NotNil(t, created.Attachment)
}

// TestCreateNote_OversizedAttachmentIgnored verifies that an upload over
// the size limit never fails note creation: the note is stored without an
// attachment and no bytes are written.
func TestCreateNote_OversizedAttachmentIgnored(t *testing.T) {
	blobs := &mockBlobStore{
		saveFn: func(_ context.Context, _ io.Reader) (string, int64, error) {
			t.Fatal("blob store must not be touched for an oversized upload")
			return "", 0, nil
		},
	}
	notes := &mockNoteRepository{
		createNoteFn: func(_ context.Context, note models.Note) (models.Note, error) {
			assert.Nil(t, note.Attachment)
			return note, nil
		},
	}
	svc := newTestNoteService(notes, &mockFileRepository{}, blobs)

	oversized := &models.Upload{
		FileName: "huge.bin",
		Size:     testUploadLimit + 1,
		Content:  strings.NewReader("does not matter"),
	}

	_, err := svc.CreateNote(context.Background(), 42, "big file", "", oversized)
	require.NoError(t, err)
}

// TestCreateNote_MetadataFailureRemovesBlob verifies that a failed
// metadata insert cleans up the already written bytes.
func TestCreateNote_MetadataFailureRemovesBlob(t *testing.T) {
	var removedPath string
	blobs := &mockBlobStore{
		removeFn: func(_ context.Context, storagePath string) error {
			removedPath = storagePath
			return nil
		},
	}
	files := &mockFileRepository{
		createFileFn: func(_ context.Context, _ models.File) (models.File, error) {
			return models.File{}, errors.New("db is down")
		},
	}
	svc := newTestNoteService(&mockNoteRepository{}, files, blobs)

	_, err := svc.CreateNote(context.Background(), 42, "report", "", testUpload("report.pdf", "bytes"))
	require.Error(t, err)
	assert.Equal(t, "blob-name", removedPath)
}

// ─────────────────────────────────────────────
// ListNotes
// ─────────────────────────────────────────────

func TestListNotes_Delegates(t *testing.T) {
	expected := []models.Note{{NoteID: 1, Title: "a"}, {NoteID: 2, Title: "b"}}
	notes := &mockNoteRepository{
		getNotesByOwnerFn: func(_ context.Context, userID int64) ([]models.Note, error) {
			assert.Equal(t, int64(42), userID)
			return expected, nil
		},
	}
	svc := newTestNoteService(notes, &mockFileRepository{}, &mockBlobStore{})

	got, err := svc.ListNotes(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

// ─────────────────────────────────────────────
// UpdateNote
// ─────────────────────────────────────────────

func TestUpdateNote_SetDone(t *testing.T) {
	var gotDone bool
	notes := &mockNoteRepository{
		setDoneFn: func(_ context.Context, noteID, userID int64, done bool) error {
			assert.Equal(t, int64(10), noteID)
			assert.Equal(t, int64(42), userID)
			gotDone = done
			return nil
		},
	}
	svc := newTestNoteService(notes, &mockFileRepository{}, &mockBlobStore{})

	done := true
	err := svc.UpdateNote(context.Background(), 42, 10, models.NoteUpdate{Done: &done})
	require.NoError(t, err)
	assert.True(t, gotDone)
}

func TestUpdateNote_NothingRequested(t *testing.T) {
	svc := newTestNoteService(&mockNoteRepository{}, &mockFileRepository{}, &mockBlobStore{})

	err := svc.UpdateNote(context.Background(), 42, 10, models.NoteUpdate{})
	assert.ErrorIs(t, err, ErrNoUpdateRequested)
}

// TestUpdateNote_DeleteTakesPrecedence verifies that a request carrying
// both the delete and the done signal performs the deletion.
func TestUpdateNote_DeleteTakesPrecedence(t *testing.T) {
	deleted := false
	notes := &mockNoteRepository{
		deleteNoteFn: func(_ context.Context, _, _ int64) (int64, error) {
			deleted = true
			return 0, nil
		},
		setDoneFn: func(_ context.Context, _, _ int64, _ bool) error {
			t.Fatal("done update must not run when delete is requested")
			return nil
		},
	}
	svc := newTestNoteService(notes, &mockFileRepository{}, &mockBlobStore{})

	done := true
	err := svc.UpdateNote(context.Background(), 42, 10, models.NoteUpdate{Done: &done, Delete: true})
	require.NoError(t, err)
	assert.True(t, deleted)
}

// TestUpdateNote_DeleteCascades verifies the full cascade: note row, then
// attachment metadata, then stored bytes.
func TestUpdateNote_DeleteCascades(t *testing.T) {
	notes := &mockNoteRepository{
		deleteNoteFn: func(_ context.Context, noteID, userID int64) (int64, error) {
			assert.Equal(t, int64(10), noteID)
			assert.Equal(t, int64(42), userID)
			return 5, nil
		},
	}
	files := &mockFileRepository{
		deleteFileFn: func(_ context.Context, fileID, userID int64) (models.File, error) {
			assert.Equal(t, int64(5), fileID)
			assert.Equal(t, int64(42), userID)
			return models.File{FileID: 5, StoragePath: "blob-name"}, nil
		},
	}
	var removedPath string
	blobs := &mockBlobStore{
		removeFn: func(_ context.Context, storagePath string) error {
			removedPath = storagePath
			return nil
		},
	}
	svc := newTestNoteService(notes, files, blobs)

	err := svc.UpdateNote(context.Background(), 42, 10, models.NoteUpdate{Delete: true})
	require.NoError(t, err)
	assert.Equal(t, "blob-name", removedPath)
}

// TestUpdateNote_DeleteWithoutAttachment verifies that deleting a note with
// no attachment never touches the file layer.
func TestUpdateNote_DeleteWithoutAttachment(t *testing.T) {
	notes := &mockNoteRepository{
		deleteNoteFn: func(_ context.Context, _, _ int64) (int64, error) {
			return 0, nil
		},
	}
	files := &mockFileRepository{
		deleteFileFn: func(_ context.Context, _, _ int64) (models.File, error) {
			t.Fatal("file metadata must not be touched for a note without attachment")
			return models.File{}, nil
		},
	}
	svc := newTestNoteService(notes, files, &mockBlobStore{})

	err := svc.UpdateNote(context.Background(), 42, 10, models.NoteUpdate{Delete: true})
	require.NoError(t, err)
}

// TestUpdateNote_DeleteSwallowsBlobFailure verifies that a failing byte
// removal does not fail the delete: metadata is already gone.
func TestUpdateNote_DeleteSwallowsBlobFailure(t *testing.T) {
	notes := &mockNoteRepository{
		deleteNoteFn: func(_ context.Context, _, _ int64) (int64, error) {
			return 5, nil
		},
	}
	files := &mockFileRepository{
		deleteFileFn: func(_ context.Context, _, _ int64) (models.File, error) {
			return models.File{FileID: 5, StoragePath: "blob-name"}, nil
		},
	}
	blobs := &mockBlobStore{
		removeFn: func(_ context.Context, _ string) error {
			return errors.New("disk error")
		},
	}
	svc := newTestNoteService(notes, files, blobs)

	err := svc.UpdateNote(context.Background(), 42, 10, models.NoteUpdate{Delete: true})
	assert.NoError(t, err)
}

func TestUpdateNote_DeleteUnknownNote(t *testing.T) {
	notes := &mockNoteRepository{
		deleteNoteFn: func(_ context.Context, _, _ int64) (int64, error) {
			return 0, store.ErrNoteNotFound
		},
	}
	svc := newTestNoteService(notes, &mockFileRepository{}, &mockBlobStore{})

	err := svc.UpdateNote(context.Background(), 42, 999, models.NoteUpdate{Delete: true})
	assert.ErrorIs(t, err, store.ErrNoteNotFound)
}

// ─────────────────────────────────────────────
// DownloadAttachment
// ─────────────────────────────────────────────

func TestDownloadAttachment_Success(t *testing.T) {
	files := &mockFileRepository{
		getFileByIDFn: func(_ context.Context, fileID, userID int64) (models.File, error) {
			assert.Equal(t, int64(5), fileID)
			assert.Equal(t, int64(42), userID)
			return models.File{FileID: 5, FileName: "report.pdf", StoragePath: "blob-name"}, nil
		},
	}
	blobs := &mockBlobStore{
		openFn: func(_ context.Context, storagePath string) (io.ReadCloser, error) {
			assert.Equal(t, "blob-name", storagePath)
			return io.NopCloser(strings.NewReader("pdf bytes")), nil
		},
	}
	svc := newTestNoteService(&mockNoteRepository{}, files, blobs)

	reader, fileName, err := svc.DownloadAttachment(context.Background(), 42, 5)
	require.NoError(t, err)
	defer reader.Close()

	assert.Equal(t, "report.pdf", fileName)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(data))
}

func TestDownloadAttachment_NotFound(t *testing.T) {
	svc := newTestNoteService(&mockNoteRepository{}, &mockFileRepository{}, &mockBlobStore{})

	_, _, err := svc.DownloadAttachment(context.Background(), 42, 999)
	assert.ErrorIs(t, err, store.ErrFileNotFound)
}

// ─────────────────────────────────────────────
// SearchNotes
// ─────────────────────────────────────────────

func TestSearchNotes_SplitsKeywords(t *testing.T) {
	var gotKeywords []string
	notes := &mockNoteRepository{
		searchNotesFn: func(_ context.Context, userID int64, keywords []string) ([]models.Note, error) {
			assert.Equal(t, int64(42), userID)
			gotKeywords = keywords
			return []models.Note{{NoteID: 1}}, nil
		},
	}
	svc := newTestNoteService(notes, &mockFileRepository{}, &mockBlobStore{})

	found, err := svc.SearchNotes(context.Background(), 42, "  milk   eggs ")
	require.NoError(t, err)
	assert.Equal(t, []string{"milk", "eggs"}, gotKeywords)
	assert.Len(t, found, 1)
}

// TestSearchNotes_EmptyQuery verifies the "no query entered" sentinel for
// empty and all-whitespace input.
func TestSearchNotes_EmptyQuery(t *testing.T) {
	svc := newTestNoteService(&mockNoteRepository{}, &mockFileRepository{}, &mockBlobStore{})

	for _, query := range []string{"", "   ", "\t\n"} {
		_, err := svc.SearchNotes(context.Background(), 42, query)
		assert.ErrorIs(t, err, ErrEmptySearchQuery, "query %q", query)
	}
}

// TestSearchNotes_NoMatches verifies that zero matches is a valid result,
// distinct from the empty-query sentinel.
func TestSearchNotes_NoMatches(t *testing.T) {
	notes := &mockNoteRepository{
		searchNotesFn: func(_ context.Context, _ int64, _ []string) ([]models.Note, error) {
			return []models.Note{}, nil
		},
	}
	svc := newTestNoteService(notes, &mockFileRepository{}, &mockBlobStore{})

	found, err := svc.SearchNotes(context.Background(), 42, "nothing-matches")
	require.NoError(t, err)
	assert.Empty(t, found)
}

// ─────────────────────────────────────────────
// SweepOrphanAttachments
// ─────────────────────────────────────────────

func TestSweepOrphanAttachments_RemovesBytes(t *testing.T) {
	files := &mockFileRepository{
		sweepOrphanFilesFn: func(_ context.Context, cutoff time.Time) ([]models.File, error) {
			assert.True(t, cutoff.Before(time.Now()))
			return []models.File{
				{FileID: 1, StoragePath: "blob-one"},
				{FileID: 2, StoragePath: "blob-two"},
			}, nil
		},
	}
	var removed []string
	blobs := &mockBlobStore{
		removeFn: func(_ context.Context, storagePath string) error {
			removed = append(removed, storagePath)
			return nil
		},
	}
	svc := newTestNoteService(&mockNoteRepository{}, files, blobs)

	count, err := svc.SweepOrphanAttachments(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"blob-one", "blob-two"}, removed)
}

func TestSweepOrphanAttachments_BlobFailureDoesNotAbort(t *testing.T) {
	files := &mockFileRepository{
		sweepOrphanFilesFn: func(_ context.Context, _ time.Time) ([]models.File, error) {
			return []models.File{
				{FileID: 1, StoragePath: "blob-one"},
				{FileID: 2, StoragePath: "blob-two"},
			}, nil
		},
	}
	blobs := &mockBlobStore{
		removeFn: func(_ context.Context, storagePath string) error {
			if storagePath == "blob-one" {
				return errors.New("disk error")
			}
			return nil
		},
	}
	svc := newTestNoteService(&mockNoteRepository{}, files, blobs)

	count, err := svc.SweepOrphanAttachments(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
