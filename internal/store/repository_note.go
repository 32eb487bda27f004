package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// It executes all note CRUD and search operations against the "notes" table,
// joining the "files" table for attachment metadata.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (user_id, note_id, etc.).
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateNote inserts a new note row and returns the note with its
// server-assigned NoteID and CreatedAt. A zero Attachment pointer is stored
// as SQL NULL in the file_id column.
func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	var fileID sql.NullInt64
	if note.Attachment != nil {
		fileID = sql.NullInt64{Int64: note.Attachment.FileID, Valid: true}
	}

	row := r.QueryRowContext(ctx, createNote, note.UserID, note.Title, note.Body, note.Done, fileID)
	if err := row.Scan(&note.NoteID, &note.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "*noteRepository.CreateNote").
			Int64("user_id", note.UserID).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return note, nil
}

// GetNotesByOwner returns all notes of one user in insertion order
// (note_id ascending), each joined with its attachment when present.
func (r *noteRepository) GetNotesByOwner(ctx context.Context, userID int64) ([]models.Note, error) {
	query, args, err := buildListNotesQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryNotes(ctx, query, args)
}

// SearchNotes returns the owner's notes matching any keyword token as a
// case-insensitive substring of the title or the body.
func (r *noteRepository) SearchNotes(ctx context.Context, userID int64, keywords []string) ([]models.Note, error) {
	query, args, err := buildSearchNotesQuery(userID, keywords)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryNotes(ctx, query, args)
}

// queryNotes runs a note SELECT built on [notesSelect] and scans the rows,
// attaching file metadata when the joined columns are non-NULL.
func (r *noteRepository) queryNotes(ctx context.Context, query string, args []any) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*noteRepository.queryNotes").Msg("failed to execute note query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 16)
	for rows.Next() {
		note, scanErr := scanNoteRow(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*noteRepository.queryNotes").Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// scanNoteRow scans one row of the note+attachment join. The attachment
// columns come from a LEFT JOIN and may be NULL.
func scanNoteRow(rows *sql.Rows) (models.Note, error) {
	var note models.Note
	var fileID sql.NullInt64
	var fileName, sizeLabel sql.NullString

	err := rows.Scan(
		&note.NoteID,
		&note.UserID,
		&note.Title,
		&note.Body,
		&note.Done,
		&note.CreatedAt,
		&fileID,
		&fileName,
		&sizeLabel,
	)
	if err != nil {
		return models.Note{}, err
	}

	if fileID.Valid {
		note.Attachment = &models.File{
			FileID:    fileID.Int64,
			UserID:    note.UserID,
			FileName:  fileName.String,
			SizeLabel: sizeLabel.String,
		}
	}

	return note, nil
}

// SetDone updates the done flag of one note, scoped to its owner.
func (r *noteRepository) SetDone(ctx context.Context, noteID, userID int64, done bool) error {
	log := logger.FromContext(ctx)

	result, err := r.ExecContext(ctx, setNoteDone, done, noteID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.SetDone").
			Int64("note_id", noteID).
			Int64("user_id", userID).
			Msg("failed to update done flag")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	return nil
}

// DeleteNote removes one note, scoped to its owner, and reports the file ID
// the note referenced so the caller can cascade the attachment deletion.
// Returns fileID 0 when the note had no attachment.
func (r *noteRepository) DeleteNote(ctx context.Context, noteID, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	var fileID sql.NullInt64
	row := r.QueryRowContext(ctx, deleteNote, noteID, userID)
	if err := row.Scan(&fileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "*noteRepository.DeleteNote").
			Int64("note_id", noteID).
			Int64("user_id", userID).
			Msg("failed to delete note")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return fileID.Int64, nil
}
