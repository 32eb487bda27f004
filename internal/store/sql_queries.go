package store

import (
	"github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (name, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, name, email, password_hash, current_token, created_at;`

	findUserByEmail = `SELECT user_id, name, email, password_hash, current_token, created_at
    FROM users
    WHERE email = $1;`

	updateCurrentToken = `UPDATE users
    SET current_token = $1
    WHERE user_id = $2;`

	createNote = `INSERT INTO notes (user_id, title, body, done, file_id)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING note_id, created_at;`

	setNoteDone = `UPDATE notes
    SET done = $1
    WHERE note_id = $2 AND user_id = $3;`

	deleteNote = `DELETE FROM notes
    WHERE note_id = $1 AND user_id = $2
    RETURNING file_id;`

	createFile = `INSERT INTO files (user_id, file_name, storage_path, size_label)
    VALUES ($1, $2, $3, $4)
    RETURNING file_id;`

	findFileByID = `SELECT file_id, user_id, file_name, storage_path, size_label
    FROM files
    WHERE file_id = $1 AND user_id = $2;`

	deleteFile = `DELETE FROM files
    WHERE file_id = $1 AND user_id = $2
    RETURNING file_id, user_id, file_name, storage_path, size_label;`

	sweepOrphanFiles = `DELETE FROM files
    WHERE created_at < $1
      AND file_id NOT IN (SELECT file_id FROM notes WHERE file_id IS NOT NULL)
    RETURNING file_id, user_id, file_name, storage_path, size_label;`
)

// noteColumns is the column list selected by every note query that joins
// the optional attachment. The nullable f.* columns are scanned through
// sql.Null* wrappers by scanNoteRow.
var noteColumns = []string{
	"n.note_id",
	"n.user_id",
	"n.title",
	"n.body",
	"n.done",
	"n.created_at",
	"f.file_id",
	"f.file_name",
	"f.size_label",
}

// notesSelect is the shared base of the list and search queries: the
// owner's notes left-joined with their attachments, in insertion order.
func notesSelect(userID int64) squirrel.SelectBuilder {
	return squirrel.Select(noteColumns...).
		From("notes n").
		LeftJoin("files f ON f.file_id = n.file_id").
		Where(squirrel.Eq{"n.user_id": userID}).
		OrderBy("n.note_id").
		PlaceholderFormat(squirrel.Dollar)
}

// buildListNotesQuery builds the SELECT returning all notes of one owner.
func buildListNotesQuery(userID int64) (string, []any, error) {
	return notesSelect(userID).ToSql()
}

// buildSearchNotesQuery builds the keyword search SELECT.
//
// Matching is a disjunction over all keyword tokens: a note qualifies when
// ANY token appears as a case-insensitive substring (ILIKE %token%) of
// either the title or the body. The query is always scoped to one owner.
func buildSearchNotesQuery(userID int64, keywords []string) (string, []any, error) {
	match := squirrel.Or{}
	for _, keyword := range keywords {
		pattern := "%" + keyword + "%"
		match = append(match,
			squirrel.ILike{"n.title": pattern},
			squirrel.ILike{"n.body": pattern},
		)
	}

	return notesSelect(userID).Where(match).ToSql()
}
