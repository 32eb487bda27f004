package models

import "time"

// Note is a single text note owned by exactly one user.
//
// The owner is assigned at creation time and never changes afterwards.
// A note may reference at most one attachment; the reference is one-way
// (the file row carries no back-pointer to the note).
type Note struct {
	// NoteID is the internal unique identifier of the note.
	NoteID int64 `json:"id"`

	// UserID is the identifier of the owning user. Immutable after creation.
	UserID int64 `json:"-"`

	// Title is the required note headline.
	Title string `json:"title"`

	// Body is the optional free-form note text.
	Body string `json:"body"`

	// Done marks the note as completed. Defaults to false.
	Done bool `json:"done"`

	// CreatedAt is the timestamp when the note was created.
	CreatedAt time.Time `json:"created_at"`

	// Attachment is the file linked to this note, populated by an explicit
	// join when listing. Nil when the note has no attachment.
	Attachment *File `json:"attachment,omitempty"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}

// NoteUpdate describes the mutation requested for a single note.
//
// Delete and Done are mutually exclusive per request; when both are
// signaled, deletion takes precedence.
type NoteUpdate struct {
	// Done, when non-nil, sets the completion flag to the given value.
	Done *bool `json:"done,omitempty"`

	// Delete requests removal of the note together with its attachment
	// metadata and stored bytes.
	Delete bool `json:"delete,omitempty"`
}
