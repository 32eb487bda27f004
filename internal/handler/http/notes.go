package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
)

// multipartMemoryLimit caps the in-memory portion of a parsed upload;
// anything larger spills to temporary files.
const multipartMemoryLimit = 8 << 20

// listNotes serves GET /notes: every note of the authenticated user, in
// insertion order, joined with attachment metadata.
func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user ID in context on a protected route")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	email, _ := utils.GetEmailFromContext(ctx)

	notes, err := h.services.NoteService.ListNotes(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("listing notes failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.NotesResponse{Username: email, Notes: notes}, http.StatusOK)
}

// createNote serves POST /notes: multipart form with noteTitle, noteBody,
// and an optional noteAttachment file. A missing or oversized attachment
// never fails note creation.
func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user ID in context on a protected route")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Err(err).Msg("failed to parse multipart form")
		http.Error(w, "malformed form data", http.StatusBadRequest)
		return
	}

	title := r.PostFormValue("noteTitle")
	body := r.PostFormValue("noteBody")

	var upload *models.Upload
	if file, header, err := r.FormFile("noteAttachment"); err == nil {
		defer file.Close()
		upload = &models.Upload{
			FileName: header.Filename,
			Size:     header.Size,
			Content:  file,
		}
	}

	_, err := h.services.NoteService.CreateNote(ctx, userID, title, body, upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("note creation without title")
			http.Error(w, "note title is required", http.StatusBadRequest)
			return
		default:
			log.Err(err).Int64("user_id", userID).Msg("note creation failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/notes", http.StatusFound)
}

// updateNote serves POST /notes/update/{noteID}: either toggles the done
// flag or deletes the note with its attachment. Delete wins when both
// fields are submitted.
func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user ID in context on a protected route")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	noteID, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid note id", http.StatusBadRequest)
		return
	}

	update := models.NoteUpdate{
		Delete: r.PostFormValue("delete") != "",
	}
	if doneValue := r.PostFormValue("done"); doneValue != "" {
		done, parseErr := strconv.ParseBool(doneValue)
		if parseErr != nil {
			http.Error(w, "invalid done value", http.StatusBadRequest)
			return
		}
		update.Done = &done
	}

	if err := h.services.NoteService.UpdateNote(ctx, userID, noteID, update); err != nil {
		switch {
		case errors.Is(err, store.ErrNoteNotFound):
			log.Debug().Int64("note_id", noteID).Int64("user_id", userID).Msg("update of unknown note")
			http.Error(w, "note not found", http.StatusNotFound)
			return
		case errors.Is(err, service.ErrNoUpdateRequested):
			http.Error(w, "nothing to update", http.StatusBadRequest)
			return
		default:
			log.Err(err).Int64("note_id", noteID).Msg("note update failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/notes", http.StatusFound)
}

// downloadAttachment serves GET /notes/download/{fileID}: streams the
// stored bytes with the original upload name suggested to the client.
func (h *Handler) downloadAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user ID in context on a protected route")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	fileID, err := strconv.ParseInt(chi.URLParam(r, "fileID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid file id", http.StatusBadRequest)
		return
	}

	reader, fileName, err := h.services.NoteService.DownloadAttachment(ctx, userID, fileID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrFileNotFound):
			log.Debug().Int64("file_id", fileID).Int64("user_id", userID).Msg("download of unknown attachment")
			http.Error(w, "file not found", http.StatusNotFound)
			return
		default:
			log.Err(err).Int64("file_id", fileID).Msg("attachment download failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	if _, err := io.Copy(w, reader); err != nil {
		log.Err(err).Int64("file_id", fileID).Msg("streaming attachment bytes failed")
	}
}

// searchNotes serves POST /notes/search. An empty or all-whitespace query
// yields the dedicated "no query entered" payload, which the response
// shape keeps distinct from a query with zero matches.
func (h *Handler) searchNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user ID in context on a protected route")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	notes, err := h.services.NoteService.SearchNotes(ctx, userID, r.PostFormValue("search"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptySearchQuery):
			utils.WriteJSON(w, models.SearchResponse{QueryEntered: false}, http.StatusOK)
			return
		default:
			log.Err(err).Int64("user_id", userID).Msg("note search failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.SearchResponse{QueryEntered: true, Notes: notes}, http.StatusOK)
}
