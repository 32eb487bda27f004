package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/login", h.loginPage)
		r.Post("/login", h.login)
		r.Post("/register", h.register)
		r.Get("/logout", h.logout)
	})

	// session-protected routes
	router.Group(func(r chi.Router) {
		r.Use(h.session)
		r.Get("/notes", h.listNotes)
		r.Post("/notes", h.createNote)
		r.Get("/notes/download/{fileID}", h.downloadAttachment)
		r.Post("/notes/update/{noteID}", h.updateNote)
		r.Post("/notes/search", h.searchNotes)
	})

	// any unmatched route lands on the login entry; a known path with an
	// unregistered method is just as unmatched as an unknown path
	unmatched := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	}
	router.NotFound(unmatched)
	router.MethodNotAllowed(unmatched)

	return router
}
