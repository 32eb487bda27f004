package http

import (
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

// loginFormPage is the minimal login/registration entry. The real UI lives
// outside this service; this page exists so the cookie/redirect flow has a
// navigable entry point. The first %s slot carries an optional warning
// banner, the second pre-fills the email from the username cookie.
const loginFormPage = `<!DOCTYPE html>
<html>
<head><title>Notes login</title></head>
<body>
%s<form method="POST" action="/login">
<input type="email" name="email" placeholder="email" value="%s">
<input type="password" name="password" placeholder="password">
<button type="submit">Log in</button>
</form>
</body>
</html>
`

const loginWarning = `<p>Invalid email or password.</p>
`

// renderLoginPage writes the login form with an optional warning banner and
// a pre-filled email value.
func renderLoginPage(w http.ResponseWriter, status int, warning bool, email string) {
	banner := ""
	if warning {
		banner = loginWarning
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, loginFormPage, banner, html.EscapeString(email))
}

// loginPage serves GET /login. A client that still carries the loggedin
// cookie is sent straight to its notes; everyone else gets the form, with
// the email pre-filled from the username convenience cookie.
func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(loggedInCookie); err == nil && cookie.Value != "" {
		http.Redirect(w, r, "/notes", http.StatusFound)
		return
	}

	email := ""
	if cookie, err := r.Cookie(usernameCookie); err == nil {
		email = cookie.Value
	}

	renderLoginPage(w, http.StatusOK, false, email)
}

// register serves POST /register. A successful registration also
// establishes the session (cookies set, redirect to /notes): creating the
// account and logging in are deliberately a single step in this flow.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, token, err := h.services.AuthService.RegisterUser(ctx, name, email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("registration with missing fields")
			http.Error(w, "all inputs are required", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("registration for existing email")
			http.Error(w, "user already exists", http.StatusConflict)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", user.UserID).Msg("user successfully registered")

	setSessionCookies(w, token.SignedString, user.Email, h.sessionWindow)
	http.Redirect(w, r, "/notes", http.StatusMovedPermanently)
}

// login serves POST /login. Unknown email and wrong password produce the
// same re-rendered form with a generic warning, never revealing which of
// the two was wrong.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, token, err := h.services.AuthService.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("login with missing fields")
			http.Error(w, "all inputs are required", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Debug().Msg("login rejected")
			renderLoginPage(w, http.StatusBadRequest, true, "")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", user.UserID).Msg("user successfully logged in")

	setSessionCookies(w, token.SignedString, user.Email, h.sessionWindow)
	http.Redirect(w, r, "/notes", http.StatusMovedPermanently)
}

// logout serves GET /logout. Cookies are cleared unconditionally: logging
// out without an active session is not an error.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookies(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
