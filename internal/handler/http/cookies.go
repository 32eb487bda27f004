package http

import (
	"net/http"
	"time"
)

// Cookie names carried by an established session. The token cookie is the
// only one trusted by the server; loggedin and username exist purely for
// client-side convenience and are never used to derive identity.
const (
	accessTokenCookie = "x-access-token"
	loggedInCookie    = "loggedin"
	usernameCookie    = "username"
)

// setSessionCookies establishes (or renews) the session cookie set.
//
// The token and loggedin cookies expire after window; the username cookie
// is a session cookie kept only so the login form can pre-fill the email.
func setSessionCookies(w http.ResponseWriter, signedToken, email string, window time.Duration) {
	expires := time.Now().Add(window)

	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    signedToken,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
	})
	http.SetCookie(w, &http.Cookie{
		Name:    loggedInCookie,
		Value:   "true",
		Path:    "/",
		Expires: expires,
	})
	http.SetCookie(w, &http.Cookie{
		Name:  usernameCookie,
		Value: email,
		Path:  "/",
	})
}

// clearSessionCookies unconditionally expires every session cookie.
// It is idempotent and succeeds even when no session was established.
func clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, loggedInCookie, usernameCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:   name,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
	}
}
