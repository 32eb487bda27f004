package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
)

// session is the HTTP middleware that gates every protected route.
//
// It locates a candidate token by checking, in order: a form/body field
// named "token", the "token" query parameter, the "x-access-token" header,
// and finally the "x-access-token" cookie. The first present value wins;
// this precedence order is preserved for compatibility with existing
// clients and must not change.
//
// Outcomes:
//   - No token anywhere → fail closed: HTTP 403 with a Location header
//     pointing at /login.
//   - Token present but invalid (bad signature, wrong issuer, or expired;
//     not distinguished) → session cookies cleared, HTTP 401 with a
//     Location header pointing at /login.
//   - Token valid → the session is renewed: a fresh token with a full
//     expiry window is issued and the cookies are re-set, so the session
//     expires on inactivity rather than on a fixed schedule. The verified
//     user ID and email are stored in the request context under
//     [utils.UserIDCtxKey] and [utils.EmailCtxKey] before delegating to
//     the next handler.
//
// Identity is derived exclusively from the verified token payload; the
// username cookie is client-readable and therefore never trusted.
func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString := extractToken(r)
		if tokenString == "" {
			log.Debug().Str("uri", r.RequestURI).Msg("no session token presented")
			redirectToLogin(w, http.StatusForbidden)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("session token rejected")
			clearSessionCookies(w)
			redirectToLogin(w, http.StatusUnauthorized)
			return
		}

		// Sliding expiration: re-issue the token with a fresh window and
		// renew the cookies on every authenticated request.
		refreshed, err := h.services.AuthService.RefreshToken(ctx, token)
		if err != nil {
			log.Err(err).Int64("user_id", token.UserID).Msg("session renewal failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		setSessionCookies(w, refreshed.SignedString, token.Email, h.sessionWindow)

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		ctx = context.WithValue(ctx, utils.EmailCtxKey, token.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken looks for a session token in the request, honouring the
// body → query → header → cookie precedence.
//
// Multipart bodies are never consulted: PostFormValue would buffer the
// whole upload before the note handler applies its own memory limit, so
// those requests skip straight to the remaining sources.
func extractToken(r *http.Request) string {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/") {
		if token := r.PostFormValue("token"); token != "" {
			return token
		}
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	if token := r.Header.Get(accessTokenCookie); token != "" {
		return token
	}
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}

// redirectToLogin points the client at the login entry with the given
// rejection status. The status codes (403 without a token, 401 with a bad
// one) are part of the compatibility contract, so the Location header is
// written manually instead of going through http.Redirect.
func redirectToLogin(w http.ResponseWriter, status int) {
	w.Header().Set("Location", "/login")
	w.WriteHeader(status)
}
