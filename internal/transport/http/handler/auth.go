package handler

import (
	"net/http"
	"strings"

	jwtinfra "github.com/KaneTraylor/empowertreatment-sub000/internal/infrastructure/jwt"
)

// AuthVerifyEnvelope matches the auth-collaborator contract the admin pages
// consume: `{ authenticated, user }`.
type AuthVerifyEnvelope struct {
	Authenticated bool   `json:"authenticated"`
	User          string `json:"user,omitempty"`
}

// AuthHandler answers session-verification probes from the admin frontend.
type AuthHandler struct {
	provider *jwtinfra.Provider
}

func NewAuthHandler(provider *jwtinfra.Provider) *AuthHandler {
	return &AuthHandler{provider: provider}
}

// Verify reports whether the request carries a valid admin session. It never
// returns an error status: an invalid token is `authenticated:false`, so the
// frontend can branch to its login page without special-casing 401s.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if h.provider == nil || !strings.HasPrefix(authHeader, "Bearer ") {
		writeJSON(w, http.StatusOK, AuthVerifyEnvelope{Authenticated: false})
		return
	}
	claims, err := h.provider.Verify(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		writeJSON(w, http.StatusOK, AuthVerifyEnvelope{Authenticated: false})
		return
	}
	writeJSON(w, http.StatusOK, AuthVerifyEnvelope{Authenticated: true, User: claims.User})
}
