package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/msgsystec/backoffice/internal/services"
	"github.com/msgsystec/backoffice/internal/store"
	"github.com/msgsystec/backoffice/types"
)

const (
	msgInvalidCredentials = "invalid credentials"
	msgInvalidToken       = "invalid or expired token"
)

// AuthHandler provides the cookie-based authentication endpoints and
// the middleware gating every protected route.
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	cookies     *CookieHelper
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, cookies *CookieHelper) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cookies:     cookies,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, handler *AuthHandler) {
	r.Post("/login", handler.Login)
	r.Post("/logout", handler.Logout)
	r.Get("/verify", handler.Verify)
}

// RequireAuth enforces a valid session cookie and injects the subject
// into the request context. Missing, invalid and expired tokens are
// indistinguishable to the client.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := h.authService.Verify(h.cookies.Token(r))
		if err != nil {
			writeError(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), contextSubjectKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin re-reads the subject's role on every request so role
// changes and deletions take effect immediately. Must run after
// RequireAuth.
func (h *AuthHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, err := subjectFromContext(r.Context())
		if err != nil {
			writeError(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		user, err := h.userService.GetByID(r.Context(), subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// A deleted user loses access even with an unexpired token.
				writeError(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to load user")
			return
		}

		if !strings.EqualFold(user.Role, types.RoleAdmin) {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the data field of a successful login response.
type LoginResult struct {
	User  types.User `json:"user"`
	Token string     `json:"token"`
}

// Login verifies credentials, sets the session cookie, and returns the
// user together with the token. Unknown email and wrong password
// produce byte-identical responses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	h.cookies.SetToken(w, token)
	writeSuccess(w, http.StatusOK, LoginResult{User: user, Token: token}, "login successful")
}

// Logout clears the session cookie. Sessions are stateless, so there is
// nothing to revoke server-side.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.ClearToken(w)
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "logout successful"})
}

// Verify validates the session cookie and returns the current user.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	subject, err := h.authService.Verify(h.cookies.Token(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	user, err := h.userService.GetByID(r.Context(), subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	writeSuccess(w, http.StatusOK, user, "")
}
