package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/msgsystec/backoffice/internal/auth"
	"github.com/msgsystec/backoffice/internal/services"
	"github.com/msgsystec/backoffice/internal/store"
	"github.com/msgsystec/backoffice/types"
)

const minNameLength = 2

// UserHandler provides the user-management endpoints.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// UserRouter registers user routes. Everything requires authentication;
// everything except /me additionally requires the admin role.
func UserRouter(r chi.Router, users *services.UserService, requireAuth, requireAdmin func(http.Handler) http.Handler) {
	handler := NewUserHandler(users)

	r.Use(requireAuth)
	r.With(requireAdmin).Get("/", handler.List)
	r.With(requireAdmin).Post("/", handler.Create)
	r.Get("/me", handler.Me)
	r.Route("/{userID}", func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Put("/password", handler.ChangePassword)
		r.Delete("/", handler.Delete)
	})
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeSuccess(w, http.StatusOK, users, "")
}

// Me returns the authenticated user's own record.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject, err := subjectFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	user, err := h.users.GetByID(r.Context(), subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	writeSuccess(w, http.StatusOK, user, "")
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	writeSuccess(w, http.StatusOK, user, "")
}

// CreateUserRequest is the admin user-creation payload.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}
	if len([]rune(req.Name)) < minNameLength {
		writeError(w, http.StatusBadRequest, "name must be at least 2 characters")
		return
	}
	if req.Role != "" && !types.ValidRole(req.Role) {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	user, err := h.users.Create(r.Context(), services.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		h.writeUserError(w, err, "failed to create user")
		return
	}

	writeSuccess(w, http.StatusCreated, user, "user created")
}

// UpdateUserRequest is a partial profile update. Absent fields are left
// unchanged.
type UpdateUserRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if len([]rune(trimmed)) < minNameLength {
			writeError(w, http.StatusBadRequest, "name must be at least 2 characters")
			return
		}
		req.Name = &trimmed
	}
	if req.Role != nil && !types.ValidRole(*req.Role) {
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "userID"), services.UpdateUserInput{
		Name: req.Name,
		Role: req.Role,
	})
	if err != nil {
		h.writeUserError(w, err, "failed to update user")
		return
	}

	writeSuccess(w, http.StatusOK, user, "user updated")
}

// ChangePasswordRequest carries the replacement password.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.users.ChangePassword(r.Context(), chi.URLParam(r, "userID"), req.NewPassword); err != nil {
		h.writeUserError(w, err, "failed to change password")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "password changed"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		h.writeUserError(w, err, "failed to delete user")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "user deleted"})
}

// writeUserError maps service and store errors onto the HTTP taxonomy.
func (h *UserHandler) writeUserError(w http.ResponseWriter, err error, fallback string) {
	var tooShort auth.ErrPasswordTooShort
	switch {
	case errors.Is(err, store.ErrConflict):
		writeError(w, http.StatusConflict, "email already in use")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, services.ErrNoFields):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &tooShort):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
