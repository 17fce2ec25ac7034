package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/msgsystec/backoffice/internal/services"
	"github.com/msgsystec/backoffice/internal/store"
	"github.com/msgsystec/backoffice/types"
)

// WahaHandler exposes WAHA gateway sessions. Session records work
// today; everything touching the live gateway answers 501 until the
// integration lands.
type WahaHandler struct {
	waha *services.WahaService
}

func NewWahaHandler(waha *services.WahaService) *WahaHandler {
	return &WahaHandler{waha: waha}
}

// WahaRouter registers WAHA routes on the given router.
func WahaRouter(r chi.Router, waha *services.WahaService, requireAuth func(http.Handler) http.Handler) {
	handler := NewWahaHandler(waha)

	r.Use(requireAuth)
	r.Post("/sessions", handler.CreateSession)
	r.Get("/sessions", handler.ListSessions)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", handler.GetSession)
		r.Put("/status", handler.UpdateStatus)
		r.Delete("/", handler.DeleteSession)
		r.Post("/messages", handler.SendMessage)
		r.Get("/messages", handler.Messages)
	})
}

func (h *WahaHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	subject, err := subjectFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	session, err := h.waha.CreateSession(r.Context(), subject)
	if err != nil {
		h.writeWahaError(w, err, "failed to create session")
		return
	}

	writeSuccess(w, http.StatusCreated, session, "waha session created")
}

func (h *WahaHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	subject, err := subjectFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, msgInvalidToken)
		return
	}

	sessions, err := h.waha.UserSessions(r.Context(), subject)
	if err != nil {
		h.writeWahaError(w, err, "failed to list sessions")
		return
	}

	writeSuccess(w, http.StatusOK, sessions, "")
}

func (h *WahaHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.waha.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeWahaError(w, err, "failed to load session")
		return
	}
	writeSuccess(w, http.StatusOK, session, "")
}

// UpdateStatusRequest flips a session between active and inactive.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *WahaHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if !types.ValidWahaStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	session, err := h.waha.UpdateSessionStatus(r.Context(), chi.URLParam(r, "sessionID"), req.Status)
	if err != nil {
		h.writeWahaError(w, err, "failed to update session")
		return
	}

	writeSuccess(w, http.StatusOK, session, "session status updated")
}

func (h *WahaHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.waha.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.writeWahaError(w, err, "failed to delete session")
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "session deleted"})
}

// SendMessageRequest is the message payload for the future gateway.
type SendMessageRequest struct {
	Message string `json:"message"`
}

func (h *WahaHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.waha.SendMessage(r.Context(), chi.URLParam(r, "sessionID"), req.Message); err != nil {
		h.writeWahaError(w, err, "failed to send message")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "message sent"})
}

func (h *WahaHandler) Messages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.waha.Messages(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeWahaError(w, err, "failed to load messages")
		return
	}
	writeSuccess(w, http.StatusOK, messages, "")
}

func (h *WahaHandler) writeWahaError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrGatewayUnavailable):
		writeError(w, http.StatusNotImplemented, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	default:
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
