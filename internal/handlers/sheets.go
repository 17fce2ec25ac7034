package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/msgsystec/backoffice/internal/services"
)

// SheetHandler exposes the spreadsheet mirror. All routes require a
// session; none require the admin role.
type SheetHandler struct {
	sheets *services.SheetService
}

func NewSheetHandler(sheets *services.SheetService) *SheetHandler {
	return &SheetHandler{sheets: sheets}
}

// SheetRouter registers sheet routes on the given router.
func SheetRouter(r chi.Router, sheets *services.SheetService, requireAuth func(http.Handler) http.Handler) {
	handler := NewSheetHandler(sheets)

	r.Use(requireAuth)
	r.Get("/read", handler.Read)
	r.Post("/refresh", handler.Refresh)
	r.Get("/info", handler.Info)
	r.Get("/auth-url", handler.AuthURL)
}

func (h *SheetHandler) Read(w http.ResponseWriter, r *http.Request) {
	data, err := h.sheets.Read(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to access google sheets")
		return
	}
	writeSuccess(w, http.StatusOK, data, "sheet data loaded")
}

// Refresh re-reads the spreadsheet. There is no cache to invalidate, so
// this is the same upstream call as Read; the dashboard uses it as an
// explicit reload action.
func (h *SheetHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	data, err := h.sheets.Read(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to access google sheets")
		return
	}
	writeSuccess(w, http.StatusOK, data, "sheet data refreshed")
}

func (h *SheetHandler) Info(w http.ResponseWriter, r *http.Request) {
	info, err := h.sheets.Info(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to access google sheets")
		return
	}
	writeSuccess(w, http.StatusOK, info, "")
}

// AuthURLResult is the data field of the auth-url response.
type AuthURLResult struct {
	AuthURL string `json:"authUrl"`
}

func (h *SheetHandler) AuthURL(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, AuthURLResult{AuthURL: h.sheets.AuthURL()}, "authorization url generated")
}
