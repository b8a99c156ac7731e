package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/docfiller/docfiller/internal/model"
	"github.com/docfiller/docfiller/internal/service"
	"github.com/docfiller/docfiller/internal/storage"
)

// DraftHandler serves draft retrieval and upsert.
type DraftHandler struct {
	svc *service.FormService
}

func NewDraftHandler(svc *service.FormService) *DraftHandler {
	return &DraftHandler{svc: svc}
}

// Get handles GET /api/form/{userId}.
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	draft, err := h.svc.GetDraft(userID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Form data not found")
		return
	}
	if err != nil {
		log.Printf("draft lookup failed for %s: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// Save handles POST /api/form. The first save for a user id creates the
// draft, later saves update it.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req model.SaveDraftRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	var verr *model.ValidationError
	if err := req.FormData.Validate(); err != nil {
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": "Invalid form data",
				"errors":  verr.Problems,
			})
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	draft, err := h.svc.SaveDraft(req.UserID, req.FormData)
	if err != nil {
		log.Printf("draft save failed for %s: %v", req.UserID, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}
