package api

import (
	"encoding/json"
	"net/http"

	"ms-booking/internal/apperr"
	"ms-booking/internal/models"
	"ms-booking/internal/show"
	"ms-booking/internal/utils"
)

type Handler struct {
	ShowService *show.Service
}

// ListShows serves the global shows view.
func (h *Handler) ListShows(w http.ResponseWriter, r *http.Request) {
	listings, err := h.ShowService.ListShows(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, listings)
}

// CreateShow lists a new show.
func (h *Handler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req models.ShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apperr.Validation("invalid request body"))
		return
	}

	id, err := h.ShowService.Create(r.Context(), req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Show was successfully listed!", map[string]int64{"id": id}))
}
