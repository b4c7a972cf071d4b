package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/apperr"
	"ms-booking/internal/models"
	"ms-booking/internal/utils"
	"ms-booking/internal/venue"
)

type Handler struct {
	VenueService *venue.Service
}

// ListVenues serves the directory of venues grouped by (state, city).
func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	groups, err := h.VenueService.ListVenueGroups(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, groups)
}

// SearchVenues serves case-insensitive substring search over venue names.
func (h *Handler) SearchVenues(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apperr.Validation("invalid request body"))
		return
	}

	result, err := h.VenueService.Search(r.Context(), req.SearchTerm)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// GetVenue serves the venue detail page with classified show history.
func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(w, r)
	if !ok {
		return
	}

	page, err := h.VenueService.GetVenuePage(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

// CreateVenue lists a new venue.
func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req models.VenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apperr.Validation("invalid request body"))
		return
	}

	id, err := h.VenueService.Create(r.Context(), req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	msg := fmt.Sprintf("Venue %s was successfully listed!", req.Name)
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse(msg, map[string]int64{"id": id}))
}

// UpdateVenue overwrites all mutable fields of a venue.
func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(w, r)
	if !ok {
		return
	}

	var req models.VenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apperr.Validation("invalid request body"))
		return
	}

	if err := h.VenueService.Update(r.Context(), id, req); err != nil {
		utils.WriteError(w, err)
		return
	}

	msg := fmt.Sprintf("Venue %s was successfully updated!", req.Name)
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(msg, nil))
}

// DeleteVenue removes a venue and its shows.
func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := venueID(w, r)
	if !ok {
		return
	}

	if err := h.VenueService.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Venue was successfully deleted!", nil))
}

func venueID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "venueID"), 10, 64)
	if err != nil {
		utils.WriteError(w, apperr.Validation("invalid venue id"))
		return 0, false
	}
	return id, true
}
