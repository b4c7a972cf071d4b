package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ms-booking/internal/apperr"
	"ms-booking/internal/artist"
	"ms-booking/internal/models"
	"ms-booking/internal/utils"
)

type Handler struct {
	ArtistService *artist.Service
}

// ListArtists serves the flat artist roster.
func (h *Handler) ListArtists(w http.ResponseWriter, r *http.Request) {
	roster, err := h.ArtistService.Roster(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, roster)
}

// SearchArtists serves case-insensitive substring search over artist names.
func (h *Handler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apperr.Validation("invalid request body"))
		return
	}

	result, err := h.ArtistService.Search(r.Context(), req.SearchTerm)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// GetArtist serves the artist detail page with classified show history.
func (h *Handler) GetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := artistID(w, r)
	if !ok {
		return
	}

	page, err := h.ArtistService.GetArtistPage(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, page)
}

// CreateArtist lists a new artist.
func (h *Handler) CreateArtist(w http.ResponseWriter, r *http.Request) {
	var req models.ArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apperr.Validation("invalid request body"))
		return
	}

	id, err := h.ArtistService.Create(r.Context(), req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	msg := fmt.Sprintf("Artist %s was successfully listed!", req.Name)
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse(msg, map[string]int64{"id": id}))
}

// UpdateArtist overwrites all mutable fields of an artist.
func (h *Handler) UpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := artistID(w, r)
	if !ok {
		return
	}

	var req models.ArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apperr.Validation("invalid request body"))
		return
	}

	if err := h.ArtistService.Update(r.Context(), id, req); err != nil {
		utils.WriteError(w, err)
		return
	}

	msg := fmt.Sprintf("Artist %s was successfully updated!", req.Name)
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse(msg, nil))
}

func artistID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "artistID"), 10, 64)
	if err != nil {
		utils.WriteError(w, apperr.Validation("invalid artist id"))
		return 0, false
	}
	return id, true
}
