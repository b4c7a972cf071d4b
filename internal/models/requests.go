package models

import "time"

// Typed request payloads for the mutation endpoints. Field rules are
// enforced by internal/validation before any transaction is opened.

type VenueRequest struct {
	Name               string   `json:"name" validate:"required,max=120"`
	Genres             []string `json:"genres" validate:"required,min=1,dive,required"`
	Address            string   `json:"address" validate:"required,max=120"`
	City               string   `json:"city" validate:"required,max=120"`
	State              string   `json:"state" validate:"required,max=120"`
	Phone              string   `json:"phone" validate:"omitempty,phone"`
	Website            string   `json:"website" validate:"omitempty,url"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description" validate:"max=500"`
}

type ArtistRequest struct {
	Name               string   `json:"name" validate:"required,max=120"`
	Genres             []string `json:"genres" validate:"required,min=1,dive,required"`
	City               string   `json:"city" validate:"required,max=120"`
	State              string   `json:"state" validate:"required,max=120"`
	Phone              string   `json:"phone" validate:"omitempty,phone"`
	Website            string   `json:"website" validate:"omitempty,url"`
	FacebookLink       string   `json:"facebook_link" validate:"omitempty,url"`
	ImageLink          string   `json:"image_link" validate:"omitempty,url"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description" validate:"max=500"`
}

type ShowRequest struct {
	ArtistID  int64     `json:"artist_id" validate:"required,gt=0"`
	VenueID   int64     `json:"venue_id" validate:"required,gt=0"`
	StartTime time.Time `json:"start_time" validate:"required"`
}

// SearchRequest is the body of the venue/artist search endpoints. An
// empty term matches every record of the kind.
type SearchRequest struct {
	SearchTerm string `json:"search_term"`
}

// SearchMatch is one search hit with its scoped upcoming-show count.
type SearchMatch struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// SearchResult is the search response envelope.
type SearchResult struct {
	Count int           `json:"count"`
	Data  []SearchMatch `json:"data"`
}
