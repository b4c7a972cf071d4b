package models

import (
	"github.com/uptrace/bun"
)

// Venue is a physical location that can host shows.
// Genres is stored as a JSON-encoded array of strings; use
// EncodeGenres / DecodeGenres when crossing the persistence boundary.
type Venue struct {
	bun.BaseModel `bun:"table:venues"`

	ID                 int64  `bun:"id,pk,autoincrement" json:"id"`
	Name               string `bun:"name,notnull" json:"name"`
	Genres             string `bun:"genres,notnull" json:"-"`
	Address            string `bun:"address" json:"address"`
	City               string `bun:"city,notnull" json:"city"`
	State              string `bun:"state,notnull" json:"state"`
	Phone              string `bun:"phone" json:"phone"`
	Website            string `bun:"website_link" json:"website"`
	FacebookLink       string `bun:"facebook_link" json:"facebook_link"`
	ImageLink          string `bun:"image_link" json:"image_link"`
	SeekingTalent      bool   `bun:"seeking_talent" json:"seeking_talent"`
	SeekingDescription string `bun:"seeking_description,nullzero" json:"seeking_description"`
}

// VenueSummary is the row shape used by the directory and search views.
type VenueSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	NumUpcomingShows int    `json:"num_upcoming_shows"`
}

// VenueGroup is one (state, city) bucket of the venue directory.
type VenueGroup struct {
	City   string         `json:"city"`
	State  string         `json:"state"`
	Venues []VenueSummary `json:"venues"`
}

// VenuePage is the venue detail view with its classified show history.
type VenuePage struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	Address            string   `json:"address"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingTalent      bool     `json:"seeking_talent"`
	SeekingDescription string   `json:"seeking_description"`
	ImageLink          string   `json:"image_link"`
	Classification
}
