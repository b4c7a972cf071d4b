package models

import (
	"github.com/uptrace/bun"
)

// Artist is a performer that can be booked for shows.
type Artist struct {
	bun.BaseModel `bun:"table:artists"`

	ID                 int64  `bun:"id,pk,autoincrement" json:"id"`
	Name               string `bun:"name,notnull" json:"name"`
	Genres             string `bun:"genres,notnull" json:"-"`
	City               string `bun:"city,notnull" json:"city"`
	State              string `bun:"state,notnull" json:"state"`
	Phone              string `bun:"phone" json:"phone"`
	Website            string `bun:"website_link" json:"website"`
	FacebookLink       string `bun:"facebook_link" json:"facebook_link"`
	ImageLink          string `bun:"image_link" json:"image_link"`
	SeekingVenue       bool   `bun:"seeking_venue" json:"seeking_venue"`
	SeekingDescription string `bun:"seeking_description,nullzero" json:"seeking_description"`
}

// ArtistRef is the flat roster entry (id and name only).
type ArtistRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ArtistPage is the artist detail view with its classified show history.
type ArtistPage struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Genres             []string `json:"genres"`
	City               string   `json:"city"`
	State              string   `json:"state"`
	Phone              string   `json:"phone"`
	Website            string   `json:"website"`
	FacebookLink       string   `json:"facebook_link"`
	SeekingVenue       bool     `json:"seeking_venue"`
	SeekingDescription string   `json:"seeking_description"`
	ImageLink          string   `json:"image_link"`
	Classification
}
