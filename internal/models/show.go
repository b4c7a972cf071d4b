package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Show associates one Artist with one Venue at a start time. Shows are
// create-only; they have no edit or delete path of their own.
type Show struct {
	bun.BaseModel `bun:"table:shows,alias:show"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	ArtistID  int64     `bun:"artist_id,notnull" json:"artist_id"`
	VenueID   int64     `bun:"venue_id,notnull" json:"venue_id"`
	StartTime time.Time `bun:"start_time,notnull" json:"start_time"`

	Artist *Artist `bun:"rel:belongs-to,join:artist_id=id" json:"-"`
	Venue  *Venue  `bun:"rel:belongs-to,join:venue_id=id" json:"-"`
}

// ShowEntry is one show on a detail page, denormalized with the
// counterpart's display fields: the artist when listing a venue's
// shows, the venue when listing an artist's.
type ShowEntry struct {
	CounterpartID        int64     `bun:"counterpart_id" json:"counterpart_id"`
	CounterpartName      string    `bun:"counterpart_name" json:"counterpart_name"`
	CounterpartImageLink string    `bun:"counterpart_image_link" json:"counterpart_image_link"`
	StartTime            time.Time `bun:"start_time" json:"start_time"`
}

// Classification is the past/upcoming partition of a show history.
type Classification struct {
	PastShows     []ShowEntry `json:"past_shows"`
	UpcomingShows []ShowEntry `json:"upcoming_shows"`
	PastCount     int         `json:"past_shows_count"`
	UpcomingCount int         `json:"upcoming_shows_count"`
}

// ShowListing is one row of the global shows view, denormalized with
// both the venue's and the artist's display fields.
type ShowListing struct {
	VenueID         int64     `bun:"venue_id" json:"venue_id"`
	VenueName       string    `bun:"venue_name" json:"venue_name"`
	ArtistID        int64     `bun:"artist_id" json:"artist_id"`
	ArtistName      string    `bun:"artist_name" json:"artist_name"`
	ArtistImageLink string    `bun:"artist_image_link" json:"artist_image_link"`
	StartTime       time.Time `bun:"start_time" json:"start_time"`
}
