package db

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"ms-booking/internal/apperr"
	"ms-booking/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ListShows → every show denormalized with both the venue's and the
// artist's display fields, sorted by start time.
func (d *DB) ListShows(ctx context.Context) ([]models.ShowListing, error) {
	var listings []models.ShowListing
	err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("venue.id AS venue_id").
		ColumnExpr("venue.name AS venue_name").
		ColumnExpr("artist.id AS artist_id").
		ColumnExpr("artist.name AS artist_name").
		ColumnExpr("artist.image_link AS artist_image_link").
		ColumnExpr("show.start_time AS start_time").
		Join("JOIN venues AS venue ON venue.id = show.venue_id").
		Join("JOIN artists AS artist ON artist.id = show.artist_id").
		Order("show.start_time").
		Scan(ctx, &listings)
	if err != nil {
		return nil, apperr.FromDB(err, "show")
	}
	return listings, nil
}

// ArtistExists → whether an artist row exists for id.
func (d *DB) ArtistExists(ctx context.Context, id int64) (bool, error) {
	exists, err := d.Bun.NewSelect().
		Model((*models.Artist)(nil)).
		Where("id = ?", id).
		Exists(ctx)
	if err != nil {
		return false, apperr.FromDB(err, "artist")
	}
	return exists, nil
}

// VenueExists → whether a venue row exists for id.
func (d *DB) VenueExists(ctx context.Context, id int64) (bool, error) {
	exists, err := d.Bun.NewSelect().
		Model((*models.Venue)(nil)).
		Where("id = ?", id).
		Exists(ctx)
	if err != nil {
		return false, apperr.FromDB(err, "venue")
	}
	return exists, nil
}

// CreateShow → insert a new show inside a transaction. The ID field is
// populated on success.
func (d *DB) CreateShow(ctx context.Context, s *models.Show) error {
	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(s).Exec(ctx)
		return err
	})
	if err != nil {
		return apperr.FromDB(err, "show")
	}
	return nil
}
