package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"ms-booking/internal/apperr"
	"ms-booking/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ---------------- QUERIES ----------------

// ListVenues → every venue, ordered by state, city, id so grouping is
// deterministic.
func (d *DB) ListVenues(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	err := d.Bun.NewSelect().
		Model(&venues).
		Order("state", "city", "id").
		Scan(ctx)
	if err != nil {
		return nil, apperr.FromDB(err, "venue")
	}
	return venues, nil
}

// SearchVenues → case-insensitive substring match on name, ordered by
// id. An empty term matches every venue.
func (d *DB) SearchVenues(ctx context.Context, term string) ([]models.Venue, error) {
	var venues []models.Venue
	err := d.Bun.NewSelect().
		Model(&venues).
		Where("lower(name) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, apperr.FromDB(err, "venue")
	}
	return venues, nil
}

// GetVenueByID → fetch one venue by its ID
func (d *DB) GetVenueByID(ctx context.Context, id int64) (*models.Venue, error) {
	var venue models.Venue
	err := d.Bun.NewSelect().
		Model(&venue).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, apperr.FromDB(err, "venue")
	}
	return &venue, nil
}

// CountUpcomingShows → number of this venue's shows starting strictly
// after now. Scoped to the venue id, never a global count.
func (d *DB) CountUpcomingShows(ctx context.Context, venueID int64, now time.Time) (int, error) {
	count, err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		Where("venue_id = ?", venueID).
		Where("start_time > ?", now).
		Count(ctx)
	if err != nil {
		return 0, apperr.FromDB(err, "show")
	}
	return count, nil
}

// VenueShowEntries → the venue's full show history joined with the
// performing artist's display fields, sorted by start time.
func (d *DB) VenueShowEntries(ctx context.Context, venueID int64) ([]models.ShowEntry, error) {
	var entries []models.ShowEntry
	err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("artist.id AS counterpart_id").
		ColumnExpr("artist.name AS counterpart_name").
		ColumnExpr("artist.image_link AS counterpart_image_link").
		ColumnExpr("show.start_time AS start_time").
		Join("JOIN artists AS artist ON artist.id = show.artist_id").
		Where("show.venue_id = ?", venueID).
		Order("show.start_time").
		Scan(ctx, &entries)
	if err != nil {
		return nil, apperr.FromDB(err, "show")
	}
	return entries, nil
}

// ---------------- MUTATIONS ----------------

// CreateVenue → insert a new venue inside a transaction. The ID field
// is populated on success.
func (d *DB) CreateVenue(ctx context.Context, venue *models.Venue) error {
	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(venue).Exec(ctx)
		return err
	})
	if err != nil {
		return apperr.FromDB(err, "venue")
	}
	return nil
}

// UpdateVenue → full overwrite of all mutable fields. Partial patches
// are not supported; callers send the complete field set.
func (d *DB) UpdateVenue(ctx context.Context, venue *models.Venue) error {
	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(venue).
			Column("name", "genres", "address", "city", "state", "phone",
				"website_link", "facebook_link", "image_link",
				"seeking_talent", "seeking_description").
			Where("id = ?", venue.ID).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return apperr.FromDB(err, "venue")
	}
	return nil
}

// DeleteVenue → remove a venue and its dependent shows in one
// transaction so no orphaned shows survive.
func (d *DB) DeleteVenue(ctx context.Context, id int64) error {
	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.Show)(nil)).
			Where("venue_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		res, err := tx.NewDelete().
			Model((*models.Venue)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return apperr.FromDB(err, "venue")
	}
	return nil
}
