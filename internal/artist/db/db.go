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

// ListArtists → every artist ordered by id, for the flat roster view.
func (d *DB) ListArtists(ctx context.Context) ([]models.Artist, error) {
	var artists []models.Artist
	err := d.Bun.NewSelect().
		Model(&artists).
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, apperr.FromDB(err, "artist")
	}
	return artists, nil
}

// SearchArtists → case-insensitive substring match on name, ordered by
// id. An empty term matches every artist.
func (d *DB) SearchArtists(ctx context.Context, term string) ([]models.Artist, error) {
	var artists []models.Artist
	err := d.Bun.NewSelect().
		Model(&artists).
		Where("lower(name) LIKE ?", "%"+strings.ToLower(term)+"%").
		Order("id").
		Scan(ctx)
	if err != nil {
		return nil, apperr.FromDB(err, "artist")
	}
	return artists, nil
}

// GetArtistByID → fetch one artist by its ID
func (d *DB) GetArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	var artist models.Artist
	err := d.Bun.NewSelect().
		Model(&artist).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, apperr.FromDB(err, "artist")
	}
	return &artist, nil
}

// CountUpcomingShows → number of this artist's shows starting strictly
// after now. Scoped to the artist id, never a global count.
func (d *DB) CountUpcomingShows(ctx context.Context, artistID int64, now time.Time) (int, error) {
	count, err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		Where("artist_id = ?", artistID).
		Where("start_time > ?", now).
		Count(ctx)
	if err != nil {
		return 0, apperr.FromDB(err, "show")
	}
	return count, nil
}

// ArtistShowEntries → the artist's full show history joined with the
// hosting venue's display fields, sorted by start time.
func (d *DB) ArtistShowEntries(ctx context.Context, artistID int64) ([]models.ShowEntry, error) {
	var entries []models.ShowEntry
	err := d.Bun.NewSelect().
		Model((*models.Show)(nil)).
		ColumnExpr("venue.id AS counterpart_id").
		ColumnExpr("venue.name AS counterpart_name").
		ColumnExpr("venue.image_link AS counterpart_image_link").
		ColumnExpr("show.start_time AS start_time").
		Join("JOIN venues AS venue ON venue.id = show.venue_id").
		Where("show.artist_id = ?", artistID).
		Order("show.start_time").
		Scan(ctx, &entries)
	if err != nil {
		return nil, apperr.FromDB(err, "show")
	}
	return entries, nil
}

// ---------------- MUTATIONS ----------------

// CreateArtist → insert a new artist inside a transaction. The ID
// field is populated on success.
func (d *DB) CreateArtist(ctx context.Context, artist *models.Artist) error {
	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(artist).Exec(ctx)
		return err
	})
	if err != nil {
		return apperr.FromDB(err, "artist")
	}
	return nil
}

// UpdateArtist → full overwrite of all mutable fields.
func (d *DB) UpdateArtist(ctx context.Context, artist *models.Artist) error {
	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model(artist).
			Column("name", "genres", "city", "state", "phone",
				"website_link", "facebook_link", "image_link",
				"seeking_venue", "seeking_description").
			Where("id = ?", artist.ID).
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
		return apperr.FromDB(err, "artist")
	}
	return nil
}
