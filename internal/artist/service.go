package artist

import (
	"context"
	"fmt"
	"time"

	"ms-booking/internal/cache"
	"ms-booking/internal/kafka"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
	"ms-booking/internal/show"
	"ms-booking/internal/validation"
)

type DBLayer interface {
	ListArtists(ctx context.Context) ([]models.Artist, error)
	SearchArtists(ctx context.Context, term string) ([]models.Artist, error)
	GetArtistByID(ctx context.Context, id int64) (*models.Artist, error)
	CountUpcomingShows(ctx context.Context, artistID int64, now time.Time) (int, error)
	ArtistShowEntries(ctx context.Context, artistID int64) ([]models.ShowEntry, error)
	CreateArtist(ctx context.Context, artist *models.Artist) error
	UpdateArtist(ctx context.Context, artist *models.Artist) error
}

type CacheLayer interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{})
	Invalidate(ctx context.Context, keys ...string)
}

type EventPublisher interface {
	Publish(topic string, event kafka.Event) error
}

type Service struct {
	DB     DBLayer
	Cache  CacheLayer
	Events EventPublisher
	Topic  string
	Logger *logger.Logger

	Now func() time.Time
}

func NewService(db DBLayer, cacheLayer CacheLayer, events EventPublisher, topic string, log *logger.Logger) *Service {
	return &Service{
		DB:     db,
		Cache:  cacheLayer,
		Events: events,
		Topic:  topic,
		Logger: log,
		Now:    time.Now,
	}
}

// ---------------- ROSTER ----------------

// Roster → the flat list of all artists (id and name only).
func (s *Service) Roster(ctx context.Context) ([]models.ArtistRef, error) {
	var roster []models.ArtistRef
	if s.Cache.Get(ctx, cache.KeyArtistRoster, &roster) {
		return roster, nil
	}

	artists, err := s.DB.ListArtists(ctx)
	if err != nil {
		return nil, err
	}

	roster = make([]models.ArtistRef, 0, len(artists))
	for _, a := range artists {
		roster = append(roster, models.ArtistRef{ID: a.ID, Name: a.Name})
	}

	s.Cache.Set(ctx, cache.KeyArtistRoster, roster)
	return roster, nil
}

// ---------------- SEARCH ----------------

// Search → case-insensitive substring search over artist names. Each
// match carries its own upcoming-show count, scoped to that artist.
func (s *Service) Search(ctx context.Context, term string) (*models.SearchResult, error) {
	artists, err := s.DB.SearchArtists(ctx, term)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	result := &models.SearchResult{Count: len(artists), Data: []models.SearchMatch{}}
	for _, a := range artists {
		count, err := s.DB.CountUpcomingShows(ctx, a.ID, now)
		if err != nil {
			return nil, err
		}
		result.Data = append(result.Data, models.SearchMatch{
			ID:               a.ID,
			Name:             a.Name,
			NumUpcomingShows: count,
		})
	}
	return result, nil
}

// ---------------- DETAIL ----------------

// GetArtistPage → the artist detail view with its show history
// partitioned into past and upcoming sets.
func (s *Service) GetArtistPage(ctx context.Context, id int64) (*models.ArtistPage, error) {
	a, err := s.DB.GetArtistByID(ctx, id)
	if err != nil {
		return nil, err
	}

	genres, err := models.DecodeGenres(a.Genres)
	if err != nil {
		return nil, fmt.Errorf("artist %d has a corrupt genres column: %w", id, err)
	}

	entries, err := s.DB.ArtistShowEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.ArtistPage{
		ID:                 a.ID,
		Name:               a.Name,
		Genres:             genres,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		Website:            a.Website,
		FacebookLink:       a.FacebookLink,
		SeekingVenue:       a.SeekingVenue,
		SeekingDescription: a.SeekingDescription,
		ImageLink:          a.ImageLink,
		Classification:     show.Classify(entries, s.Now()),
	}, nil
}

// ---------------- MUTATIONS ----------------

// Create → validate, then insert a new artist transactionally.
func (s *Service) Create(ctx context.Context, req models.ArtistRequest) (int64, error) {
	if err := validation.Check(req); err != nil {
		return 0, err
	}

	genres, err := models.EncodeGenres(req.Genres)
	if err != nil {
		return 0, err
	}

	a := &models.Artist{
		Name:               req.Name,
		Genres:             genres,
		City:               req.City,
		State:              req.State,
		Phone:              req.Phone,
		Website:            req.Website,
		FacebookLink:       req.FacebookLink,
		ImageLink:          req.ImageLink,
		SeekingVenue:       req.SeekingVenue,
		SeekingDescription: req.SeekingDescription,
	}

	if err := s.DB.CreateArtist(ctx, a); err != nil {
		return 0, err
	}

	s.Logger.LogMutation("artist", "created", a.ID)
	s.afterMutation(ctx, "created", a.ID, a)
	return a.ID, nil
}

// Update → full overwrite of all mutable artist fields.
func (s *Service) Update(ctx context.Context, id int64, req models.ArtistRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}

	genres, err := models.EncodeGenres(req.Genres)
	if err != nil {
		return err
	}

	a := &models.Artist{
		ID:                 id,
		Name:               req.Name,
		Genres:             genres,
		City:               req.City,
		State:              req.State,
		Phone:              req.Phone,
		Website:            req.Website,
		FacebookLink:       req.FacebookLink,
		ImageLink:          req.ImageLink,
		SeekingVenue:       req.SeekingVenue,
		SeekingDescription: req.SeekingDescription,
	}

	if err := s.DB.UpdateArtist(ctx, a); err != nil {
		return err
	}

	s.Logger.LogMutation("artist", "updated", id)
	s.afterMutation(ctx, "updated", id, a)
	return nil
}

func (s *Service) afterMutation(ctx context.Context, action string, id int64, payload interface{}) {
	s.Cache.Invalidate(ctx, cache.KeyArtistRoster)

	event := kafka.Event{Action: action, Entity: "artist", ID: id, Payload: payload}
	if err := s.Events.Publish(s.Topic, event); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("publish artist %s event for id=%d: %v", action, id, err))
	}
}
