package venue

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
	ListVenues(ctx context.Context) ([]models.Venue, error)
	SearchVenues(ctx context.Context, term string) ([]models.Venue, error)
	GetVenueByID(ctx context.Context, id int64) (*models.Venue, error)
	CountUpcomingShows(ctx context.Context, venueID int64, now time.Time) (int, error)
	VenueShowEntries(ctx context.Context, venueID int64) ([]models.ShowEntry, error)
	CreateVenue(ctx context.Context, venue *models.Venue) error
	UpdateVenue(ctx context.Context, venue *models.Venue) error
	DeleteVenue(ctx context.Context, id int64) error
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

	// Now supplies the reference time for past/upcoming decisions;
	// overridable in tests.
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

// ---------------- DIRECTORY ----------------

// ListVenueGroups → the venue directory, one group per distinct
// (state, city) pair. Grouping is exact-match on the raw strings, so
// venues differing only in casing land in different groups.
func (s *Service) ListVenueGroups(ctx context.Context) ([]models.VenueGroup, error) {
	var groups []models.VenueGroup
	if s.Cache.Get(ctx, cache.KeyVenueDirectory, &groups) {
		return groups, nil
	}

	venues, err := s.DB.ListVenues(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	groups = []models.VenueGroup{}
	for _, v := range venues {
		count, err := s.DB.CountUpcomingShows(ctx, v.ID, now)
		if err != nil {
			return nil, err
		}
		summary := models.VenueSummary{ID: v.ID, Name: v.Name, NumUpcomingShows: count}

		// venues arrive sorted by (state, city), so a group break is
		// just a key change against the previous row
		if n := len(groups); n > 0 && groups[n-1].State == v.State && groups[n-1].City == v.City {
			groups[n-1].Venues = append(groups[n-1].Venues, summary)
			continue
		}
		groups = append(groups, models.VenueGroup{
			City:   v.City,
			State:  v.State,
			Venues: []models.VenueSummary{summary},
		})
	}

	s.Cache.Set(ctx, cache.KeyVenueDirectory, groups)
	return groups, nil
}

// ---------------- SEARCH ----------------

// Search → case-insensitive substring search over venue names. Each
// match carries its own upcoming-show count, scoped to that venue.
func (s *Service) Search(ctx context.Context, term string) (*models.SearchResult, error) {
	venues, err := s.DB.SearchVenues(ctx, term)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	result := &models.SearchResult{Count: len(venues), Data: []models.SearchMatch{}}
	for _, v := range venues {
		count, err := s.DB.CountUpcomingShows(ctx, v.ID, now)
		if err != nil {
			return nil, err
		}
		result.Data = append(result.Data, models.SearchMatch{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: count,
		})
	}
	return result, nil
}

// ---------------- DETAIL ----------------

// GetVenuePage → the venue detail view with its show history
// partitioned into past and upcoming sets.
func (s *Service) GetVenuePage(ctx context.Context, id int64) (*models.VenuePage, error) {
	v, err := s.DB.GetVenueByID(ctx, id)
	if err != nil {
		return nil, err
	}

	genres, err := models.DecodeGenres(v.Genres)
	if err != nil {
		return nil, fmt.Errorf("venue %d has a corrupt genres column: %w", id, err)
	}

	entries, err := s.DB.VenueShowEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.VenuePage{
		ID:                 v.ID,
		Name:               v.Name,
		Genres:             genres,
		Address:            v.Address,
		City:               v.City,
		State:              v.State,
		Phone:              v.Phone,
		Website:            v.Website,
		FacebookLink:       v.FacebookLink,
		SeekingTalent:      v.SeekingTalent,
		SeekingDescription: v.SeekingDescription,
		ImageLink:          v.ImageLink,
		Classification:     show.Classify(entries, s.Now()),
	}, nil
}

// ---------------- MUTATIONS ----------------

// Create → validate, then insert a new venue transactionally. Returns
// the new venue's id.
func (s *Service) Create(ctx context.Context, req models.VenueRequest) (int64, error) {
	if err := validation.Check(req); err != nil {
		return 0, err
	}

	genres, err := models.EncodeGenres(req.Genres)
	if err != nil {
		return 0, err
	}

	v := &models.Venue{
		Name:               req.Name,
		Genres:             genres,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Phone:              req.Phone,
		Website:            req.Website,
		FacebookLink:       req.FacebookLink,
		ImageLink:          req.ImageLink,
		SeekingTalent:      req.SeekingTalent,
		SeekingDescription: req.SeekingDescription,
	}

	if err := s.DB.CreateVenue(ctx, v); err != nil {
		return 0, err
	}

	s.Logger.LogMutation("venue", "created", v.ID)
	s.afterMutation(ctx, "created", v.ID, v)
	return v.ID, nil
}

// Update → full overwrite of all mutable venue fields.
func (s *Service) Update(ctx context.Context, id int64, req models.VenueRequest) error {
	if err := validation.Check(req); err != nil {
		return err
	}

	genres, err := models.EncodeGenres(req.Genres)
	if err != nil {
		return err
	}

	v := &models.Venue{
		ID:                 id,
		Name:               req.Name,
		Genres:             genres,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Phone:              req.Phone,
		Website:            req.Website,
		FacebookLink:       req.FacebookLink,
		ImageLink:          req.ImageLink,
		SeekingTalent:      req.SeekingTalent,
		SeekingDescription: req.SeekingDescription,
	}

	if err := s.DB.UpdateVenue(ctx, v); err != nil {
		return err
	}

	s.Logger.LogMutation("venue", "updated", id)
	s.afterMutation(ctx, "updated", id, v)
	return nil
}

// Delete → remove a venue and its shows.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.DB.DeleteVenue(ctx, id); err != nil {
		return err
	}

	s.Logger.LogMutation("venue", "deleted", id)
	s.afterMutation(ctx, "deleted", id, nil)
	return nil
}

// afterMutation drops the stale directory cache and streams the
// mutation event. Publish failures are logged, never surfaced: the
// record is already durably committed.
func (s *Service) afterMutation(ctx context.Context, action string, id int64, payload interface{}) {
	s.Cache.Invalidate(ctx, cache.KeyVenueDirectory)

	event := kafka.Event{Action: action, Entity: "venue", ID: id, Payload: payload}
	if err := s.Events.Publish(s.Topic, event); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("publish venue %s event for id=%d: %v", action, id, err))
	}
}
