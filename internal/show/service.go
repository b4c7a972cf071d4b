package show

import (
	"context"
	"fmt"

	"ms-booking/internal/apperr"
	"ms-booking/internal/cache"
	"ms-booking/internal/kafka"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
	"ms-booking/internal/validation"
)

type DBLayer interface {
	ListShows(ctx context.Context) ([]models.ShowListing, error)
	ArtistExists(ctx context.Context, id int64) (bool, error)
	VenueExists(ctx context.Context, id int64) (bool, error)
	CreateShow(ctx context.Context, s *models.Show) error
}

type CacheLayer interface {
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
}

func NewService(db DBLayer, cacheLayer CacheLayer, events EventPublisher, topic string, log *logger.Logger) *Service {
	return &Service{DB: db, Cache: cacheLayer, Events: events, Topic: topic, Logger: log}
}

// ListShows → the global shows view.
func (s *Service) ListShows(ctx context.Context) ([]models.ShowListing, error) {
	return s.DB.ListShows(ctx)
}

// Create → validate, verify both referenced records exist, then insert
// the show transactionally. Shows are create-only.
func (s *Service) Create(ctx context.Context, req models.ShowRequest) (int64, error) {
	if err := validation.Check(req); err != nil {
		return 0, err
	}

	if ok, err := s.DB.ArtistExists(ctx, req.ArtistID); err != nil {
		return 0, err
	} else if !ok {
		return 0, apperr.NotFound(fmt.Sprintf("artist %d not found", req.ArtistID))
	}

	if ok, err := s.DB.VenueExists(ctx, req.VenueID); err != nil {
		return 0, err
	} else if !ok {
		return 0, apperr.NotFound(fmt.Sprintf("venue %d not found", req.VenueID))
	}

	sh := &models.Show{
		ArtistID:  req.ArtistID,
		VenueID:   req.VenueID,
		StartTime: req.StartTime,
	}

	if err := s.DB.CreateShow(ctx, sh); err != nil {
		return 0, err
	}

	s.Logger.LogMutation("show", "created", sh.ID)

	// a new show changes the upcoming counts on the directory page
	s.Cache.Invalidate(ctx, cache.KeyVenueDirectory)

	event := kafka.Event{Action: "created", Entity: "show", ID: sh.ID, Payload: sh}
	if err := s.Events.Publish(s.Topic, event); err != nil {
		s.Logger.Error("KAFKA", fmt.Sprintf("publish show created event for id=%d: %v", sh.ID, err))
	}

	return sh.ID, nil
}
