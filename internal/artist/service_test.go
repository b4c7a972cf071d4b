package artist_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ms-booking/internal/apperr"
	"ms-booking/internal/artist"
	"ms-booking/internal/cache"
	"ms-booking/internal/kafka"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
)

// Mock implementations
type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) ListArtists(ctx context.Context) ([]models.Artist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Artist), args.Error(1)
}

func (m *MockDBLayer) SearchArtists(ctx context.Context, term string) ([]models.Artist, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Artist), args.Error(1)
}

func (m *MockDBLayer) GetArtistByID(ctx context.Context, id int64) (*models.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *MockDBLayer) CountUpcomingShows(ctx context.Context, artistID int64, now time.Time) (int, error) {
	args := m.Called(ctx, artistID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockDBLayer) ArtistShowEntries(ctx context.Context, artistID int64) ([]models.ShowEntry, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ShowEntry), args.Error(1)
}

func (m *MockDBLayer) CreateArtist(ctx context.Context, a *models.Artist) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockDBLayer) UpdateArtist(ctx context.Context, a *models.Artist) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(topic string, event kafka.Event) error {
	args := m.Called(topic, event)
	return args.Error(0)
}

// fakeCache is an in-memory stand-in for the redis JSON cache.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) bool {
	raw, ok := f.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}) {
	raw, _ := json.Marshal(value)
	f.data[key] = raw
}

func (f *fakeCache) Invalidate(_ context.Context, keys ...string) {
	for _, key := range keys {
		delete(f.data, key)
	}
}

func newTestService(db *MockDBLayer, c artist.CacheLayer, events *MockEventPublisher, now time.Time) *artist.Service {
	s := artist.NewService(db, c, events, "artist-events", logger.NewNop())
	s.Now = func() time.Time { return now }
	return s
}

func validArtistRequest() models.ArtistRequest {
	return models.ArtistRequest{
		Name:      "Guns N Petals",
		Genres:    []string{"Rock n Roll"},
		City:      "San Francisco",
		State:     "CA",
		Phone:     "326-123-5000",
		Website:   "https://www.gunsnpetalsband.com",
		ImageLink: "https://example.com/gnp.jpg",
	}
}

func TestRosterReturnsIDAndNameOnly(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mockDB := new(MockDBLayer)
	service := newTestService(mockDB, newFakeCache(), new(MockEventPublisher), now)

	mockDB.On("ListArtists", mock.Anything).Return([]models.Artist{
		{ID: 4, Name: "Guns N Petals", City: "San Francisco", State: "CA"},
		{ID: 5, Name: "Matt Quevedo", City: "New York", State: "NY"},
	}, nil)

	roster, err := service.Roster(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []models.ArtistRef{
		{ID: 4, Name: "Guns N Petals"},
		{ID: 5, Name: "Matt Quevedo"},
	}, roster)
}

func TestRosterServedFromCache(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mockDB := new(MockDBLayer)
	service := newTestService(mockDB, newFakeCache(), new(MockEventPublisher), now)

	mockDB.On("ListArtists", mock.Anything).Return([]models.Artist{
		{ID: 4, Name: "Guns N Petals"},
	}, nil).Once()

	first, err := service.Roster(context.Background())
	assert.NoError(t, err)

	// second call never reaches the DB
	second, err := service.Roster(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	mockDB.AssertExpectations(t)
}

func TestSearchCountsScopedPerArtist(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mockDB := new(MockDBLayer)
	service := newTestService(mockDB, newFakeCache(), new(MockEventPublisher), now)

	mockDB.On("SearchArtists", mock.Anything, "band").Return([]models.Artist{
		{ID: 4, Name: "Guns N Petals Band"},
		{ID: 6, Name: "The Wild Sax Band"},
	}, nil)
	mockDB.On("CountUpcomingShows", mock.Anything, int64(4), now).Return(0, nil)
	mockDB.On("CountUpcomingShows", mock.Anything, int64(6), now).Return(3, nil)

	result, err := service.Search(context.Background(), "band")

	assert.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 0, result.Data[0].NumUpcomingShows)
	assert.Equal(t, 3, result.Data[1].NumUpcomingShows)
}

func TestSearchNoMatches(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mockDB := new(MockDBLayer)
	service := newTestService(mockDB, newFakeCache(), new(MockEventPublisher), now)

	mockDB.On("SearchArtists", mock.Anything, "zzz").Return([]models.Artist{}, nil)

	result, err := service.Search(context.Background(), "zzz")

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
}

func TestGetArtistPageClassifiesShows(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mockDB := new(MockDBLayer)
	service := newTestService(mockDB, newFakeCache(), new(MockEventPublisher), now)

	genres, _ := models.EncodeGenres([]string{"Rock n Roll"})
	mockDB.On("GetArtistByID", mock.Anything, int64(4)).Return(&models.Artist{
		ID:     4,
		Name:   "Guns N Petals",
		Genres: genres,
		City:   "San Francisco",
		State:  "CA",
	}, nil)
	mockDB.On("ArtistShowEntries", mock.Anything, int64(4)).Return([]models.ShowEntry{
		{CounterpartID: 1, CounterpartName: "The Musical Hop", StartTime: now.Add(-24 * time.Hour)},
		{CounterpartID: 3, CounterpartName: "Park Square Live Music & Coffee", StartTime: now.Add(24 * time.Hour)},
	}, nil)

	page, err := service.GetArtistPage(context.Background(), 4)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Rock n Roll"}, page.Genres)
	assert.Equal(t, 1, page.PastCount)
	assert.Equal(t, 1, page.UpcomingCount)
	assert.Equal(t, int64(1), page.PastShows[0].CounterpartID)
	assert.Equal(t, int64(3), page.UpcomingShows[0].CounterpartID)
}

func TestGetArtistPageNotFound(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mockDB := new(MockDBLayer)
	service := newTestService(mockDB, newFakeCache(), new(MockEventPublisher), now)

	mockDB.On("GetArtistByID", mock.Anything, int64(404)).
		Return(nil, apperr.NotFound("artist not found"))

	_, err := service.GetArtistPage(context.Background(), 404)

	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateValidationShortCircuits(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mockDB := new(MockDBLayer)
	mockEvents := new(MockEventPublisher)
	service := newTestService(mockDB, newFakeCache(), mockEvents, now)

	req := validArtistRequest()
	req.Name = ""

	_, err := service.Create(context.Background(), req)

	assert.True(t, apperr.IsValidation(err))
	mockDB.AssertNotCalled(t, "CreateArtist", mock.Anything, mock.Anything)
	mockEvents.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateRejectsBadPhone(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mockDB := new(MockDBLayer)
	service := newTestService(mockDB, newFakeCache(), new(MockEventPublisher), now)

	req := validArtistRequest()
	req.Phone = "not-a-phone"

	_, err := service.Create(context.Background(), req)

	assert.True(t, apperr.IsValidation(err))
}

func TestCreatePublishesAndInvalidatesRoster(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mockDB := new(MockDBLayer)
	mockEvents := new(MockEventPublisher)
	fc := newFakeCache()
	service := newTestService(mockDB, fc, mockEvents, now)

	// warm the roster cache so we can observe the invalidation
	fc.Set(context.Background(), cache.KeyArtistRoster, []models.ArtistRef{{ID: 1, Name: "stale"}})

	mockDB.On("CreateArtist", mock.Anything, mock.AnythingOfType("*models.Artist")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Artist).ID = 7
		}).Return(nil)
	mockEvents.On("Publish", "artist-events", mock.MatchedBy(func(e kafka.Event) bool {
		return e.Action == "created" && e.Entity == "artist" && e.ID == 7
	})).Return(nil)

	id, err := service.Create(context.Background(), validArtistRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)
	_, cached := fc.data[cache.KeyArtistRoster]
	assert.False(t, cached)
	mockEvents.AssertExpectations(t)
}

func TestUpdateNotFound(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mockDB := new(MockDBLayer)
	mockEvents := new(MockEventPublisher)
	service := newTestService(mockDB, newFakeCache(), mockEvents, now)

	mockDB.On("UpdateArtist", mock.Anything, mock.AnythingOfType("*models.Artist")).
		Return(apperr.NotFound("artist not found"))

	err := service.Update(context.Background(), 404, validArtistRequest())

	assert.True(t, apperr.IsNotFound(err))
	mockEvents.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mockDB := new(MockDBLayer)
	mockEvents := new(MockEventPublisher)
	service := newTestService(mockDB, newFakeCache(), mockEvents, now)

	mockDB.On("UpdateArtist", mock.Anything, mock.AnythingOfType("*models.Artist")).Return(nil)
	mockEvents.On("Publish", mock.Anything, mock.Anything).
		Return(assert.AnError)

	err := service.Update(context.Background(), 4, validArtistRequest())

	assert.NoError(t, err)
}
