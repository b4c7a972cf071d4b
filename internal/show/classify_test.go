package show_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ms-booking/internal/models"
	"ms-booking/internal/show"
)

func entry(id int64, name string, start time.Time) models.ShowEntry {
	return models.ShowEntry{
		CounterpartID:        id,
		CounterpartName:      name,
		CounterpartImageLink: "https://example.com/img.png",
		StartTime:            start,
	}
}

func TestClassifyPartitionsAroundNow(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	t1 := now.Add(-48 * time.Hour)
	t2 := now.Add(72 * time.Hour)

	result := show.Classify([]models.ShowEntry{
		entry(1, "Guns N Petals", t1),
		entry(2, "The Wild Sax Band", t2),
	}, now)

	assert.Equal(t, 1, result.PastCount)
	assert.Equal(t, 1, result.UpcomingCount)
	assert.Len(t, result.PastShows, 1)
	assert.Len(t, result.UpcomingShows, 1)
	assert.Equal(t, t1, result.PastShows[0].StartTime)
	assert.Equal(t, t2, result.UpcomingShows[0].StartTime)
}

func TestClassifyBoundaryIsStrict(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	// a show starting exactly at now is past, never upcoming
	result := show.Classify([]models.ShowEntry{entry(1, "Matt Quevedo", now)}, now)

	assert.Equal(t, 1, result.PastCount)
	assert.Equal(t, 0, result.UpcomingCount)
	assert.Empty(t, result.UpcomingShows)

	// one nanosecond later flips it
	result = show.Classify([]models.ShowEntry{entry(1, "Matt Quevedo", now.Add(time.Nanosecond))}, now)

	assert.Equal(t, 0, result.PastCount)
	assert.Equal(t, 1, result.UpcomingCount)
}

func TestClassifyCountsAlwaysSumToTotal(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	entries := []models.ShowEntry{
		entry(1, "a", now.Add(-time.Hour)),
		entry(2, "b", now),
		entry(3, "c", now.Add(time.Hour)),
		entry(4, "d", now.Add(2*time.Hour)),
		entry(5, "e", now.Add(-2*time.Hour)),
	}

	result := show.Classify(entries, now)

	assert.Equal(t, len(entries), result.PastCount+result.UpcomingCount)
	assert.Equal(t, result.PastCount, len(result.PastShows))
	assert.Equal(t, result.UpcomingCount, len(result.UpcomingShows))
}

func TestClassifyPreservesInputOrder(t *testing.T) {
	now := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)

	entries := []models.ShowEntry{
		entry(3, "third", now.Add(-1 * time.Hour)),
		entry(1, "first", now.Add(-3 * time.Hour)),
		entry(2, "second", now.Add(-2 * time.Hour)),
	}

	result := show.Classify(entries, now)

	assert.Equal(t, []int64{3, 1, 2}, []int64{
		result.PastShows[0].CounterpartID,
		result.PastShows[1].CounterpartID,
		result.PastShows[2].CounterpartID,
	})
}

func TestClassifyEmptyHistory(t *testing.T) {
	result := show.Classify(nil, time.Now())

	assert.Equal(t, 0, result.PastCount)
	assert.Equal(t, 0, result.UpcomingCount)
	assert.NotNil(t, result.PastShows)
	assert.NotNil(t, result.UpcomingShows)
}
