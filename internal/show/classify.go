// Package show holds the show listing service and the past/upcoming
// classification logic shared by the venue and artist detail views.
package show

import (
	"time"

	"ms-booking/internal/models"
)

// Classify partitions a show history into past and upcoming sets
// relative to now. A show is upcoming iff it starts strictly after
// now; a show starting exactly at now is past. Input order is
// preserved in both outputs, so callers that want reproducible pages
// should pass entries sorted by start time.
func Classify(entries []models.ShowEntry, now time.Time) models.Classification {
	past := make([]models.ShowEntry, 0, len(entries))
	upcoming := make([]models.ShowEntry, 0)

	for _, entry := range entries {
		if entry.StartTime.After(now) {
			upcoming = append(upcoming, entry)
		} else {
			past = append(past, entry)
		}
	}

	return models.Classification{
		PastShows:     past,
		UpcomingShows: upcoming,
		PastCount:     len(past),
		UpcomingCount: len(upcoming),
	}
}
