package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period              string            `json:"period"`
	EventCounts         map[EventType]int `json:"event_counts"`
	DayTicks            int               `json:"day_ticks"`
	GameEvents          int               `json:"game_events"`
	GameEventsPerDay    float64           `json:"game_events_per_day"`
	Departures          int               `json:"departures"`
	PartnershipRequests int               `json:"partnership_requests"`
	SeasonsCompleted    int               `json:"seasons_completed"`
	RecordsSaved        int               `json:"records_saved"`
	EventsByID          map[string]int    `json:"events_by_id"`
	GradeCounts         map[string]int    `json:"grade_counts"`
}

// CalculateStats computes balance stats from events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:      since.Format("2006-01-02"),
		EventCounts: make(map[EventType]int),
		EventsByID:  make(map[string]int),
		GradeCounts: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		// Parse metadata for specific stats
		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventDayTick:
			stats.DayTicks++
		case EventGameEventFired:
			stats.GameEvents++
			if id, ok := metadata["event_id"].(string); ok {
				stats.EventsByID[id]++
			}
		case EventAssociateDeparted:
			stats.Departures++
		case EventPartnershipRequest:
			stats.PartnershipRequests++
		case EventSeasonCompleted:
			stats.SeasonsCompleted++
		case EventLeaderboardSaved:
			stats.RecordsSaved++
			if grade, ok := metadata["grade"].(string); ok {
				stats.GradeCounts[grade]++
			}
		}
	}

	// Calculate per-day rates
	if stats.DayTicks > 0 {
		stats.GameEventsPerDay = float64(stats.GameEvents) / float64(stats.DayTicks)
	}

	return stats, nil
}
