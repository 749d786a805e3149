package telemetry

import "time"

type EventType string

const (
	EventDayTick            EventType = "day_tick"
	EventGameEventFired     EventType = "game_event_fired"
	EventAssociateDeparted  EventType = "associate_departed"
	EventPartnershipRequest EventType = "partnership_requested"
	EventDecisionRaised     EventType = "decision_raised"
	EventLocationOpened     EventType = "location_opened"
	EventChallengeStarted   EventType = "challenge_started"
	EventSeasonCompleted    EventType = "season_completed"
	EventLeaderboardSaved   EventType = "leaderboard_saved"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
