// Package leaderboard persists season results. The core only produces and
// consumes plain records; the storage mechanism stays behind the Store
// interface.
package leaderboard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one finished (or abandoned) season.
type Record struct {
	ID            string    `json:"id"`
	PlayerName    string    `json:"player_name"`
	PracticeName  string    `json:"practice_name"`
	ChallengeCode string    `json:"challenge_code,omitempty"`
	Difficulty    string    `json:"difficulty"`
	Score         int       `json:"score"`
	Grade         string    `json:"grade"`
	FinalCash     float64   `json:"final_cash"`
	Patients      int       `json:"patients"`
	Reputation    float64   `json:"reputation"`
	Day           int       `json:"day"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewRecord assigns an id and timestamp if the caller didn't.
func NewRecord(r Record) Record {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return r
}

// Store is the persistence collaborator: save, list, filter by challenge.
type Store interface {
	Save(ctx context.Context, r Record) error
	All(ctx context.Context) ([]Record, error)
	ByChallenge(ctx context.Context, code string) ([]Record, error)
}
