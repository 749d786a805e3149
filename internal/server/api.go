package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/event"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/httpmw"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/leaderboard"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/rng"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/score"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/sim"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/telemetry"
)

// App holds the session state the handlers depend on.
type App struct {
	Engine    *sim.Engine
	Board     leaderboard.Store
	Telemetry telemetry.Repository
	Metrics   *Metrics

	// Challenge mode, set when the session was started from a code.
	ChallengeCode string

	BootNow time.Time
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"error": msg})
}

func (app *App) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if app.Telemetry != nil {
		_ = app.Telemetry.RecordEvent(t, md)
	}
}

func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	engine := app.Engine

	Handle(mux, rr, "GET /healthz", "Liveness probe", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"ok":      true,
			"service": "dentaltycoon",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	Handle(mux, rr, "GET /readyz", "Readiness probe", "", func(w http.ResponseWriter, r *http.Request) {
		if _, err := engine.Practice.Get(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "practice state unavailable")
			return
		}
		if app.Board != nil {
			if _, err := app.Board.All(r.Context()); err != nil {
				writeError(w, http.StatusServiceUnavailable, "leaderboard unavailable")
				return
			}
		}
		writeJSON(w, map[string]any{"ok": true})
	})

	// Current session snapshot
	Handle(mux, rr, "GET /api/practice", "Current practice state", "", func(w http.ResponseWriter, r *http.Request) {
		p, err := engine.Practice.Get(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, p)
	})

	Handle(mux, rr, "GET /api/catalog", "Reference data: equipment, plans, staff, marketing", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Catalog)
	})

	Handle(mux, rr, "GET /api/balance", "Active balance tuning", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, engine.Balance)
	})

	// Advance the simulation
	Handle(mux, rr, "POST /api/day/advance", "Advance one or more days", `{"days":1}`, func(w http.ResponseWriter, r *http.Request) {
		body := struct {
			Days int `json:"days"`
		}{Days: 1}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, "invalid json body")
				return
			}
		}
		if body.Days < 1 || body.Days > engine.Balance.SeasonDays {
			writeError(w, http.StatusBadRequest, "days out of range")
			return
		}

		reports := make([]sim.DayReport, 0, body.Days)
		for i := 0; i < body.Days; i++ {
			report, err := engine.AdvanceDay(r.Context())
			if errors.Is(err, sim.ErrSeasonOver) {
				if len(reports) == 0 {
					writeError(w, http.StatusConflict, err.Error())
					return
				}
				break
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			app.observeDay(report)
			reports = append(reports, report)
		}
		if n := len(reports); n > 0 {
			httpmw.Annotate(r.Context(), "day", reports[n-1].Day)
			httpmw.Annotate(r.Context(), "days_run", n)
		}
		if app.ChallengeCode != "" {
			httpmw.Annotate(r.Context(), "challenge", app.ChallengeCode)
		}
		writeJSON(w, reports)
	})

	// Scoring
	Handle(mux, rr, "GET /api/score", "Score the current session", "", func(w http.ResponseWriter, r *http.Request) {
		p, err := engine.Practice.Get(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		result := score.Compute(p, engine.LastOutcome(), engine.Balance)
		if result == nil {
			writeError(w, http.StatusUnprocessableEntity, "not enough days played to score")
			return
		}
		if app.Metrics != nil {
			app.Metrics.LastScore.Set(float64(result.Overall))
		}
		writeJSON(w, map[string]any{
			"result":   result,
			"feedback": score.Summarize(result),
		})
	})

	// Challenge mode
	Handle(mux, rr, "POST /api/challenge/start", "Start a seeded challenge session", `{"code":"K7M2P9","practice_name":"Bright Smiles"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Code         string `json:"code"`
			PracticeName string `json:"practice_name"`
		}
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				writeError(w, http.StatusBadRequest, "invalid json body")
				return
			}
		}
		code := strings.ToUpper(strings.TrimSpace(body.Code))
		if code == "" {
			code = rng.GenerateCode(engine.Rand)
		}
		if err := rng.ValidateCode(code); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		name := strings.TrimSpace(body.PracticeName)
		if name == "" {
			name = "My Practice"
		}

		seed := rng.SeedFromCode(code)
		engine.Events = event.NewChallenge(event.BuildSchedule(seed, engine.Balance.SeasonDays, engine.Balance))
		if err := engine.Practice.Set(r.Context(), practice.New(name)); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		app.ChallengeCode = code
		httpmw.Annotate(r.Context(), "challenge", code)
		app.record(telemetry.EventChallengeStarted, telemetry.EventMetadata{"code": code})

		writeJSON(w, map[string]any{
			"code":        code,
			"season_days": engine.Balance.SeasonDays,
		})
	})

	Handle(mux, rr, "GET /api/challenge/schedule", "Replay schedule for the active challenge", "", func(w http.ResponseWriter, r *http.Request) {
		if engine.Events == nil || !engine.Events.Challenge() {
			writeError(w, http.StatusNotFound, "no active challenge")
			return
		}
		writeJSON(w, map[string]any{
			"code":     app.ChallengeCode,
			"schedule": engine.Events.Schedule,
		})
	})

	// Leaderboard
	Handle(mux, rr, "GET /api/leaderboard", "Top season results", "", func(w http.ResponseWriter, r *http.Request) {
		if app.Board == nil {
			writeError(w, http.StatusNotFound, "leaderboard disabled")
			return
		}
		records, err := app.Board.All(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, records)
	})

	Handle(mux, rr, "GET /api/leaderboard/challenge/{code}", "Results for one challenge code", "", func(w http.ResponseWriter, r *http.Request) {
		if app.Board == nil {
			writeError(w, http.StatusNotFound, "leaderboard disabled")
			return
		}
		records, err := app.Board.ByChallenge(r.Context(), r.PathValue("code"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, records)
	})

	Handle(mux, rr, "POST /api/leaderboard", "Save the current session to the board", `{"player_name":"ada"}`, func(w http.ResponseWriter, r *http.Request) {
		if app.Board == nil {
			writeError(w, http.StatusNotFound, "leaderboard disabled")
			return
		}
		var body struct {
			PlayerName string `json:"player_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(body.PlayerName) == "" {
			writeError(w, http.StatusBadRequest, "player_name is required")
			return
		}

		p, err := engine.Practice.Get(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		result := score.Compute(p, engine.LastOutcome(), engine.Balance)
		if result == nil {
			writeError(w, http.StatusUnprocessableEntity, "not enough days played to score")
			return
		}

		rec := leaderboard.NewRecord(leaderboard.Record{
			PlayerName:    strings.TrimSpace(body.PlayerName),
			PracticeName:  p.Name,
			ChallengeCode: app.ChallengeCode,
			Difficulty:    string(engine.Balance.Difficulty),
			Score:         result.Overall,
			Grade:         result.Grade,
			FinalCash:     p.Cash,
			Patients:      p.Patients,
			Reputation:    p.Reputation,
			Day:           p.Day,
		})
		if err := app.Board.Save(r.Context(), rec); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		httpmw.Annotate(r.Context(), "score", rec.Score)
		app.record(telemetry.EventLeaderboardSaved, telemetry.EventMetadata{
			"record_id": rec.ID,
			"score":     rec.Score,
			"grade":     rec.Grade,
		})
		if app.Metrics != nil {
			app.Metrics.RecordsSaved.Inc()
		}
		writeJSON(w, rec)
	})

	// Telemetry stats
	Handle(mux, rr, "GET /api/stats", "Session telemetry rollup", "", func(w http.ResponseWriter, r *http.Request) {
		if app.Telemetry == nil {
			writeError(w, http.StatusNotFound, "telemetry disabled")
			return
		}
		since := app.BootNow
		if raw := r.URL.Query().Get("since"); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "since must be RFC3339")
				return
			}
			since = t
		}
		events, err := app.Telemetry.GetEvents(since, nil)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		stats, err := telemetry.CalculateStats(events, since)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, stats)
	})
}

// observeDay mirrors one committed day into telemetry and metrics.
func (app *App) observeDay(report sim.DayReport) {
	app.record(telemetry.EventDayTick, telemetry.EventMetadata{
		"day":      report.Day,
		"cash":     report.Cash,
		"patients": report.Patients,
	})
	for _, fired := range report.Events {
		app.record(telemetry.EventGameEventFired, telemetry.EventMetadata{
			"event_id": fired.Def.ID,
			"day":      report.Day,
		})
		if app.Metrics != nil {
			app.Metrics.GameEvents.WithLabelValues(fired.Def.ID).Inc()
		}
	}
	for _, dep := range report.Staff.Departures {
		app.record(telemetry.EventAssociateDeparted, telemetry.EventMetadata{
			"staff_id":      dep.StaffID,
			"patients_lost": dep.PatientsLost,
		})
		if app.Metrics != nil {
			app.Metrics.Departures.Inc()
		}
	}
	for _, id := range report.Staff.PartnershipRequests {
		app.record(telemetry.EventPartnershipRequest, telemetry.EventMetadata{"staff_id": id})
	}
	for _, id := range report.OpenedLocations {
		app.record(telemetry.EventLocationOpened, telemetry.EventMetadata{"location_id": id, "day": report.Day})
	}
	for _, id := range report.PendingDecisions {
		app.record(telemetry.EventDecisionRaised, telemetry.EventMetadata{"decision": id, "day": report.Day})
	}
	if report.SeasonOver {
		app.record(telemetry.EventSeasonCompleted, telemetry.EventMetadata{"day": report.Day})
	}
	if app.Metrics != nil {
		app.Metrics.DaysSimulated.Inc()
		app.Metrics.Cash.Set(report.Cash)
		app.Metrics.Patients.Set(float64(report.Patients))
	}
}
