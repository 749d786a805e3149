// Package sim is the turn-based simulation core: a single AdvanceDay entry
// point computes one day's economics, staff dynamics, location rollup and
// events, then applies the whole transition atomically.
package sim

import (
	"context"
	"errors"
	"math"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/catalog"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/event"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/rng"
)

// ErrSeasonOver is returned once the season-length day counter is exhausted.
var ErrSeasonOver = errors.New("season is over")

// Engine wires the simulation together. One engine per session; no
// concurrent AdvanceDay calls.
type Engine struct {
	Practice practice.Repository
	Catalog  *catalog.Catalog
	Balance  config.Balance
	Events   *event.Scheduler
	Rand     *rng.Source
	Clock    Clock

	Decisions []DecisionRule

	lastOutcome *Outcome
}

// DecisionRule is a pending-decision trigger: the condition is evaluated
// once per day; decision content and the player's choice live outside the
// core.
type DecisionRule struct {
	ID   string
	When func(*practice.Practice) bool
}

// DefaultDecisionRules are the built-in trigger points surfaced to the
// decision layer.
func DefaultDecisionRules() []DecisionRule {
	return []DecisionRule{
		{ID: "offer_partnership", When: func(p *practice.Practice) bool {
			for _, s := range p.Staff {
				if s.Associate != nil && s.Associate.WantsPartnership && !s.Associate.PartnershipOffered {
					return true
				}
			}
			return false
		}},
		{ID: "hire_regional_manager", When: func(p *practice.Practice) bool {
			return p.SiteCount() >= 4 && !p.HasRegionalManager
		}},
		{ID: "deep_clean", When: func(p *practice.Practice) bool {
			return p.Cleanliness < 40
		}},
		{ID: "emergency_loan", When: func(p *practice.Practice) bool {
			return p.Cash < 0
		}},
	}
}

// DayReport is everything one AdvanceDay produced.
type DayReport struct {
	Day              int            `json:"day"`
	Outcome          Outcome        `json:"outcome"`
	Locations        LocationRollup `json:"locations"`
	Staff            StaffReport    `json:"staff"`
	Events           []event.Fired  `json:"events,omitempty"`
	OpenedLocations  []string       `json:"opened_locations,omitempty"`
	PendingDecisions []string       `json:"pending_decisions,omitempty"`
	Cash             float64        `json:"cash"`
	Reputation       float64        `json:"reputation"`
	Patients         int            `json:"patients"`
	SeasonOver       bool           `json:"season_over"`
}

// AdvanceDay computes and applies exactly one day. The transition is staged
// on a copy of the state and committed in one Set, so a fault can never
// half-apply a day.
func (e *Engine) AdvanceDay(ctx context.Context) (DayReport, error) {
	p, err := e.Practice.Get(ctx)
	if err != nil {
		return DayReport{}, err
	}
	if p.Day >= e.Balance.SeasonDays {
		return DayReport{}, ErrSeasonOver
	}

	p.Day++

	out := ComputeDay(p, e.Catalog, e.Balance)
	rollup := AggregateLocations(p, e.Catalog, e.Balance)

	// Marketing reach scales with the location footprint.
	newPatients := int(float64(out.NewPatients) * (1.0 + rollup.Synergy.MarketingBonus))

	staffReport := UpdateStaffDynamics(p, e.Catalog, e.Balance, out, e.Rand)

	fired := e.Events.ForDay(p.Day, p, e.Balance)

	// Apply the economics.
	p.Cash += out.Net + rollup.TotalRevenue - rollup.TotalCosts
	p.Reputation += out.ReputationDelta
	p.Patients += newPatients
	p.Cleanliness -= 1.5 // daily grime; cleaning is a decision

	var opened []string
	for i := range p.Locations {
		loc := &p.Locations[i]
		if loc.BuildoutDays > 0 {
			loc.BuildoutDays--
			if loc.BuildoutDays == 0 {
				opened = append(opened, loc.ID)
			}
			continue
		}
		for _, res := range rollup.Results {
			if res.LocationID != loc.ID {
				continue
			}
			loc.Reputation += res.ReputationDelta
			loc.Patients += int(float64(res.Patients) * e.Balance.NewPatientRate)
			if res.ManagerPenalty {
				for j := range loc.Staff {
					loc.Staff[j].Morale -= e.Balance.NoManagerMoraleHit
				}
			}
		}
		loc.Cleanliness -= 1.5
	}

	if out.Staffing.Understaffed {
		for i := range p.Staff {
			p.Staff[i].Morale -= 1
		}
	}

	p.Totals.Revenue += out.Revenue + rollup.TotalRevenue
	p.Totals.Expenses += out.Costs.Total + rollup.TotalCosts
	p.Totals.PeakCash = math.Max(p.Totals.PeakCash, p.Cash)
	p.Totals.WorstCash = math.Min(p.Totals.WorstCash, p.Cash)

	p.ClampStats()

	if err := e.Practice.Set(ctx, p); err != nil {
		return DayReport{}, err
	}

	report := DayReport{
		Day:             p.Day,
		Outcome:         out,
		Locations:       rollup,
		Staff:           staffReport,
		Events:          fired,
		OpenedLocations: opened,
		Cash:            p.Cash,
		Reputation:      p.Reputation,
		Patients:        p.Patients,
		SeasonOver:      p.Day >= e.Balance.SeasonDays,
	}
	for _, rule := range e.Decisions {
		if rule.When != nil && rule.When(p) {
			report.PendingDecisions = append(report.PendingDecisions, rule.ID)
		}
	}

	e.lastOutcome = &out
	return report, nil
}

// LastOutcome returns the most recent day's outcome, nil before the first
// tick. The scoring engine consumes it alongside accumulated state.
func (e *Engine) LastOutcome() *Outcome {
	return e.lastOutcome
}
