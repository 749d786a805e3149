package event

import (
	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/rng"
)

// Descriptor kinds in a challenge schedule.
const (
	KindEvent     = "event"
	KindExpert    = "expert"
	KindBreakdown = "breakdown"
	KindRent      = "rent"
)

// indexSpace is the fixed roll space for catalog indices. Descriptors store
// the raw roll; resolvers take it modulo their local (possibly filtered)
// catalog, so both challenge participants resolve the same roll even if
// their catalogs differ. Changing this breaks every outstanding challenge
// code.
const indexSpace = 64

// Descriptor is one scheduled occurrence. Index is a roll in [0,indexSpace);
// Amount carries the rent increase for KindRent.
type Descriptor struct {
	Kind   string  `json:"kind"`
	Index  int     `json:"index"`
	Amount float64 `json:"amount,omitempty"`
}

// Schedule maps day number -> ordered descriptors. Built once per
// (seed, length, difficulty) and immutable thereafter.
type Schedule map[int][]Descriptor

// BuildSchedule materializes the full challenge schedule up front from its
// own seeded source. Both participants derive an identical schedule from the
// identical seed; the live source is never consulted.
func BuildSchedule(seed int64, seasonDays int, bal config.Balance) Schedule {
	src := rng.New(seed)
	sched := make(Schedule, seasonDays)

	for day := 1; day <= seasonDays; day++ {
		var slots []Descriptor

		if src.Chance(bal.DailyEventChance) {
			slots = append(slots, Descriptor{Kind: KindEvent, Index: src.Intn(indexSpace)})
		}
		if bal.ExpertEventsEnabled() && src.Chance(bal.ExpertEventChance) {
			slots = append(slots, Descriptor{Kind: KindExpert, Index: src.Intn(indexSpace)})
		}
		if src.Chance(bal.BreakdownChance) {
			slots = append(slots, Descriptor{Kind: KindBreakdown})
		}
		if bal.RentIncreaseEvery > 0 && day%bal.RentIncreaseEvery == 0 && src.Chance(bal.RentIncreaseChance) {
			slots = append(slots, Descriptor{Kind: KindRent, Amount: float64(100 + src.Intn(400))})
		}

		if len(slots) > 0 {
			sched[day] = slots
		}
	}
	return sched
}

// Scheduler produces each day's events for one session. Live sessions roll
// against Src; challenge sessions replay the precomputed schedule.
type Scheduler struct {
	Src      *rng.Source
	Schedule Schedule // nil for live sessions
}

// NewLive returns a live-mode scheduler drawing from src.
func NewLive(src *rng.Source) *Scheduler {
	return &Scheduler{Src: src}
}

// NewChallenge returns a replay scheduler for an already-built schedule.
func NewChallenge(sched Schedule) *Scheduler {
	return &Scheduler{Schedule: sched}
}

// Challenge reports whether this scheduler replays a precomputed schedule.
func (s *Scheduler) Challenge() bool { return s.Schedule != nil }

// ForDay applies the day's events to p and returns what fired. At most one
// ordinary event per day; an expert event may make it two.
func (s *Scheduler) ForDay(day int, p *practice.Practice, bal config.Balance) []Fired {
	defs := Filter(Defs(), bal)
	if len(defs) == 0 {
		return nil
	}
	if s.Challenge() {
		return s.replayDay(day, defs, p, bal)
	}
	return s.liveDay(defs, p, bal)
}

// liveDay iterates the filtered catalog rolling each definition's own
// chance; the first qualifying ordinary event wins, and one expert event may
// still join it.
func (s *Scheduler) liveDay(defs []Def, p *practice.Practice, bal config.Balance) []Fired {
	var fired []Fired
	ordinaryDone := false
	expertDone := false

	for _, d := range defs {
		if len(fired) >= 2 {
			break
		}
		if d.Expert && expertDone || !d.Expert && ordinaryDone {
			continue
		}
		if !s.Src.Chance(d.Chance * bal.EventFrequency) {
			continue
		}
		fired = append(fired, Apply(d, p, s.Src, false))
		if d.Expert {
			expertDone = true
		} else {
			ordinaryDone = true
		}
	}
	return fired
}

// replayDay consumes the precomputed slots for this day. Selection is fully
// deterministic: indices resolve modulo the local catalog and staff picks
// take the first candidate.
func (s *Scheduler) replayDay(day int, defs []Def, p *practice.Practice, bal config.Balance) []Fired {
	slots := s.Schedule[day]
	if len(slots) == 0 {
		return nil
	}

	ordinary := make([]Def, 0, len(defs))
	expert := make([]Def, 0, 4)
	for _, d := range defs {
		if d.Expert {
			expert = append(expert, d)
		} else {
			ordinary = append(ordinary, d)
		}
	}

	var fired []Fired
	for _, slot := range slots {
		switch slot.Kind {
		case KindEvent:
			if len(ordinary) > 0 && len(fired) < 2 {
				d := ordinary[slot.Index%len(ordinary)]
				fired = append(fired, Apply(d, p, nil, true))
			}
		case KindExpert:
			if len(expert) > 0 && len(fired) < 2 {
				d := expert[slot.Index%len(expert)]
				fired = append(fired, Apply(d, p, nil, true))
			}
		case KindBreakdown:
			fired = append(fired, applyBreakdown(p))
		case KindRent:
			p.Rent += slot.Amount
			fired = append(fired, Fired{
				Def:       Def{ID: "rent_increase", Name: "Rent Increase"},
				CashDelta: 0,
				Popup:     "The landlord raised the rent.",
			})
		}
	}
	return fired
}

// applyBreakdown is the scheduled equipment-breakdown slot: a repair bill
// scaled by the equipment-tech relationship, like the live glitch event.
func applyBreakdown(p *practice.Practice) Fired {
	d := Def{ID: "scheduled_breakdown", Name: "Equipment Breakdown", Cash: -1500, MitigatedBy: practice.RelEquipmentTech, Popup: "A compressor failed overnight."}
	return Apply(d, p, nil, true)
}
