// Package score grades accumulated practice state into a category breakdown
// and an overall 1-1000 score. The band tables are tuned gameplay-balance
// numbers; keep them as given.
package score

import (
	"fmt"
	"math"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/sim"
)

// Category ids.
const (
	CatOverhead     = "overhead"
	CatProfitMargin = "profit_margin"
	CatPatientFlow  = "patient_flow"
	CatSatisfaction = "satisfaction"
	CatReputation   = "reputation"
	CatRevenueSqft  = "revenue_sqft"
	CatStaff        = "staff"
	CatTraining     = "training"
	CatInsuranceMix = "insurance_mix"
	CatCashPosition = "cash_position"
	CatEmpire       = "empire"
)

// Band maps a threshold to a subscore. Bands are ordered best-first; the
// first band whose threshold the metric meets wins, else the floor score.
type Band struct {
	Threshold float64
	Score     float64
}

type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	SubScore float64 `json:"sub_score"`
	Grade    string  `json:"grade"`
	Value    string  `json:"value"`
	Target   string  `json:"target"`
	Tip      string  `json:"tip"`
}

type Result struct {
	Categories map[string]Category `json:"categories"`
	Overall    int                 `json:"overall"` // 1..1000
	Grade      string              `json:"grade"`
}

type categoryDef struct {
	id, name    string
	weight      float64
	lowerBetter bool
	bands       []Band
	floor       float64
	target, tip string
	metric      func(*practice.Practice, *sim.Outcome) float64
	format      func(float64) string
}

func pct(v float64) string    { return fmt.Sprintf("%.0f%%", v*100) }
func num(v float64) string    { return fmt.Sprintf("%.1f", v) }
func dollar(v float64) string { return fmt.Sprintf("$%.2f", v) }

func definitions() []categoryDef {
	return []categoryDef{
		{
			id: CatOverhead, name: "Overhead Control", weight: 15, lowerBetter: true,
			bands:  []Band{{0.45, 100}, {0.55, 85}, {0.65, 70}, {0.75, 50}, {0.85, 30}},
			floor:  10, target: "under 55%", tip: "Renegotiate supplies and trim low-margin plans to bring overhead down.",
			metric: metricOverhead, format: pct,
		},
		{
			id: CatProfitMargin, name: "Profit Margin", weight: 15,
			bands:  []Band{{0.30, 100}, {0.20, 85}, {0.12, 70}, {0.05, 50}, {0.0, 30}},
			floor:  10, target: "over 20%", tip: "Raise fee-side revenue before cutting costs that patients can feel.",
			metric: metricMargin, format: pct,
		},
		{
			id: CatPatientFlow, name: "Patient Growth", weight: 10,
			bands:  []Band{{8, 100}, {6, 90}, {4, 70}, {2, 50}, {1, 30}},
			floor:  10, target: "6+ patients of record per day played", tip: "Add a marketing channel or a high-pool plan to fill the book.",
			metric: func(p *practice.Practice, _ *sim.Outcome) float64 {
				if p.Day == 0 {
					return 0
				}
				return float64(p.Patients) / float64(p.Day)
			},
			format: num,
		},
		{
			id: CatSatisfaction, name: "Patient Satisfaction", weight: 10,
			bands:  []Band{{85, 100}, {75, 85}, {65, 70}, {55, 50}, {45, 30}},
			floor:  10, target: "75+", tip: "Cleanliness and staff attitude move satisfaction fastest.",
			metric: func(_ *practice.Practice, o *sim.Outcome) float64 { return o.Satisfaction },
			format: num,
		},
		{
			id: CatReputation, name: "Reputation", weight: 10,
			bands:  []Band{{4.5, 100}, {4.0, 85}, {3.5, 70}, {3.0, 55}, {2.0, 35}},
			floor:  15, target: "4.0 stars", tip: "Serve the demand you generate; unmet demand bleeds stars.",
			metric: func(p *practice.Practice, _ *sim.Outcome) float64 { return p.Reputation },
			format: num,
		},
		{
			id: CatRevenueSqft, name: "Revenue per Sq Ft", weight: 10,
			bands:  []Band{{3.0, 100}, {2.0, 85}, {1.2, 70}, {0.7, 50}, {0.3, 30}},
			floor:  10, target: "$2.00+/sqft/day", tip: "Idle square footage is rent with no production; build out or sublease.",
			metric: metricRevenueSqft, format: dollar,
		},
		{
			id: CatStaff, name: "Team Strength", weight: 10,
			bands:  []Band{{80, 100}, {70, 85}, {60, 70}, {50, 50}, {40, 30}},
			floor:  10, target: "70+ composite", tip: "Morale decays quietly; understaffing and departures both drain it.",
			metric: metricStaffComposite, format: num,
		},
		{
			id: CatTraining, name: "Continuing Education", weight: 5,
			bands:  []Band{{4, 100}, {3, 90}, {2, 70}, {1, 50}},
			floor:  20, target: "3+ completed programs", tip: "CE spend pays back through the skill fee multiplier.",
			metric: func(p *practice.Practice, _ *sim.Outcome) float64 { return float64(len(p.CompletedTraining)) },
			format: func(v float64) string { return fmt.Sprintf("%.0f", v) },
		},
		{
			id: CatInsuranceMix, name: "Payer Mix", weight: 10,
			bands:  []Band{{0.90, 100}, {0.80, 85}, {0.70, 70}, {0.60, 50}, {0.50, 30}},
			floor:  15, target: "0.80+ effective reimbursement", tip: "Drop the deepest-discount plan once the chairs stay full without it.",
			metric: func(_ *practice.Practice, o *sim.Outcome) float64 { return o.EffectiveRate },
			format: num,
		},
		{
			id: CatCashPosition, name: "Cash Position", weight: 5,
			bands:  []Band{{3, 100}, {2, 85}, {1, 70}, {0.5, 50}, {0, 30}},
			floor:  10, target: "2+ months of runway", tip: "Keep enough cash to survive a bad month plus a breakdown.",
			metric: metricRunway, format: num,
		},
	}
}

var empireDef = categoryDef{
	id: CatEmpire, name: "Empire Management", weight: 9,
	bands: []Band{{4.0, 100}, {3.0, 75}, {2.0, 50}},
	floor: 25, target: "healthy satellites under management", tip: "Satellites need a regional manager once you run four sites.",
	metric: metricEmpire, format: num,
}

// Compute grades the practice. It returns nil before the minimum day: not an
// error, just not enough history to be meaningful.
func Compute(p *practice.Practice, out *sim.Outcome, bal config.Balance) *Result {
	if out == nil || p.Day < bal.ScoreMinDay {
		return nil
	}

	defs := definitions()
	if len(p.Locations) > 0 {
		// The empire category's weight is taken from three others so the
		// total stays at 100.
		for i := range defs {
			switch defs[i].id {
			case CatOverhead, CatProfitMargin:
				defs[i].weight -= 3
			case CatRevenueSqft:
				defs[i].weight -= 3
			}
		}
		defs = append(defs, empireDef)
	}

	res := &Result{Categories: make(map[string]Category, len(defs))}
	weighted := 0.0
	totalWeight := 0.0
	for _, def := range defs {
		metric := def.metric(p, out)
		sub := bandScore(def, metric)
		res.Categories[def.id] = Category{
			ID:       def.id,
			Name:     def.name,
			Weight:   def.weight,
			SubScore: sub,
			Grade:    subGrade(sub),
			Value:    def.format(metric),
			Target:   def.target,
			Tip:      def.tip,
		}
		weighted += sub * def.weight
		totalWeight += def.weight
	}

	overall := weighted / totalWeight * 10.0 * bal.ScoreMultiplier
	res.Overall = int(math.Round(clampF(overall, 1, 1000)))
	res.Grade = overallGrade(res.Overall)
	return res
}

// bandScore walks the ordered bands: first threshold the metric meets wins.
func bandScore(def categoryDef, metric float64) float64 {
	for _, b := range def.bands {
		if def.lowerBetter {
			if metric <= b.Threshold {
				return b.Score
			}
		} else if metric >= b.Threshold {
			return b.Score
		}
	}
	return def.floor
}

func subGrade(sub float64) string {
	switch {
	case sub >= 90:
		return "A"
	case sub >= 75:
		return "B"
	case sub >= 60:
		return "C"
	case sub >= 45:
		return "D"
	default:
		return "F"
	}
}

func overallGrade(overall int) string {
	switch {
	case overall >= 900:
		return "A+"
	case overall >= 800:
		return "A"
	case overall >= 650:
		return "B"
	case overall >= 500:
		return "C"
	case overall >= 350:
		return "D"
	default:
		return "F"
	}
}

func metricOverhead(p *practice.Practice, _ *sim.Outcome) float64 {
	if p.Totals.Revenue <= 0 {
		return 1.0
	}
	return p.Totals.Expenses / p.Totals.Revenue
}

func metricMargin(p *practice.Practice, _ *sim.Outcome) float64 {
	if p.Totals.Revenue <= 0 {
		return 0
	}
	return (p.Totals.Revenue - p.Totals.Expenses) / p.Totals.Revenue
}

func metricRevenueSqft(p *practice.Practice, o *sim.Outcome) float64 {
	if p.Sqft <= 0 {
		return 0
	}
	return o.Revenue / float64(p.Sqft)
}

func metricStaffComposite(p *practice.Practice, _ *sim.Outcome) float64 {
	if len(p.Staff) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range p.Staff {
		sum += (s.Skill + s.Attitude + s.Reliability + s.Morale) / 4.0
	}
	return sum / float64(len(p.Staff))
}

// metricRunway is months of cash at the session's average burn rate.
func metricRunway(p *practice.Practice, _ *sim.Outcome) float64 {
	if p.Day == 0 || p.Totals.Expenses <= 0 {
		if p.Cash > 0 {
			return 3
		}
		return 0
	}
	monthlyBurn := p.Totals.Expenses / float64(p.Day) * 30.0
	if monthlyBurn <= 0 {
		return 3
	}
	return math.Max(0, p.Cash/monthlyBurn)
}

// metricEmpire is the average satellite reputation, dragged down hard when
// four or more sites run without a regional manager.
func metricEmpire(p *practice.Practice, _ *sim.Outcome) float64 {
	if len(p.Locations) == 0 {
		return 0
	}
	sum := 0.0
	for _, loc := range p.Locations {
		sum += loc.Reputation
	}
	avg := sum / float64(len(p.Locations))
	if p.SiteCount() >= 4 && !p.HasRegionalManager {
		avg = math.Min(avg, 1.5)
	}
	return avg
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
