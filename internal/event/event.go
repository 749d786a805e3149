// Package event owns the random-event catalog and the two ways events get
// scheduled: live rolls for a normal session, and a precomputed seed-derived
// schedule for challenge mode.
package event

import (
	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/rng"
)

// Def is an immutable event definition.
type Def struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Chance float64 `json:"chance"` // live-mode daily probability before the frequency multiplier
	Expert bool    `json:"expert"` // only fires on the hardest difficulty

	// Base effect deltas; Apply modulates them against current state.
	Cash       float64 `json:"cash"`
	Reputation float64 `json:"reputation"`
	Patients   int     `json:"patients"`
	Morale     float64 `json:"morale"`
	FiresStaff bool    `json:"fires_staff"`
	Popup      string  `json:"popup,omitempty"`

	// MitigatedBy names a relationship that softens a negative event when
	// it is strong (>=70) and worsens it when weak (<30).
	MitigatedBy string `json:"mitigated_by,omitempty"`
}

// Fired is an applied event.
type Fired struct {
	Def          Def     `json:"def"`
	CashDelta    float64 `json:"cash_delta"`
	RepDelta     float64 `json:"rep_delta"`
	PatientDelta int     `json:"patient_delta"`
	FiredStaffID string  `json:"fired_staff_id,omitempty"`
	Popup        string  `json:"popup,omitempty"`
}

// Defs returns the built-in event catalog in its canonical order. Challenge
// descriptors index into this order, so append only.
func Defs() []Def {
	return []Def{
		{ID: "supply_shortage", Name: "Supply Shortage", Chance: 0.015, Cash: -800, MitigatedBy: practice.RelSupplyRep, Popup: "Your supplier shorted this week's order."},
		{ID: "equipment_glitch", Name: "Equipment Glitch", Chance: 0.02, Cash: -1200, MitigatedBy: practice.RelEquipmentTech, Popup: "An operatory chair needs an emergency service call."},
		{ID: "glowing_review", Name: "Glowing Review", Chance: 0.02, Reputation: 0.15, Patients: 4, Popup: "A patient's five-star review is making the rounds."},
		{ID: "scathing_review", Name: "Scathing Review", Chance: 0.015, Reputation: -0.2, Popup: "A one-star review just went viral locally."},
		{ID: "referral_wave", Name: "Referral Wave", Chance: 0.015, Patients: 8, MitigatedBy: practice.RelReferringDocs, Popup: "A referring physician sent a wave of new patients."},
		{ID: "staff_conflict", Name: "Staff Conflict", Chance: 0.02, Morale: -8, Popup: "Two team members are feuding in the break room."},
		{ID: "records_audit", Name: "Records Audit", Chance: 0.01, Cash: -2500, Popup: "A payer audit is eating admin hours."},
		{ID: "community_fair", Name: "Community Health Fair", Chance: 0.015, Reputation: 0.1, Patients: 3, Cash: -400, Popup: "Your booth at the health fair paid off."},
		{ID: "no_call_no_show", Name: "Assistant Walkout", Chance: 0.008, FiresStaff: true, Morale: -5, Popup: "An assistant walked out mid-shift."},
		{ID: "lab_delay", Name: "Lab Case Delays", Chance: 0.015, Cash: -600, Reputation: -0.05, MitigatedBy: practice.RelLab, Popup: "Late lab cases forced appointment reshuffles."},

		// Expert pool.
		{ID: "embezzlement", Name: "Embezzlement Discovered", Chance: 0.006, Expert: true, Cash: -9000, Morale: -10, Popup: "Bookkeeping irregularities surfaced in the audit."},
		{ID: "malpractice_claim", Name: "Malpractice Claim", Chance: 0.005, Expert: true, Cash: -12000, Reputation: -0.4, Popup: "A former patient filed a malpractice claim."},
		{ID: "associate_poached", Name: "Associate Poached", Chance: 0.006, Expert: true, Morale: -12, Popup: "A competitor is courting your associates."},
		{ID: "landlord_dispute", Name: "Landlord Dispute", Chance: 0.006, Expert: true, Cash: -3000, MitigatedBy: practice.RelLandlord, Popup: "The landlord is contesting your buildout."},
	}
}

// Filter returns the defs active for a difficulty: expert events only exist
// on the hardest preset.
func Filter(defs []Def, bal config.Balance) []Def {
	out := make([]Def, 0, len(defs))
	for _, d := range defs {
		if d.Expert && !bal.ExpertEventsEnabled() {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Apply resolves an event against current practice state and mutates it.
// Triggering may be deterministic (challenge mode) but the outcome still
// reads the state: strong relationships soften bad news, weak ones compound
// it, and staff effects depend on who is actually employed. When
// deterministic is true the affected staff member is the first matching
// candidate instead of a random pick, so replays stay bit-identical.
func Apply(d Def, p *practice.Practice, src *rng.Source, deterministic bool) Fired {
	f := Fired{Def: d, Popup: d.Popup}

	scale := 1.0
	if d.MitigatedBy != "" {
		rel := p.Relationships[d.MitigatedBy]
		switch {
		case rel >= 70:
			scale = 0.5
		case rel < 30:
			scale = 1.5
		}
	}

	cash := d.Cash
	rep := d.Reputation
	if cash < 0 {
		cash *= scale
	}
	if rep < 0 {
		rep *= scale
	}
	// Positive referral-style events scale up with the relationship instead.
	patients := d.Patients
	if patients > 0 && scale == 0.5 {
		patients = patients * 3 / 2
	}

	f.CashDelta = cash
	f.RepDelta = rep
	f.PatientDelta = patients

	p.Cash += cash
	p.Reputation += rep
	p.Patients += patients

	if d.Morale != 0 {
		for i := range p.Staff {
			p.Staff[i].Morale += d.Morale
		}
	}

	if d.FiresStaff {
		if id, ok := pickFireable(p, src, deterministic); ok {
			p.RemoveStaff(id)
			p.Totals.Fires++
			f.FiredStaffID = id
		}
	}

	p.ClampStats()
	return f
}

// pickFireable chooses a non-provider staff member: the first candidate in
// challenge replays, a random one live. The owner (first provider) is never
// eligible.
func pickFireable(p *practice.Practice, src *rng.Source, deterministic bool) (string, bool) {
	var candidates []string
	for _, s := range p.Staff {
		if !s.CanSeePatients {
			candidates = append(candidates, s.ID)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	if deterministic {
		return candidates[0], true
	}
	return candidates[src.Intn(len(candidates))], true
}
