package sim

import (
	"math"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/catalog"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/rng"
)

// Departure reports an associate who quit, with the damage applied.
type Departure struct {
	StaffID      string `json:"staff_id"`
	Name         string `json:"name"`
	PatientsLost int    `json:"patients_lost"`
}

// StaffReport summarizes one day of staff dynamics.
type StaffReport struct {
	Departures          []Departure `json:"departures,omitempty"`
	PartnershipRequests []string    `json:"partnership_requests,omitempty"`
	CriticalFlightRisks []string    `json:"critical_flight_risks,omitempty"`
}

// UpdateStaffDynamics ticks tenure for everyone and runs the associate
// loyalty/attrition model. It mutates p in place; the engine calls it inside
// the atomic day application.
func UpdateStaffDynamics(p *practice.Practice, cat *catalog.Catalog, bal config.Balance, out Outcome, src *rng.Source) StaffReport {
	report := StaffReport{}

	providers := 0
	for _, s := range p.Staff {
		if s.CanSeePatients {
			providers++
		}
	}

	var departed []string
	for i := range p.Staff {
		s := &p.Staff[i]
		s.DaysEmployed++
		if s.Associate == nil {
			continue
		}
		a := s.Associate

		a.Loyalty = associateLoyalty(p, cat, s, bal)
		a.FlightRisk = flightRisk(a.Loyalty)

		// Rolling 30-day production estimate from this provider's share of
		// the day's visit revenue.
		todayShare := 0.0
		if providers > 0 {
			todayShare = out.VisitRevenue / float64(providers)
		}
		a.Production30 = a.Production30*(29.0/30.0) + todayShare/30.0

		// Patients who would follow this associate out the door.
		maxAttach := int(float64(p.Patients) * bal.MaxAttachmentFraction)
		growth := 0
		if providers > 0 {
			growth = out.NewPatients / providers
		}
		a.PatientAttachment = minInt(a.PatientAttachment+growth, maxAttach)

		if a.FlightRisk == practice.RiskCritical {
			report.CriticalFlightRisks = append(report.CriticalFlightRisks, s.ID)
			if src.Chance(bal.DepartureChance) {
				departed = append(departed, s.ID)
				continue
			}
		}

		if !a.IsPartner && !a.WantsPartnership &&
			s.DaysEmployed > bal.PartnershipTenureDays &&
			a.Production30 > bal.PartnershipProduction &&
			a.Loyalty > 40 && a.Loyalty < 75 {
			a.WantsPartnership = true
			report.PartnershipRequests = append(report.PartnershipRequests, s.ID)
		}
	}

	for _, id := range departed {
		if d, ok := applyDeparture(p, bal, id); ok {
			report.Departures = append(report.Departures, d)
		}
	}

	return report
}

// associateLoyalty recomputes loyalty from scratch each day: a bounded
// additive model, clamped to [0,100] by the caller's ClampStats pass.
func associateLoyalty(p *practice.Practice, cat *catalog.Catalog, s *practice.Staff, bal config.Balance) float64 {
	loyalty := 50.0

	// Tenure: up to +15 after about 15 months.
	loyalty += math.Min(15, float64(s.DaysEmployed)/30.0)

	// Pay against market rate for the role.
	if tpl, ok := cat.StaffTemplate(s.Role); ok && tpl.MarketSalary > 0 {
		ratio := s.Salary/tpl.MarketSalary - 1.0
		loyalty += clampF(ratio*50, -20, 20)

		// Producing heavily while underpaid is its own grievance.
		if s.Associate.Production30 > bal.PartnershipProduction && s.Salary < tpl.MarketSalary {
			loyalty -= 15
		}
	}

	// Completed CE programs earn goodwill from producers. Ids that do not
	// resolve in the catalog are ignored.
	ce := 0.0
	for _, id := range p.CompletedTraining {
		if _, ok := cat.TrainingByID(id); ok {
			ce += 2
		}
	}
	loyalty += math.Min(ce, 6)

	loyalty += clampF((s.Morale-50)/5.0, -10, 10)

	if s.Associate.PartnershipOffered || s.Associate.IsPartner {
		loyalty += 20
	}
	if p.Cash < 0 {
		loyalty -= 10
	}

	return clampF(loyalty, 0, 100)
}

func flightRisk(loyalty float64) string {
	switch {
	case loyalty > 80:
		return practice.RiskLow
	case loyalty > 60:
		return practice.RiskMedium
	case loyalty > 40:
		return practice.RiskHigh
	default:
		return practice.RiskCritical
	}
}

// applyDeparture removes the associate and charges the practice: patients
// lost are the attachment count capped at a fraction of the total book.
func applyDeparture(p *practice.Practice, bal config.Balance, staffID string) (Departure, bool) {
	i := p.StaffByID(staffID)
	if i < 0 || p.Staff[i].Associate == nil {
		return Departure{}, false
	}
	s := p.Staff[i]
	a := s.Associate

	lost := 0
	if p.Patients > 0 {
		frac := math.Min(bal.MaxPatientLossFraction, float64(a.PatientAttachment)/float64(p.Patients))
		lost = int(math.Floor(float64(p.Patients) * frac))
		if lost > a.PatientAttachment {
			lost = a.PatientAttachment
		}
	}

	p.Patients -= lost
	p.Reputation -= bal.DepartureRepPenalty
	p.RemoveStaff(staffID)
	for j := range p.Staff {
		p.Staff[j].Morale -= bal.DepartureMoraleHit
	}
	p.Totals.Departures++

	return Departure{StaffID: s.ID, Name: s.Name, PatientsLost: lost}, true
}
