package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/catalog"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/rng"
)

func TestFlightRiskTiers(t *testing.T) {
	assert.Equal(t, practice.RiskLow, flightRisk(85))
	assert.Equal(t, practice.RiskMedium, flightRisk(70))
	assert.Equal(t, practice.RiskHigh, flightRisk(50))
	assert.Equal(t, practice.RiskCritical, flightRisk(40))
	assert.Equal(t, practice.RiskCritical, flightRisk(10))
}

func TestAssociateDepartureTakesAttachedPatients(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()
	bal.DepartureChance = 1.0 // force it when risk is critical

	p := steadyPractice()
	p.Cash = -5000
	p.Staff = append(p.Staff, practice.Staff{
		ID: "assoc", Name: "Dr. Vega", Role: "associate_dentist",
		CanSeePatients: true, PatientsPerDay: 9,
		Skill: 70, Attitude: 60, Reliability: 75,
		Morale: 0, Salary: 4000, // far under market, miserable
		Associate: &practice.Associate{PatientAttachment: 40},
	})
	require.Equal(t, 100, p.Patients)

	report := UpdateStaffDynamics(p, cat, bal, Outcome{}, rng.New(7))

	require.Len(t, report.Departures, 1)
	d := report.Departures[0]
	assert.Equal(t, "assoc", d.StaffID)
	// Attachment was 40 but the loss caps at a quarter of the book.
	assert.Equal(t, 25, d.PatientsLost)
	assert.Equal(t, 75, p.Patients)
	assert.InDelta(t, 3.0-bal.DepartureRepPenalty, p.Reputation, 1e-9)
	assert.Equal(t, 1, p.Totals.Departures)
	assert.Less(t, p.StaffByID("assoc"), 0, "associate removed from roster")
	assert.InDelta(t, 65.0, p.Staff[0].Morale, 1e-9, "remaining staff shaken")
	assert.InDelta(t, 60.0, p.Staff[1].Morale, 1e-9)
	assert.Contains(t, report.CriticalFlightRisks, "assoc")
}

func TestLoyalAssociateStays(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()
	bal.DepartureChance = 1.0

	p := steadyPractice()
	p.Staff = append(p.Staff, practice.Staff{
		ID: "assoc", Role: "associate_dentist",
		CanSeePatients: true, PatientsPerDay: 9,
		Skill: 70, Attitude: 70, Reliability: 80,
		Morale: 80, Salary: 11000, DaysEmployed: 400,
		Associate: &practice.Associate{},
	})

	report := UpdateStaffDynamics(p, cat, bal, Outcome{VisitRevenue: 2400}, rng.New(7))

	assert.Empty(t, report.Departures)
	a := p.Staff[p.StaffByID("assoc")].Associate
	assert.Greater(t, a.Loyalty, 60.0)
	assert.Equal(t, practice.RiskMedium, a.FlightRisk)
}

func TestCompletedTrainingLiftsLoyalty(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	assoc := practice.Staff{
		ID: "assoc", Role: "associate_dentist",
		CanSeePatients: true, PatientsPerDay: 9,
		Skill: 70, Attitude: 70, Reliability: 80,
		Morale: 50, Salary: 10500,
		Associate: &practice.Associate{},
	}

	base := associateLoyalty(p, cat, &assoc, bal)

	p.CompletedTraining = []string{"ce_endo", "ce_hygiene"}
	assert.InDelta(t, base+4, associateLoyalty(p, cat, &assoc, bal), 1e-9)

	// Ids that do not resolve in the catalog count for nothing.
	p.CompletedTraining = []string{"ce_endo", "not_a_program"}
	assert.InDelta(t, base+2, associateLoyalty(p, cat, &assoc, bal), 1e-9)

	// The CE bonus caps at three programs' worth.
	p.CompletedTraining = []string{"ce_endo", "ce_implant", "ce_frontoffice", "ce_hygiene"}
	assert.InDelta(t, base+6, associateLoyalty(p, cat, &assoc, bal), 1e-9)
}

func TestPartnershipRequestAfterTenureAndProduction(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Staff = append(p.Staff, practice.Staff{
		ID: "assoc", Role: "associate_dentist",
		CanSeePatients: true, PatientsPerDay: 9,
		Skill: 75, Attitude: 70, Reliability: 80,
		Morale: 75, Salary: 10500, DaysEmployed: 600,
		Associate: &practice.Associate{Production30: 500},
	})

	report := UpdateStaffDynamics(p, cat, bal, Outcome{}, rng.New(7))

	require.Contains(t, report.PartnershipRequests, "assoc")
	a := p.Staff[p.StaffByID("assoc")].Associate
	assert.True(t, a.WantsPartnership)

	// The trigger fires once.
	report = UpdateStaffDynamics(p, cat, bal, Outcome{}, rng.New(7))
	assert.Empty(t, report.PartnershipRequests)
}

func TestAttachmentCappedByBookFraction(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Staff = append(p.Staff, practice.Staff{
		ID: "assoc", Role: "associate_dentist",
		CanSeePatients: true, PatientsPerDay: 9,
		Skill: 70, Attitude: 70, Reliability: 80,
		Morale: 80, Salary: 11000,
		Associate: &practice.Associate{PatientAttachment: 38},
	})

	// A big new-patient day cannot push attachment past MaxAttachmentFraction.
	UpdateStaffDynamics(p, cat, bal, Outcome{NewPatients: 30}, rng.New(7))
	a := p.Staff[p.StaffByID("assoc")].Associate
	assert.Equal(t, int(float64(p.Patients)*bal.MaxAttachmentFraction), a.PatientAttachment)
}
