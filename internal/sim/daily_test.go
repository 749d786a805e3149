package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/catalog"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
)

// steadyPractice is past the revenue ramp and the cold-start window, with an
// established book and identical staff stats so fee math stays constant
// across headcount changes.
func steadyPractice() *practice.Practice {
	return &practice.Practice{
		Day:         40,
		Cash:        30000,
		Reputation:  3.0,
		Patients:    100,
		Cleanliness: 85,
		Sqft:        1500,
		Rent:        4500,
		Rooms:       []string{"op1", "op2"},
		Equipment:   []string{"chair_basic", "chair_basic"},
		Staff: []practice.Staff{
			{ID: "doc", Role: "dentist", CanSeePatients: true, PatientsPerDay: 10, Skill: 60, Attitude: 70, Reliability: 80, Morale: 75, Salary: 12500},
			{ID: "desk", Role: "front_desk", Skill: 60, Attitude: 70, Reliability: 80, Morale: 70, Salary: 3200},
		},
		InsuranceAddedDay: map[string]int{},
		Relationships: map[string]float64{
			practice.RelSupplyRep:     50,
			practice.RelEquipmentTech: 50,
			practice.RelReferringDocs: 50,
			practice.RelLab:           50,
			practice.RelLandlord:      50,
		},
	}
}

func TestCapacityIsProviderLimited(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Staff[0].PatientsPerDay = 6

	out := ComputeDay(p, cat, bal)
	assert.Equal(t, 16, out.ChairCapacity) // two basic chairs
	assert.Equal(t, 6, out.ProviderCapacity)
	assert.Equal(t, 6, out.Capacity)
}

func TestCapacityChairsNeedRooms(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Rooms = []string{"op1"} // second chair has nowhere to go

	out := ComputeDay(p, cat, bal)
	assert.Equal(t, 8, out.ChairCapacity)
	assert.Equal(t, 8, out.Capacity)
}

func TestColdStartWithoutMarketing(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Patients = 4 // under the cold-start floor

	out := ComputeDay(p, cat, bal)
	assert.Less(t, out.Demand, 0.1)
	assert.Equal(t, 0, out.PatientsServed)

	// A single marketing channel breaks the cold start.
	p.Marketing = []string{"local_seo"}
	out = ComputeDay(p, cat, bal)
	assert.Greater(t, out.Demand, 1.0)
}

func TestCashShareShrinksWithEachPlan(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	out := ComputeDay(p, cat, bal)
	require.InDelta(t, 1.0, out.CashShare, 1e-9)

	p.Insurance = []string{"delta_ppo"}
	out = ComputeDay(p, cat, bal)
	require.InDelta(t, 0.88, out.CashShare, 1e-9)

	p.Insurance = []string{"delta_ppo", "statecare_hmo"}
	out = ComputeDay(p, cat, bal)
	require.InDelta(t, 0.88*0.80, out.CashShare, 1e-9)

	p.Insurance = []string{"delta_ppo", "statecare_hmo", "medassist"}
	out = ComputeDay(p, cat, bal)
	require.InDelta(t, 0.88*0.80*0.78, out.CashShare, 1e-9)
}

func TestInsuranceFloatRampsOverWindow(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Insurance = []string{"guardian_ppo"}

	prev := -1.0
	for _, day := range []int{1, 10, 20, 29} {
		p.Day = day
		out := ComputeDay(p, cat, bal)
		assert.Greater(t, out.VisitRevenue, prev, "day %d", day)
		prev = out.VisitRevenue
	}

	// At and past the window the ramp is done.
	p.Day = bal.FloatWindowDays
	atWindow := ComputeDay(p, cat, bal).VisitRevenue
	p.Day = bal.FloatWindowDays + 40
	assert.InDelta(t, atWindow, ComputeDay(p, cat, bal).VisitRevenue, 1e-6)
}

func TestCredentialingDiscountsFreshPlans(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Insurance = []string{"guardian_ppo"}
	seasoned := ComputeDay(p, cat, bal)

	p.InsuranceAddedDay["guardian_ppo"] = p.Day - 5 // inside the window
	fresh := ComputeDay(p, cat, bal)

	assert.Less(t, fresh.VisitRevenue, seasoned.VisitRevenue)
	assert.InDelta(t, seasoned.CashShare, fresh.CashShare, 1e-9,
		"credentialing affects payment, not payer mix")
}

func TestUnderstaffingCutsRevenue(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Patients = 1000
	p.Equipment = []string{"chair_premium", "chair_premium"}
	p.Staff = []practice.Staff{
		{ID: "d1", Role: "dentist", CanSeePatients: true, PatientsPerDay: 10, Skill: 60, Attitude: 70, Reliability: 80, Morale: 75, Salary: 12500},
		{ID: "d2", Role: "dentist", CanSeePatients: true, PatientsPerDay: 10, Skill: 60, Attitude: 70, Reliability: 80, Morale: 75, Salary: 12500},
	}

	short := ComputeDay(p, cat, bal)
	require.True(t, short.Staffing.Understaffed)

	// Back-office hires with identical stats: same fee, same volume.
	for _, id := range []string{"a1", "a2", "a3"} {
		p.Staff = append(p.Staff, practice.Staff{ID: id, Role: "assistant", Skill: 60, Attitude: 70, Reliability: 80, Morale: 70, Salary: 3600})
	}
	full := ComputeDay(p, cat, bal)
	require.False(t, full.Staffing.Understaffed)

	assert.InDelta(t, full.VisitRevenue*bal.UnderstaffedPenalty, short.VisitRevenue, 1e-6)
	assert.InDelta(t, full.Satisfaction-10, short.Satisfaction, 1e-6)
}

func TestPlanMarginTiers(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Insurance = []string{"premier_indemnity", "medassist"}
	out := ComputeDay(p, cat, bal)

	require.Len(t, out.PlanMargins, 2)
	byID := map[string]PlanMargin{}
	for _, m := range out.PlanMargins {
		byID[m.PlanID] = m
	}
	assert.Greater(t, byID["premier_indemnity"].Margin, byID["medassist"].Margin)
	for _, m := range out.PlanMargins {
		assert.Contains(t, []string{MarginGood, MarginWarning, MarginDanger}, m.Tier)
	}
}

func TestComputeDayDoesNotMutate(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Insurance = []string{"delta_ppo"}
	before := p.Clone()

	_ = ComputeDay(p, cat, bal)
	assert.Equal(t, before, p)
}
