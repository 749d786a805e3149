package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/catalog"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
)

func satellite(id string) practice.Location {
	return practice.Location{
		ID:          id,
		Name:        "Satellite " + id,
		Sqft:        1100,
		MaxOps:      2,
		Rent:        3600,
		Patients:    60,
		Reputation:  3.0,
		Cleanliness: 80,
		Equipment:   []string{"chair_basic", "chair_basic"},
		Staff: []practice.Staff{
			{ID: id + "-doc", Role: "associate_dentist", CanSeePatients: true, PatientsPerDay: 9, Skill: 60, Attitude: 70, Reliability: 80, Morale: 75, Salary: 10500},
			{ID: id + "-desk", Role: "front_desk", Skill: 55, Attitude: 65, Reliability: 80, Morale: 70, Salary: 3200},
		},
	}
}

func TestSynergyStepsAndCaps(t *testing.T) {
	bal := config.Default()

	assert.Equal(t, Synergy{}, SynergyFor(1, bal), "a single site has no scale")

	two := SynergyFor(2, bal)
	assert.InDelta(t, bal.SupplySynergyStep, two.SupplyDiscount, 1e-9)
	assert.InDelta(t, bal.MarketingSynergyStep, two.MarketingBonus, 1e-9)

	many := SynergyFor(10, bal)
	assert.InDelta(t, bal.SupplySynergyCap, many.SupplyDiscount, 1e-9)
	assert.InDelta(t, bal.MaintSynergyCap, many.MaintenanceDiscount, 1e-9)
	assert.InDelta(t, bal.ReimburseSynergyCap, many.ReimbursementBonus, 1e-9)
	assert.InDelta(t, bal.MarketingSynergyCap, many.MarketingBonus, 1e-9)
}

func TestBuildoutBurnsRentOnly(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	loc := satellite("b1")
	loc.BuildoutDays = 10
	p.Locations = []practice.Location{loc}

	rollup := AggregateLocations(p, cat, bal)
	require.Len(t, rollup.Results, 1)
	res := rollup.Results[0]
	assert.True(t, res.UnderConstruction)
	assert.Zero(t, res.Revenue)
	assert.Zero(t, res.Patients)
	assert.InDelta(t, loc.Rent/30.0, res.Costs, 1e-9)
	assert.Zero(t, rollup.TotalRevenue)
	assert.InDelta(t, loc.Rent/30.0, rollup.TotalCosts, 1e-9)
}

func TestFourSitesWithoutManagerLoseEfficiency(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Locations = []practice.Location{satellite("l1"), satellite("l2"), satellite("l3")}
	require.Equal(t, 4, p.SiteCount())

	p.HasRegionalManager = true
	managed := AggregateLocations(p, cat, bal)
	require.Greater(t, managed.TotalRevenue, 0.0)

	p.HasRegionalManager = false
	unmanaged := AggregateLocations(p, cat, bal)

	assert.InDelta(t, managed.TotalRevenue*bal.NoManagerEfficiency, unmanaged.TotalRevenue, 1e-6)
	for _, res := range unmanaged.Results {
		assert.True(t, res.ManagerPenalty)
	}
	for _, res := range managed.Results {
		assert.False(t, res.ManagerPenalty)
	}
	// Costs don't care who manages.
	assert.InDelta(t, managed.TotalCosts, unmanaged.TotalCosts, 1e-6)
}

func TestThreeSitesNeedNoManager(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Locations = []practice.Location{satellite("l1"), satellite("l2")}
	require.Equal(t, 3, p.SiteCount())

	rollup := AggregateLocations(p, cat, bal)
	for _, res := range rollup.Results {
		assert.False(t, res.ManagerPenalty)
	}
}

func TestSynergyDiscountsLocationCosts(t *testing.T) {
	cat := catalog.Default()
	bal := config.Default()

	p := steadyPractice()
	p.Locations = []practice.Location{satellite("l1")}

	// Recompute the site's raw day to check the discount arithmetic.
	sub := locationState(p, p.Locations[0])
	raw := ComputeDay(sub, cat, bal)

	rollup := AggregateLocations(p, cat, bal)
	require.Len(t, rollup.Results, 1)
	syn := rollup.Synergy

	wantRevenue := raw.Revenue * (1.0 + syn.ReimbursementBonus)
	wantCosts := raw.Costs.Total - raw.Costs.Supplies*syn.SupplyDiscount - raw.Costs.Maintenance*syn.MaintenanceDiscount
	assert.InDelta(t, wantRevenue, rollup.Results[0].Revenue, 1e-9)
	assert.InDelta(t, wantCosts, rollup.Results[0].Costs, 1e-9)
}
