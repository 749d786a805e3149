package sim

import (
	"math"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/catalog"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
)

// Synergy holds the cross-location multipliers for a given site count.
type Synergy struct {
	SupplyDiscount      float64 `json:"supply_discount"`
	MaintenanceDiscount float64 `json:"maintenance_discount"`
	ReimbursementBonus  float64 `json:"reimbursement_bonus"`
	MarketingBonus      float64 `json:"marketing_bonus"`
}

// LocationResult is one satellite's day.
type LocationResult struct {
	LocationID        string  `json:"location_id"`
	UnderConstruction bool    `json:"under_construction"`
	Revenue           float64 `json:"revenue"`
	Costs             float64 `json:"costs"`
	Patients          int     `json:"patients_served"`
	Capacity          int     `json:"capacity"`
	ManagerPenalty    bool    `json:"manager_penalty"`
	ReputationDelta   float64 `json:"reputation_delta"`
}

// LocationRollup aggregates all satellites plus synergy effects.
type LocationRollup struct {
	Synergy       Synergy          `json:"synergy"`
	Results       []LocationResult `json:"results,omitempty"`
	TotalRevenue  float64          `json:"total_revenue"`
	TotalCosts    float64          `json:"total_costs"`
	TotalPatients int              `json:"total_patients"`
	TotalCapacity int              `json:"total_capacity"`
}

// SynergyFor computes the scale discounts for n operating sites. Each grows
// stepwise with extra sites up to its cap.
func SynergyFor(n int, bal config.Balance) Synergy {
	if n < 2 {
		return Synergy{}
	}
	extra := float64(n - 1)
	return Synergy{
		SupplyDiscount:      math.Min(bal.SupplySynergyCap, bal.SupplySynergyStep*extra),
		MaintenanceDiscount: math.Min(bal.MaintSynergyCap, bal.MaintSynergyStep*extra),
		ReimbursementBonus:  math.Min(bal.ReimburseSynergyCap, bal.ReimburseSynergyStep*extra),
		MarketingBonus:      math.Min(bal.MarketingSynergyCap, bal.MarketingSynergyStep*extra),
	}
}

// AggregateLocations runs the daily calculator for every operating satellite
// and applies synergy and regional-manager rules. It is pure: morale damage
// from a missing manager is reported via the results, applied by the engine.
func AggregateLocations(p *practice.Practice, cat *catalog.Catalog, bal config.Balance) LocationRollup {
	rollup := LocationRollup{Synergy: SynergyFor(p.SiteCount(), bal)}
	if len(p.Locations) == 0 {
		return rollup
	}

	needsManager := p.SiteCount() >= bal.NoManagerSiteCount && !p.HasRegionalManager

	for _, loc := range p.Locations {
		if loc.BuildoutDays > 0 {
			// Rent-only while under construction.
			rollup.Results = append(rollup.Results, LocationResult{
				LocationID:        loc.ID,
				UnderConstruction: true,
				Costs:             loc.Rent / 30.0,
			})
			rollup.TotalCosts += loc.Rent / 30.0
			continue
		}

		sub := locationState(p, loc)
		out := ComputeDay(sub, cat, bal)

		revenue := out.Revenue * (1.0 + rollup.Synergy.ReimbursementBonus)
		if needsManager {
			revenue *= bal.NoManagerEfficiency
		}
		costs := out.Costs.Total
		costs -= out.Costs.Supplies * rollup.Synergy.SupplyDiscount
		costs -= out.Costs.Maintenance * rollup.Synergy.MaintenanceDiscount

		res := LocationResult{
			LocationID:      loc.ID,
			Revenue:         revenue,
			Costs:           costs,
			Patients:        out.PatientsServed,
			Capacity:        out.Capacity,
			ManagerPenalty:  needsManager,
			ReputationDelta: out.ReputationDelta,
		}
		rollup.Results = append(rollup.Results, res)
		rollup.TotalRevenue += revenue
		rollup.TotalCosts += costs
		rollup.TotalPatients += out.PatientsServed
		rollup.TotalCapacity += out.Capacity
	}

	return rollup
}

// locationState synthesizes a per-location practice for the calculator: the
// site's own book, rooms and staff, sharing the parent's payer mix, debt-free
// (interest is charged once, on the primary).
func locationState(p *practice.Practice, loc practice.Location) *practice.Practice {
	rooms := make([]string, 0, loc.MaxOps)
	for i := 0; i < loc.MaxOps; i++ {
		rooms = append(rooms, "op")
	}
	insurance := loc.Insurance
	if len(insurance) == 0 {
		insurance = p.Insurance
	}
	sub := &practice.Practice{
		Day:               p.Day,
		Reputation:        loc.Reputation,
		Patients:          loc.Patients,
		Cleanliness:       loc.Cleanliness,
		Sqft:              loc.Sqft,
		Rent:              loc.Rent,
		Rooms:             rooms,
		Equipment:         loc.Equipment,
		Staff:             loc.Staff,
		Insurance:         insurance,
		InsuranceAddedDay: p.InsuranceAddedDay,
		Relationships:     p.Relationships,
	}
	return sub
}
