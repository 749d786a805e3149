package sim

import (
	"math"

	"github.com/DentalAI22/dental-tycoon-sub000/internal/catalog"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/config"
	"github.com/DentalAI22/dental-tycoon-sub000/internal/practice"
)

// Margin tiers for the per-plan breakdown.
const (
	MarginGood    = "good"
	MarginWarning = "warning"
	MarginDanger  = "danger"
)

// Outcome is the full result of one daily-operations pass. It is a value
// object: the engine applies it to the practice and discards it.
type Outcome struct {
	ChairCapacity    int     `json:"chair_capacity"`
	ProviderCapacity int     `json:"provider_capacity"`
	Capacity         int     `json:"capacity"`
	Demand           float64 `json:"demand"`
	PatientsServed   int     `json:"patients_served"`
	NewPatients      int     `json:"new_patients"`
	Utilization      float64 `json:"utilization"`

	CashShare     float64 `json:"cash_share"`
	EffectiveRate float64 `json:"effective_rate"`

	VisitRevenue      float64 `json:"visit_revenue"`
	CapitationRevenue float64 `json:"capitation_revenue"`
	Revenue           float64 `json:"revenue"`
	Costs             Costs   `json:"costs"`
	Net               float64 `json:"net"`

	Satisfaction    float64 `json:"satisfaction"` // 0..100
	ReputationDelta float64 `json:"reputation_delta"`

	PlanMargins []PlanMargin   `json:"plan_margins"`
	Staffing    StaffingAdvice `json:"staffing"`
}

type Costs struct {
	Salaries       float64 `json:"salaries"`
	Maintenance    float64 `json:"maintenance"`
	Supplies       float64 `json:"supplies"`
	InsuranceAdmin float64 `json:"insurance_admin"`
	Rent           float64 `json:"rent"`
	Marketing      float64 `json:"marketing"`
	UpgradeUpkeep  float64 `json:"upgrade_upkeep"`
	Interest       float64 `json:"interest"`
	Total          float64 `json:"total"`
}

type PlanMargin struct {
	PlanID            string  `json:"plan_id"`
	RevenuePerPatient float64 `json:"revenue_per_patient"`
	CostPerPatient    float64 `json:"cost_per_patient"`
	Margin            float64 `json:"margin"`
	Tier              string  `json:"tier"`
}

type StaffingAdvice struct {
	Current      int  `json:"current"`
	Required     int  `json:"required"`
	Understaffed bool `json:"understaffed"`
}

// planShare is the resolved per-plan state used across pipeline stages.
type planShare struct {
	plan       catalog.InsurancePlan
	share      float64 // of total patient volume
	credential float64 // 1.0 once credentialed, partial inside the window
}

// ComputeDay runs the daily operations pipeline against a read-only practice
// state. It never mutates its inputs and never fails: unknown catalog ids
// contribute nothing and every ratio denominator is guarded.
func ComputeDay(p *practice.Practice, cat *catalog.Catalog, bal config.Balance) Outcome {
	out := Outcome{}

	// 1. Capacity: chairs only produce inside a built operatory, and only as
	// fast as the providers can work them.
	chairs := 0
	chairCap := 0
	for _, id := range p.Equipment {
		eq, ok := cat.EquipmentByID(id)
		if !ok || !eq.IsChair {
			continue
		}
		if chairs >= len(p.Rooms) {
			break
		}
		chairs++
		chairCap += eq.PatientsPerDay
	}
	providerCap := 0
	for _, s := range p.Staff {
		if s.CanSeePatients {
			providerCap += s.PatientsPerDay
		}
	}
	out.ChairCapacity = chairCap
	out.ProviderCapacity = providerCap
	out.Capacity = minInt(chairCap, providerCap)

	// 2. Demand.
	shares := resolvePlans(p, cat, bal)
	marketingPatients := 0.0
	marketingCost := 0.0
	for _, id := range p.Marketing {
		ch, ok := cat.MarketingByID(id)
		if !ok {
			continue
		}
		marketingPatients += ch.PatientsPerDay
		marketingCost += ch.DailyCost
	}
	poolPatients := 0.0
	for _, ps := range shares {
		poolPatients += ps.plan.PatientPool
	}
	repMult := 0.6 + (p.Reputation/5.0)*0.8
	demand := (float64(p.Patients)*bal.WalkInRate + marketingPatients + poolPatients) * repMult
	if p.Patients < bal.ColdStartFloor && len(p.Marketing) == 0 {
		// A new practice with no marketing gets ~no patients.
		demand *= bal.ColdStartFactor
	}
	out.Demand = demand

	// 3. Insurance blending: each accepted plan steals a share of the
	// full-fee cash pool in proportion to its cannibalization factor.
	cashShare := 1.0
	for _, ps := range shares {
		cashShare *= 1.0 - ps.plan.Cannibalization
	}
	out.CashShare = cashShare
	distributeShares(shares, cashShare)

	effRate := cashShare
	for _, ps := range shares {
		effRate += ps.share * ps.plan.Reimbursement
	}
	out.EffectiveRate = effRate

	// 4. Pool-weighted blends across the payer mix.
	noShow := cashShare * bal.CashNoShowRate
	acceptance := cashShare * 1.0
	staffDemand := cashShare * 1.0
	emergency := 0.0
	for _, ps := range shares {
		noShow += ps.share * ps.plan.NoShowRate
		acceptance += ps.share * ps.plan.AcceptanceRate
		staffDemand += ps.share * ps.plan.StaffDemand
		emergency += ps.share * ps.plan.EmergencyRate
	}

	// 5. Patients served and revenue.
	arrived := math.Min(demand, float64(out.Capacity))
	served := arrived * (1.0 - noShow)
	out.PatientsServed = int(served)
	if out.Capacity > 0 {
		out.Utilization = arrived / float64(out.Capacity)
	}

	fee := perVisitFee(p, cat, bal)
	floatRamp := 1.0
	if bal.FloatWindowDays > 0 && p.Day < bal.FloatWindowDays {
		floatRamp = float64(p.Day) / float64(bal.FloatWindowDays)
	}

	cashRevenue := served * cashShare * fee
	insuranceRevenue := 0.0
	planRevenue := make([]float64, len(shares))
	for i, ps := range shares {
		r := served * ps.share * fee * ps.plan.Reimbursement * ps.credential
		planRevenue[i] = r
		insuranceRevenue += r
	}
	visitRevenue := (cashRevenue + insuranceRevenue*floatRamp) * acceptance * (1.0 - emergency*0.5)

	capitation := 0.0
	for _, ps := range shares {
		members := float64(p.Patients) * ps.share
		capitation += ps.plan.CapitationPMPM * members / 30.0
	}

	// Understaffing: the payer mix implies an admin load; too few hands is a
	// flat efficiency hit.
	required := 0
	if bal.PatientsPerStaffer > 0 {
		required = int(math.Ceil(served / bal.PatientsPerStaffer * staffDemand))
	}
	out.Staffing = StaffingAdvice{Current: len(p.Staff), Required: required, Understaffed: len(p.Staff) < required}
	satisfactionPenalty := 0.0
	if out.Staffing.Understaffed {
		visitRevenue *= bal.UnderstaffedPenalty
		satisfactionPenalty = 10
	}

	out.VisitRevenue = visitRevenue
	out.CapitationRevenue = capitation
	out.Revenue = visitRevenue + capitation

	// 6. Costs.
	out.Costs = computeCosts(p, cat, bal, served, marketingCost)
	out.Net = out.Revenue - out.Costs.Total

	// 7. Satisfaction and reputation drift.
	avgSkill, avgAttitude := staffAverages(p.Staff)
	facility := 0.0
	for _, id := range p.Upgrades {
		if up, ok := cat.UpgradeByID(id); ok {
			facility += up.SatisfactionBonus
		}
	}
	satisfaction := 0.4*avgSkill + 0.2*avgAttitude + 0.2*p.Cleanliness + math.Min(facility, 20) - satisfactionPenalty
	out.Satisfaction = clampF(satisfaction, 0, 100)

	delta := (out.Satisfaction - 60) * bal.ReputationGainScale
	if demand > 0 && served < demand {
		delta -= bal.UnmetDemandPenalty * (demand - served) / demand
	}
	if out.Utilization > bal.OverbookUtilization {
		delta -= bal.OverbookPenalty
	}
	if p.Cleanliness < bal.LowCleanliness {
		delta -= bal.DirtyOfficePenalty
	}
	out.ReputationDelta = delta

	// New patients of record, net of the day's volume.
	out.NewPatients = int(served * bal.NewPatientRate)

	// Per-plan margin table.
	out.PlanMargins = planMargins(shares, planRevenue, out, served, fee)

	return out
}

// resolvePlans filters the accepted plan ids down to known catalog plans and
// tags each with its credentialing factor.
func resolvePlans(p *practice.Practice, cat *catalog.Catalog, bal config.Balance) []*planShare {
	var out []*planShare
	for _, id := range p.Insurance {
		plan, ok := cat.InsuranceByID(id)
		if !ok {
			continue
		}
		cred := 1.0
		if added, ok := p.InsuranceAddedDay[id]; ok && p.Day-added < bal.CredentialDays {
			cred = bal.CredentialFactor
		}
		out = append(out, &planShare{plan: plan, credential: cred})
	}
	return out
}

// distributeShares splits the non-cash share across plans weighted by each
// plan's patient-pool contribution.
func distributeShares(shares []*planShare, cashShare float64) {
	if len(shares) == 0 {
		return
	}
	totalPool := 0.0
	for _, ps := range shares {
		totalPool += ps.plan.PatientPool
	}
	insured := 1.0 - cashShare
	for _, ps := range shares {
		if totalPool > 0 {
			ps.share = insured * ps.plan.PatientPool / totalPool
		} else {
			ps.share = insured / float64(len(shares))
		}
	}
}

// perVisitFee is the base fee modulated by reputation premium, equipment and
// upgrade bonuses, provider skill, and the lab relationship.
func perVisitFee(p *practice.Practice, cat *catalog.Catalog, bal config.Balance) float64 {
	bonus := 0.0
	for _, id := range p.Equipment {
		if eq, ok := cat.EquipmentByID(id); ok {
			bonus += eq.FeeBonus
		}
	}
	for _, id := range p.Upgrades {
		if up, ok := cat.UpgradeByID(id); ok {
			bonus += up.FeeBonus
		}
	}
	avgSkill, _ := staffAverages(p.Staff)
	skillMult := 1.0 + (avgSkill-50)/200.0
	labMult := 0.95 + (p.Relationships[practice.RelLab]/100.0)*0.10
	repPremium := 1.0 + (p.Reputation/5.0)*0.30
	return bal.BaseVisitFee * repPremium * (1.0 + bonus) * skillMult * labMult
}

func computeCosts(p *practice.Practice, cat *catalog.Catalog, bal config.Balance, served float64, marketingCost float64) Costs {
	var c Costs
	for _, s := range p.Staff {
		c.Salaries += s.Salary / 30.0
	}

	// A good equipment tech keeps maintenance cheap; a bad one does not.
	techFactor := 1.15 - (p.Relationships[practice.RelEquipmentTech]/100.0)*0.30
	for _, id := range p.Equipment {
		if eq, ok := cat.EquipmentByID(id); ok {
			c.Maintenance += eq.Upkeep * techFactor
		}
	}

	supplyFactor := 1.15 - (p.Relationships[practice.RelSupplyRep]/100.0)*0.30
	c.Supplies = served * bal.SupplyCostPerVisit * supplyFactor

	for _, id := range p.Insurance {
		if plan, ok := cat.InsuranceByID(id); ok {
			c.InsuranceAdmin += plan.AdminCost
		}
	}

	c.Rent = p.Rent / 30.0
	c.Marketing = marketingCost
	for _, id := range p.Upgrades {
		if up, ok := cat.UpgradeByID(id); ok {
			c.UpgradeUpkeep += up.Upkeep
		}
	}
	c.Interest = p.Debt * p.InterestRate / 365.0

	c.Total = c.Salaries + c.Maintenance + c.Supplies + c.InsuranceAdmin + c.Rent + c.Marketing + c.UpgradeUpkeep + c.Interest
	return c
}

func planMargins(shares []*planShare, planRevenue []float64, out Outcome, served float64, fee float64) []PlanMargin {
	if len(shares) == 0 {
		return nil
	}
	costPerPatient := 0.0
	if served >= 1 {
		costPerPatient = out.Costs.Total / served
	}
	margins := make([]PlanMargin, 0, len(shares))
	for i, ps := range shares {
		patients := served * ps.share
		revPer := 0.0
		if patients >= 1 {
			revPer = planRevenue[i] / patients
		} else {
			revPer = fee * ps.plan.Reimbursement
		}
		m := revPer - costPerPatient
		tier := MarginDanger
		switch {
		case m >= 0.2*fee:
			tier = MarginGood
		case m >= 0:
			tier = MarginWarning
		}
		margins = append(margins, PlanMargin{
			PlanID:            ps.plan.ID,
			RevenuePerPatient: revPer,
			CostPerPatient:    costPerPatient,
			Margin:            m,
			Tier:              tier,
		})
	}
	return margins
}

func staffAverages(staff []practice.Staff) (skill, attitude float64) {
	if len(staff) == 0 {
		return 50, 50
	}
	for _, s := range staff {
		skill += s.Skill
		attitude += s.Attitude
	}
	n := float64(len(staff))
	return skill / n, attitude / n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
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
