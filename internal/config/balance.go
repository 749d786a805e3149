package config

// Difficulty selects a tuning preset and the event pool filter.
type Difficulty string

const (
	DifficultyRookie Difficulty = "rookie"
	DifficultyOwner  Difficulty = "owner"
	DifficultyMogul  Difficulty = "mogul"
)

// Balance holds gameplay balance configuration. The values are tuned numbers,
// not derived ones; change them only as a balance decision.
type Balance struct {
	Difficulty Difficulty `json:"difficulty"`
	SeasonDays int        `json:"season_days"`

	// Demand
	WalkInRate          float64 `json:"walk_in_rate"` // daily visits per patient of record
	ColdStartFloor      int     `json:"cold_start_floor"`
	ColdStartFactor     float64 `json:"cold_start_factor"`
	NewPatientRate      float64 `json:"new_patient_rate"` // share of served visits that become patients of record
	BaseVisitFee        float64 `json:"base_visit_fee"`
	CashNoShowRate      float64 `json:"cash_no_show_rate"`
	PatientsPerStaffer  float64 `json:"patients_per_staffer"`
	UnderstaffedPenalty float64 `json:"understaffed_penalty"` // revenue multiplier when short-staffed

	// Insurance timing
	FloatWindowDays    int     `json:"float_window_days"` // linear claim-payment ramp at season start
	CredentialDays     int     `json:"credential_days"`   // new plans pay partial revenue inside this window
	CredentialFactor   float64 `json:"credential_factor"`
	SupplyCostPerVisit float64 `json:"supply_cost_per_visit"`

	// Reputation
	OverbookUtilization float64 `json:"overbook_utilization"`
	LowCleanliness      float64 `json:"low_cleanliness"`
	ReputationGainScale float64 `json:"reputation_gain_scale"`
	UnmetDemandPenalty  float64 `json:"unmet_demand_penalty"`
	OverbookPenalty     float64 `json:"overbook_penalty"`
	DirtyOfficePenalty  float64 `json:"dirty_office_penalty"`
	DepartureRepPenalty float64 `json:"departure_rep_penalty"`
	DepartureMoraleHit  float64 `json:"departure_morale_hit"`

	// Events
	DailyEventChance   float64 `json:"daily_event_chance"`
	ExpertEventChance  float64 `json:"expert_event_chance"`
	BreakdownChance    float64 `json:"breakdown_chance"`
	RentIncreaseEvery  int     `json:"rent_increase_every"`
	RentIncreaseChance float64 `json:"rent_increase_chance"`
	EventFrequency     float64 `json:"event_frequency"` // live-mode chance multiplier

	// Associates
	DepartureChance        float64 `json:"departure_chance"` // daily, at critical flight risk only
	MaxPatientLossFraction float64 `json:"max_patient_loss_fraction"`
	MaxAttachmentFraction  float64 `json:"max_attachment_fraction"`
	PartnershipTenureDays  int     `json:"partnership_tenure_days"`
	PartnershipProduction  float64 `json:"partnership_production"`

	// Locations
	NoManagerSiteCount   int     `json:"no_manager_site_count"`
	NoManagerEfficiency  float64 `json:"no_manager_efficiency"`
	NoManagerMoraleHit   float64 `json:"no_manager_morale_hit"`
	SupplySynergyStep    float64 `json:"supply_synergy_step"`
	SupplySynergyCap     float64 `json:"supply_synergy_cap"`
	MaintSynergyStep     float64 `json:"maint_synergy_step"`
	MaintSynergyCap      float64 `json:"maint_synergy_cap"`
	ReimburseSynergyStep float64 `json:"reimburse_synergy_step"`
	ReimburseSynergyCap  float64 `json:"reimburse_synergy_cap"`
	MarketingSynergyStep float64 `json:"marketing_synergy_step"`
	MarketingSynergyCap  float64 `json:"marketing_synergy_cap"`

	// Scoring
	ScoreMultiplier float64 `json:"score_multiplier"`
	ScoreMinDay     int     `json:"score_min_day"`
}

// Default returns the standard practice-owner balance.
func Default() Balance {
	return Balance{
		Difficulty: DifficultyOwner,
		SeasonDays: 120,

		WalkInRate:          0.045,
		ColdStartFloor:      5,
		ColdStartFactor:     0.02,
		NewPatientRate:      0.25,
		BaseVisitFee:        120,
		CashNoShowRate:      0.03,
		PatientsPerStaffer:  6,
		UnderstaffedPenalty: 0.85,

		FloatWindowDays:    30,
		CredentialDays:     21,
		CredentialFactor:   0.5,
		SupplyCostPerVisit: 9,

		OverbookUtilization: 0.90,
		LowCleanliness:      40,
		ReputationGainScale: 0.0025,
		UnmetDemandPenalty:  0.03,
		OverbookPenalty:     0.01,
		DirtyOfficePenalty:  0.02,
		DepartureRepPenalty: 0.25,
		DepartureMoraleHit:  10,

		DailyEventChance:   0.08,
		ExpertEventChance:  0.04,
		BreakdownChance:    0.03,
		RentIncreaseEvery:  90,
		RentIncreaseChance: 0.5,
		EventFrequency:     1.0,

		DepartureChance:        0.03,
		MaxPatientLossFraction: 0.25,
		MaxAttachmentFraction:  0.40,
		PartnershipTenureDays:  540,
		PartnershipProduction:  400,

		NoManagerSiteCount:   4,
		NoManagerEfficiency:  0.85,
		NoManagerMoraleHit:   5,
		SupplySynergyStep:    0.03,
		SupplySynergyCap:     0.15,
		MaintSynergyStep:     0.025,
		MaintSynergyCap:      0.10,
		ReimburseSynergyStep: 0.01,
		ReimburseSynergyCap:  0.04,
		MarketingSynergyStep: 0.05,
		MarketingSynergyCap:  0.20,

		ScoreMultiplier: 1.0,
		ScoreMinDay:     10,
	}
}

// Rookie returns a gentler preset for new players.
func Rookie() Balance {
	cfg := Default()
	cfg.Difficulty = DifficultyRookie
	cfg.WalkInRate = 0.06
	cfg.DailyEventChance = 0.05
	cfg.BreakdownChance = 0.02
	cfg.DepartureChance = 0.015
	cfg.UnderstaffedPenalty = 0.92
	cfg.ScoreMultiplier = 0.85
	return cfg
}

// Mogul returns the hardest preset: expert events are in play and the score
// multiplier rewards surviving them.
func Mogul() Balance {
	cfg := Default()
	cfg.Difficulty = DifficultyMogul
	cfg.WalkInRate = 0.035
	cfg.DailyEventChance = 0.10
	cfg.BreakdownChance = 0.05
	cfg.DepartureChance = 0.05
	cfg.UnderstaffedPenalty = 0.80
	cfg.RentIncreaseChance = 0.7
	cfg.ScoreMultiplier = 1.5
	return cfg
}

// ForDifficulty maps a difficulty id to its preset, defaulting to owner.
func ForDifficulty(d Difficulty) Balance {
	switch d {
	case DifficultyRookie:
		return Rookie()
	case DifficultyMogul:
		return Mogul()
	default:
		return Default()
	}
}

// ExpertEventsEnabled reports whether the expert event pool is active.
func (b Balance) ExpertEventsEnabled() bool {
	return b.Difficulty == DifficultyMogul
}
