package catalog

// Default returns the built-in reference data. Sessions normally run on
// these; a YAML file can override any section wholesale.
func Default() *Catalog {
	return &Catalog{
		Equipment: []Equipment{
			{ID: "chair_basic", Name: "Standard Operatory Chair", Price: 18000, Upkeep: 12, IsChair: true, PatientsPerDay: 8},
			{ID: "chair_premium", Name: "Ergonomic Comfort Chair", Price: 32000, Upkeep: 18, IsChair: true, PatientsPerDay: 10, FeeBonus: 0.02},
			{ID: "xray_pano", Name: "Panoramic X-Ray", Price: 45000, Upkeep: 25, FeeBonus: 0.06},
			{ID: "cadcam_mill", Name: "CAD/CAM Milling Unit", Price: 90000, Upkeep: 40, FeeBonus: 0.10},
			{ID: "sterilizer", Name: "Autoclave Sterilizer", Price: 8000, Upkeep: 6},
			{ID: "laser_soft", Name: "Soft Tissue Laser", Price: 28000, Upkeep: 15, FeeBonus: 0.04},
		},
		Insurance: []InsurancePlan{
			{ID: "delta_ppo", Name: "Delta Choice PPO", Reimbursement: 0.72, PatientPool: 4.0, AdminCost: 22, Cannibalization: 0.12, MinReputation: 2.0, NoShowRate: 0.06, AcceptanceRate: 0.82, StaffDemand: 1.1, EmergencyRate: 0.04},
			{ID: "guardian_ppo", Name: "Guardian Select PPO", Reimbursement: 0.78, PatientPool: 3.0, AdminCost: 18, Cannibalization: 0.10, MinReputation: 2.5, NoShowRate: 0.05, AcceptanceRate: 0.85, StaffDemand: 1.05, EmergencyRate: 0.03},
			{ID: "statecare_hmo", Name: "StateCare DHMO", Reimbursement: 0.45, PatientPool: 7.0, AdminCost: 35, Cannibalization: 0.20, MinReputation: 1.0, CapitationPMPM: 14, NoShowRate: 0.12, AcceptanceRate: 0.70, StaffDemand: 1.35, EmergencyRate: 0.08},
			{ID: "medassist", Name: "MedAssist Public Plan", Reimbursement: 0.38, PatientPool: 9.0, AdminCost: 40, Cannibalization: 0.22, MinReputation: 0.5, NoShowRate: 0.15, AcceptanceRate: 0.65, StaffDemand: 1.4, EmergencyRate: 0.10},
			{ID: "premier_indemnity", Name: "Premier Indemnity", Reimbursement: 0.90, PatientPool: 1.5, AdminCost: 12, Cannibalization: 0.05, MinReputation: 3.5, NoShowRate: 0.03, AcceptanceRate: 0.90, StaffDemand: 1.0, EmergencyRate: 0.02},
		},
		Staff: []StaffTemplate{
			{Role: "dentist", CanSeePatients: true, PatientsPerDay: 10, MarketSalary: 12500},
			{Role: "associate_dentist", CanSeePatients: true, PatientsPerDay: 9, MarketSalary: 10500},
			{Role: "hygienist", CanSeePatients: true, PatientsPerDay: 8, MarketSalary: 6800},
			{Role: "assistant", CanSeePatients: false, MarketSalary: 3600},
			{Role: "front_desk", CanSeePatients: false, MarketSalary: 3200},
			{Role: "office_manager", CanSeePatients: false, MarketSalary: 5200},
			{Role: "regional_manager", CanSeePatients: false, MarketSalary: 9000},
		},
		Marketing: []MarketingChannel{
			{ID: "local_seo", Name: "Local Search Ads", DailyCost: 35, PatientsPerDay: 1.8},
			{ID: "mailers", Name: "Neighborhood Mailers", DailyCost: 20, PatientsPerDay: 0.9},
			{ID: "radio", Name: "Drive-Time Radio", DailyCost: 60, PatientsPerDay: 2.4},
			{ID: "referral_program", Name: "Patient Referral Program", DailyCost: 15, PatientsPerDay: 1.1},
		},
		Training: []TrainingProgram{
			{ID: "ce_endo", Name: "Endodontics CE Weekend", Cost: 2400, SkillBonus: 6, Days: 2},
			{ID: "ce_implant", Name: "Implantology Residency", Cost: 9500, SkillBonus: 12, Days: 5},
			{ID: "ce_frontoffice", Name: "Front Office Bootcamp", Cost: 900, SkillBonus: 4, Days: 1},
			{ID: "ce_hygiene", Name: "Advanced Perio Protocols", Cost: 1500, SkillBonus: 5, Days: 1},
		},
		Upgrades: []OfficeUpgrade{
			{ID: "lobby_refresh", Name: "Lobby Refresh", Cost: 6000, Upkeep: 4, SatisfactionBonus: 4},
			{ID: "kids_corner", Name: "Kids Corner", Cost: 2500, Upkeep: 2, SatisfactionBonus: 3},
			{ID: "espresso_bar", Name: "Espresso Bar", Cost: 4000, Upkeep: 6, SatisfactionBonus: 5},
			{ID: "spa_suite", Name: "Comfort Spa Suite", Cost: 15000, Upkeep: 10, SatisfactionBonus: 8, FeeBonus: 0.05},
		},
	}
}
