// Package catalog holds the static reference data the simulation consumes:
// equipment, insurance plans, staff templates, marketing channels, training
// programs and office upgrades. The core never mutates these; lookups for
// unknown ids return a zero value so partially corrupt data degrades to a
// no-op instead of failing a day's simulation.
package catalog

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Catalog struct {
	Equipment []Equipment        `yaml:"equipment" json:"equipment"`
	Insurance []InsurancePlan    `yaml:"insurance" json:"insurance"`
	Staff     []StaffTemplate    `yaml:"staff" json:"staff"`
	Marketing []MarketingChannel `yaml:"marketing" json:"marketing"`
	Training  []TrainingProgram  `yaml:"training" json:"training"`
	Upgrades  []OfficeUpgrade    `yaml:"upgrades" json:"upgrades"`
}

// Equipment is a purchasable unit. Chairs carry throughput; everything else
// contributes fee or upkeep modifiers.
type Equipment struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	Price          float64 `yaml:"price" json:"price"`
	Upkeep         float64 `yaml:"upkeep" json:"upkeep"` // daily maintenance
	IsChair        bool    `yaml:"is_chair" json:"is_chair"`
	PatientsPerDay int     `yaml:"patients_per_day" json:"patients_per_day"`
	FeeBonus       float64 `yaml:"fee_bonus" json:"fee_bonus"` // additive fee multiplier share
}

// InsurancePlan is an immutable payer definition.
type InsurancePlan struct {
	ID              string  `yaml:"id" json:"id"`
	Name            string  `yaml:"name" json:"name"`
	Reimbursement   float64 `yaml:"reimbursement" json:"reimbursement"` // 0..1 of the cash fee
	PatientPool     float64 `yaml:"patient_pool" json:"patient_pool"`   // daily patient contribution
	AdminCost       float64 `yaml:"admin_cost" json:"admin_cost"`       // daily overhead
	Cannibalization float64 `yaml:"cannibalization" json:"cannibalization"`
	MinReputation   float64 `yaml:"min_reputation" json:"min_reputation"`
	CapitationPMPM  float64 `yaml:"capitation_pmpm" json:"capitation_pmpm"`
	NoShowRate      float64 `yaml:"no_show_rate" json:"no_show_rate"`
	AcceptanceRate  float64 `yaml:"acceptance_rate" json:"acceptance_rate"`
	StaffDemand     float64 `yaml:"staff_demand" json:"staff_demand"` // staffing multiplier
	EmergencyRate   float64 `yaml:"emergency_rate" json:"emergency_rate"`
}

type StaffTemplate struct {
	Role           string  `yaml:"role" json:"role"`
	CanSeePatients bool    `yaml:"can_see_patients" json:"can_see_patients"`
	PatientsPerDay int     `yaml:"patients_per_day" json:"patients_per_day"`
	MarketSalary   float64 `yaml:"market_salary" json:"market_salary"` // monthly
}

type MarketingChannel struct {
	ID             string  `yaml:"id" json:"id"`
	Name           string  `yaml:"name" json:"name"`
	DailyCost      float64 `yaml:"daily_cost" json:"daily_cost"`
	PatientsPerDay float64 `yaml:"patients_per_day" json:"patients_per_day"`
}

type TrainingProgram struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	Cost       float64 `yaml:"cost" json:"cost"`
	SkillBonus float64 `yaml:"skill_bonus" json:"skill_bonus"`
	Days       int     `yaml:"days" json:"days"`
}

type OfficeUpgrade struct {
	ID                string  `yaml:"id" json:"id"`
	Name              string  `yaml:"name" json:"name"`
	Cost              float64 `yaml:"cost" json:"cost"`
	Upkeep            float64 `yaml:"upkeep" json:"upkeep"` // daily
	SatisfactionBonus float64 `yaml:"satisfaction_bonus" json:"satisfaction_bonus"`
	FeeBonus          float64 `yaml:"fee_bonus" json:"fee_bonus"`
}

// Load reads a catalog from a YAML file and fills gaps from the defaults.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

// ApplyDefaults backfills any empty catalog section from the built-ins.
func (c *Catalog) ApplyDefaults() {
	def := Default()
	if len(c.Equipment) == 0 {
		c.Equipment = def.Equipment
	}
	if len(c.Insurance) == 0 {
		c.Insurance = def.Insurance
	}
	if len(c.Staff) == 0 {
		c.Staff = def.Staff
	}
	if len(c.Marketing) == 0 {
		c.Marketing = def.Marketing
	}
	if len(c.Training) == 0 {
		c.Training = def.Training
	}
	if len(c.Upgrades) == 0 {
		c.Upgrades = def.Upgrades
	}
}

// EquipmentByID returns the definition for id; ok=false (zero value) for
// unknown ids.
func (c *Catalog) EquipmentByID(id string) (Equipment, bool) {
	for _, e := range c.Equipment {
		if e.ID == id {
			return e, true
		}
	}
	return Equipment{}, false
}

func (c *Catalog) InsuranceByID(id string) (InsurancePlan, bool) {
	for _, p := range c.Insurance {
		if p.ID == id {
			return p, true
		}
	}
	return InsurancePlan{}, false
}

func (c *Catalog) StaffTemplate(role string) (StaffTemplate, bool) {
	for _, s := range c.Staff {
		if s.Role == role {
			return s, true
		}
	}
	return StaffTemplate{}, false
}

func (c *Catalog) MarketingByID(id string) (MarketingChannel, bool) {
	for _, m := range c.Marketing {
		if m.ID == id {
			return m, true
		}
	}
	return MarketingChannel{}, false
}

func (c *Catalog) UpgradeByID(id string) (OfficeUpgrade, bool) {
	for _, u := range c.Upgrades {
		if u.ID == id {
			return u, true
		}
	}
	return OfficeUpgrade{}, false
}

func (c *Catalog) TrainingByID(id string) (TrainingProgram, bool) {
	for _, t := range c.Training {
		if t.ID == id {
			return t, true
		}
	}
	return TrainingProgram{}, false
}
