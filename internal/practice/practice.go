// Package practice holds the mutable session aggregate: one Practice per
// play session, mutated only through the simulation engine's day tick and
// discrete decision/event handlers.
package practice

import (
	"github.com/google/uuid"
)

// Relationship counterparty keys.
const (
	RelSupplyRep     = "supply_rep"
	RelEquipmentTech = "equipment_tech"
	RelReferringDocs = "referring_docs"
	RelLab           = "lab"
	RelLandlord      = "landlord"
)

// Flight-risk tiers, derived from associate loyalty.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// Practice is the aggregate root for a session.
type Practice struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Day          int     `json:"day"`
	Cash         float64 `json:"cash"`
	Debt         float64 `json:"debt"`
	InterestRate float64 `json:"interest_rate"`
	Reputation   float64 `json:"reputation"`  // 0..5
	Patients     int     `json:"patients"`    // patients of record, not daily visits
	Cleanliness  float64 `json:"cleanliness"` // 0..100

	Sqft  int      `json:"sqft"`
	Rent  float64  `json:"rent"` // monthly
	Rooms []string `json:"rooms"`

	Equipment         []string           `json:"equipment"` // catalog ids
	Staff             []Staff            `json:"staff"`
	Insurance         []string           `json:"insurance"` // accepted plan ids
	InsuranceAddedDay map[string]int     `json:"insurance_added_day"`
	Marketing         []string           `json:"marketing"` // active channel ids
	Upgrades          []string           `json:"upgrades"`
	Relationships     map[string]float64 `json:"relationships"` // 0..100 per counterparty
	CompletedTraining []string           `json:"completed_training"`

	Locations          []Location `json:"locations"`
	HasRegionalManager bool       `json:"has_regional_manager"`

	Totals Totals `json:"totals"`
}

// Staff is one employee. Providers carry a per-day patient throughput.
type Staff struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Role           string     `json:"role"`
	CanSeePatients bool       `json:"can_see_patients"`
	PatientsPerDay int        `json:"patients_per_day"`
	Skill          float64    `json:"skill"`       // 0..100
	Attitude       float64    `json:"attitude"`    // 0..100
	Reliability    float64    `json:"reliability"` // 0..100
	Morale         float64    `json:"morale"`      // 0..100
	Salary         float64    `json:"salary"`      // monthly
	DaysEmployed   int        `json:"days_employed"`
	Associate      *Associate `json:"associate,omitempty"`
}

// Associate tracks attrition state for a hired, non-owner provider.
type Associate struct {
	Loyalty            float64 `json:"loyalty"` // 0..100
	Production30       float64 `json:"production_30"`
	PatientAttachment  int     `json:"patient_attachment"`
	FlightRisk         string  `json:"flight_risk"`
	PartnershipOffered bool    `json:"partnership_offered"`
	WantsPartnership   bool    `json:"wants_partnership"`
	IsPartner          bool    `json:"is_partner"`
}

// Location is a secondary site. While BuildoutDays > 0 the site only burns
// rent.
type Location struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Sqft         int      `json:"sqft"`
	MaxOps       int      `json:"max_ops"`
	Rent         float64  `json:"rent"` // monthly
	Patients     int      `json:"patients"`
	Reputation   float64  `json:"reputation"`
	Cleanliness  float64  `json:"cleanliness"`
	Equipment    []string `json:"equipment"`
	Staff        []Staff  `json:"staff"`
	Insurance    []string `json:"insurance"`
	BuildoutDays int      `json:"buildout_days"`
}

// Totals are cumulative session trackers.
type Totals struct {
	Revenue        float64 `json:"revenue"`
	Expenses       float64 `json:"expenses"`
	PeakCash       float64 `json:"peak_cash"`
	WorstCash      float64 `json:"worst_cash"`
	Hires          int     `json:"hires"`
	Fires          int     `json:"fires"`
	Departures     int     `json:"departures"`
	TrainingSpend  float64 `json:"training_spend"`
	MarketingSpend float64 `json:"marketing_spend"`
}

// New creates a fresh single-chair startup practice.
func New(name string) *Practice {
	return &Practice{
		ID:           uuid.NewString(),
		Name:         name,
		Day:          0,
		Cash:         50000,
		Debt:         150000,
		InterestRate: 0.065,
		Reputation:   2.5,
		Patients:     0,
		Cleanliness:  85,
		Sqft:         1200,
		Rent:         4200,
		Rooms:        []string{"op1", "op2"},
		Equipment:    []string{"chair_basic", "sterilizer"},
		Staff: []Staff{
			{ID: uuid.NewString(), Name: "Owner Dentist", Role: "dentist", CanSeePatients: true, PatientsPerDay: 10, Skill: 62, Attitude: 70, Reliability: 85, Morale: 75, Salary: 0},
			{ID: uuid.NewString(), Name: "Front Desk", Role: "front_desk", Skill: 50, Attitude: 65, Reliability: 80, Morale: 70, Salary: 3200},
		},
		InsuranceAddedDay: map[string]int{},
		Relationships: map[string]float64{
			RelSupplyRep:     50,
			RelEquipmentTech: 50,
			RelReferringDocs: 50,
			RelLab:           50,
			RelLandlord:      50,
		},
	}
}

// Providers returns the staff who can see patients.
func (p *Practice) Providers() []Staff {
	var out []Staff
	for _, s := range p.Staff {
		if s.CanSeePatients {
			out = append(out, s)
		}
	}
	return out
}

// StaffByID returns the index of a staff member, or -1.
func (p *Practice) StaffByID(id string) int {
	for i := range p.Staff {
		if p.Staff[i].ID == id {
			return i
		}
	}
	return -1
}

// RemoveStaff drops a staff member by id.
func (p *Practice) RemoveStaff(id string) bool {
	i := p.StaffByID(id)
	if i < 0 {
		return false
	}
	p.Staff = append(p.Staff[:i], p.Staff[i+1:]...)
	return true
}

// AddInsurance records a newly accepted plan along with the day it was added,
// which drives the credentialing window.
func (p *Practice) AddInsurance(planID string) {
	for _, id := range p.Insurance {
		if id == planID {
			return
		}
	}
	p.Insurance = append(p.Insurance, planID)
	if p.InsuranceAddedDay == nil {
		p.InsuranceAddedDay = map[string]int{}
	}
	p.InsuranceAddedDay[planID] = p.Day
}

// SiteCount is the number of operating sites including the primary office.
func (p *Practice) SiteCount() int {
	return 1 + len(p.Locations)
}

// ClampStats pins reputation and every 0-100 stat back into range. Called
// after any mutation batch.
func (p *Practice) ClampStats() {
	p.Reputation = clamp(p.Reputation, 0, 5)
	p.Cleanliness = clamp(p.Cleanliness, 0, 100)
	if p.Patients < 0 {
		p.Patients = 0
	}
	for i := range p.Staff {
		clampStaff(&p.Staff[i])
	}
	for li := range p.Locations {
		loc := &p.Locations[li]
		loc.Reputation = clamp(loc.Reputation, 0, 5)
		loc.Cleanliness = clamp(loc.Cleanliness, 0, 100)
		if loc.Patients < 0 {
			loc.Patients = 0
		}
		for i := range loc.Staff {
			clampStaff(&loc.Staff[i])
		}
	}
	for k, v := range p.Relationships {
		p.Relationships[k] = clamp(v, 0, 100)
	}
}

func clampStaff(s *Staff) {
	s.Skill = clamp(s.Skill, 0, 100)
	s.Attitude = clamp(s.Attitude, 0, 100)
	s.Reliability = clamp(s.Reliability, 0, 100)
	s.Morale = clamp(s.Morale, 0, 100)
	if s.Associate != nil {
		s.Associate.Loyalty = clamp(s.Associate.Loyalty, 0, 100)
		if s.Associate.PatientAttachment < 0 {
			s.Associate.PatientAttachment = 0
		}
	}
}

// Clone returns a deep copy of the aggregate.
func (p *Practice) Clone() *Practice {
	cp := *p
	cp.Rooms = append([]string(nil), p.Rooms...)
	cp.Equipment = append([]string(nil), p.Equipment...)
	cp.Insurance = append([]string(nil), p.Insurance...)
	cp.Marketing = append([]string(nil), p.Marketing...)
	cp.Upgrades = append([]string(nil), p.Upgrades...)
	cp.CompletedTraining = append([]string(nil), p.CompletedTraining...)
	cp.Staff = cloneStaff(p.Staff)
	cp.InsuranceAddedDay = make(map[string]int, len(p.InsuranceAddedDay))
	for k, v := range p.InsuranceAddedDay {
		cp.InsuranceAddedDay[k] = v
	}
	cp.Relationships = make(map[string]float64, len(p.Relationships))
	for k, v := range p.Relationships {
		cp.Relationships[k] = v
	}
	cp.Locations = make([]Location, len(p.Locations))
	for i, loc := range p.Locations {
		l := loc
		l.Equipment = append([]string(nil), loc.Equipment...)
		l.Insurance = append([]string(nil), loc.Insurance...)
		l.Staff = cloneStaff(loc.Staff)
		cp.Locations[i] = l
	}
	return &cp
}

func cloneStaff(in []Staff) []Staff {
	out := make([]Staff, len(in))
	for i, s := range in {
		cp := s
		if s.Associate != nil {
			a := *s.Associate
			cp.Associate = &a
		}
		out[i] = cp
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
