package employee

import "time"

// Employee is the payroll-relevant profile of an employee. Identity and
// contact details live with the identity provider.
type Employee struct {
	ID                  string
	Name                string
	Tier                Tier
	IsAppointmentSetter bool
	IsFullTime          bool
	IsOnsite            bool
	HasInsurance        bool
	Position            *string
	StartDate           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Tier is the seniority grade an employee is paid at. A is the highest.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// Tiers lists every known tier in rank order.
var Tiers = []Tier{TierA, TierB, TierC}

func (t Tier) Valid() bool {
	switch t {
	case TierA, TierB, TierC:
		return true
	}
	return false
}

// Role returns the appointment role used to pick a KPI threshold table.
func (e Employee) Role() string {
	if e.IsAppointmentSetter {
		return "setter"
	}
	return "fronter"
}
