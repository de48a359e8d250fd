package employee

import (
	"time"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/validator"
)

type UpsertEmployeeRequest struct {
	ID                  string  `json:"-"`
	Name                string  `json:"name"`
	Tier                string  `json:"tier"`
	IsAppointmentSetter bool    `json:"is_appointment_setter"`
	IsFullTime          bool    `json:"is_full_time"`
	IsOnsite            bool    `json:"is_onsite"`
	HasInsurance        bool    `json:"has_insurance"`
	Position            *string `json:"position,omitempty"`
	StartDate           *string `json:"start_date,omitempty"`
}

func (r *UpsertEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if len(r.ID) > 64 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must not exceed 64 characters",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if !Tier(r.Tier).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "tier",
			Message: ErrInvalidTier.Error(),
		})
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity converts a validated request into an Employee.
func (r *UpsertEmployeeRequest) ToEntity() Employee {
	e := Employee{
		ID:                  r.ID,
		Name:                r.Name,
		Tier:                Tier(r.Tier),
		IsAppointmentSetter: r.IsAppointmentSetter,
		IsFullTime:          r.IsFullTime,
		IsOnsite:            r.IsOnsite,
		HasInsurance:        r.HasInsurance,
		Position:            r.Position,
	}
	if r.StartDate != nil {
		if d, ok := validator.IsValidDate(*r.StartDate); ok {
			e.StartDate = &d
		}
	}
	return e
}

type EmployeeResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Tier                Tier      `json:"tier"`
	IsAppointmentSetter bool      `json:"is_appointment_setter"`
	IsFullTime          bool      `json:"is_full_time"`
	IsOnsite            bool      `json:"is_onsite"`
	HasInsurance        bool      `json:"has_insurance"`
	Position            *string   `json:"position,omitempty"`
	StartDate           *string   `json:"start_date,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                  e.ID,
		Name:                e.Name,
		Tier:                e.Tier,
		IsAppointmentSetter: e.IsAppointmentSetter,
		IsFullTime:          e.IsFullTime,
		IsOnsite:            e.IsOnsite,
		HasInsurance:        e.HasInsurance,
		Position:            e.Position,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
	if e.StartDate != nil {
		s := e.StartDate.Format("2006-01-02")
		resp.StartDate = &s
	}
	return resp
}
