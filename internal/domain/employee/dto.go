package employee

import (
	"encoding/json"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID           int64        `json:"id"`
	Email        string       `json:"email"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	PhoneNo      *string      `json:"phone_no"`
	Gender       *string      `json:"gender"`
	Address      *string      `json:"address"`
	Country      *string      `json:"country"`
	Department   *string      `json:"emp_department"`
	Team         *string      `json:"emp_team"`
	Position     *string      `json:"emp_position"`
	Rank         *string      `json:"emp_rank"`
	LeaveBalance *json.Number `json:"emp_leave_balance"`
	StartDate    *string      `json:"emp_start_date"`
	EndDate      *string      `json:"emp_end_date"`
	Status       string       `json:"emp_status"`
	WorkStatus   string       `json:"emp_work_status"`
}

// NewEmployeeResponse maps an entity to its API shape.
func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:         e.ID,
		Email:      e.Email,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		PhoneNo:    e.PhoneNo,
		Gender:     e.Gender,
		Address:    e.Address,
		Country:    e.Country,
		Department: e.Department,
		Team:       e.Team,
		Position:   e.Position,
		Rank:       e.Rank,
		Status:     string(e.Status),
		WorkStatus: string(e.WorkStatus),
	}
	if e.LeaveBalance != nil {
		n := json.Number(e.LeaveBalance.String())
		resp.LeaveBalance = &n
	}
	if e.StartDate != nil {
		s := e.StartDate.Format("2006-01-02")
		resp.StartDate = &s
	}
	if e.EndDate != nil {
		s := e.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}

var Genders = []string{"Male", "Female", "Other"}

type ListFilter struct {
	Department *string
}

// UpdateProfileRequest carries the self-service profile fields. Nil fields are
// left unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	PhoneNo   *string `json:"phone_no,omitempty"`
	Gender    *string `json:"gender,omitempty"`
	Address   *string `json:"address,omitempty"`
	Country   *string `json:"country,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name must not be empty"})
	}
	if r.FirstName != nil && len(*r.FirstName) > 80 {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name must not exceed 80 characters"})
	}
	if r.LastName != nil && validator.IsEmpty(*r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name must not be empty"})
	}
	if r.LastName != nil && len(*r.LastName) > 80 {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name must not exceed 80 characters"})
	}
	if r.PhoneNo != nil && len(*r.PhoneNo) > 20 {
		errs = append(errs, validator.ValidationError{Field: "phone_no", Message: "phone_no must not exceed 20 characters"})
	}
	if r.Gender != nil && !validator.IsInSlice(*r.Gender, Genders) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "gender must be one of Male, Female, Other"})
	}
	if r.Address != nil && len(*r.Address) > 200 {
		errs = append(errs, validator.ValidationError{Field: "address", Message: "address must not exceed 200 characters"})
	}
	if r.Country != nil && len(*r.Country) > 50 {
		errs = append(errs, validator.ValidationError{Field: "country", Message: "country must not exceed 50 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAssignmentRequest carries the HR-managed placement fields.
type UpdateAssignmentRequest struct {
	Department *string `json:"emp_department,omitempty"`
	Team       *string `json:"emp_team,omitempty"`
	Position   *string `json:"emp_position,omitempty"`
	Rank       *string `json:"emp_rank,omitempty"`
}

func (r *UpdateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors

	fields := []struct {
		name  string
		value *string
	}{
		{"emp_department", r.Department},
		{"emp_team", r.Team},
		{"emp_position", r.Position},
		{"emp_rank", r.Rank},
	}
	for _, f := range fields {
		if f.value != nil && len(*f.value) > 80 {
			errs = append(errs, validator.ValidationError{Field: f.name, Message: f.name + " must not exceed 80 characters"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
