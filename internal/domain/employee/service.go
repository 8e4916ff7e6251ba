package employee

import (
	"context"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
)

// EmployeeService defines business logic for employee operations. Every
// method receives the caller's claims explicitly.
type EmployeeService interface {
	GetMyProfile(ctx context.Context, claims auth.Claims) (EmployeeResponse, error)
	UpdateMyProfile(ctx context.Context, claims auth.Claims, req UpdateProfileRequest) (EmployeeResponse, error)

	// ListEmployees returns everyone for HR admins and the caller's own
	// department for managers.
	ListEmployees(ctx context.Context, claims auth.Claims) ([]EmployeeResponse, error)
	GetEmployee(ctx context.Context, claims auth.Claims, id int64) (EmployeeResponse, error)

	// HR admin only
	UpdateEmployee(ctx context.Context, claims auth.Claims, id int64, req UpdateAssignmentRequest) (EmployeeResponse, error)
	TerminateEmployee(ctx context.Context, claims auth.Claims, id int64) (EmployeeResponse, error)
}
