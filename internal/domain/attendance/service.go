package attendance

import (
	"context"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
)

type AttendanceService interface {
	ClockIn(ctx context.Context, claims auth.Claims) (AttendanceResponse, error)
	ClockOut(ctx context.Context, claims auth.Claims) (AttendanceResponse, error)
	ListMine(ctx context.Context, claims auth.Claims, filter Filter) ([]AttendanceResponse, error)
	ListDepartment(ctx context.Context, claims auth.Claims, filter Filter) ([]AttendanceResponse, error)
	ListAll(ctx context.Context, claims auth.Claims, filter Filter) ([]AttendanceResponse, error)
	ListEmployee(ctx context.Context, claims auth.Claims, employeeID int64, filter Filter) ([]AttendanceResponse, error)
}
