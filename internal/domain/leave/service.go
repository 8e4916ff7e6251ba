package leave

import (
	"context"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
)

type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, claims auth.Claims, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ListMyLeaveRequests(ctx context.Context, claims auth.Claims) ([]LeaveRequestResponse, error)
	ListPendingLeaveRequests(ctx context.Context, claims auth.Claims) ([]LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, claims auth.Claims, id int64) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, claims auth.Claims, id int64, req RejectLeaveRequestRequest) (LeaveRequestResponse, error)
	GetLeaveBalance(ctx context.Context, claims auth.Claims) (LeaveBalanceResponse, error)
}
