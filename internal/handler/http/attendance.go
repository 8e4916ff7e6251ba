package http

import (
	"context"
	"net/http"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/attendance"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/handler/http/response"
)

const noAttendanceMessage = "No attendance records found."

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListDepartment(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	ListEmployee(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// ClockIn implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}

	resp, err := a.attendanceService.ClockIn(r.Context(), claims)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", resp)
}

// ClockOut implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}

	resp, err := a.attendanceService.ClockOut(r.Context(), claims)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", resp)
}

// ListMine implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	a.list(w, r, a.attendanceService.ListMine)
}

// ListDepartment implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListDepartment(w http.ResponseWriter, r *http.Request) {
	a.list(w, r, a.attendanceService.ListDepartment)
}

// ListAll implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	a.list(w, r, a.attendanceService.ListAll)
}

// ListEmployee implements AttendanceHandler.
func (a *AttendanceHandlerImpl) ListEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a.list(w, r, func(ctx context.Context, claims auth.Claims, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
		return a.attendanceService.ListEmployee(ctx, claims, id, filter)
	})
}

type attendanceLister func(ctx context.Context, claims auth.Claims, filter attendance.Filter) ([]attendance.AttendanceResponse, error)

func (a *AttendanceHandlerImpl) list(w http.ResponseWriter, r *http.Request, fn attendanceLister) {
	claims, ok := claimsOrUnauthorized(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter, err := attendance.ParseDateFilter(q.Get("year"), q.Get("month"), q.Get("day"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := fn(r.Context(), claims, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if len(records) == 0 {
		response.SuccessWithMessage(w, noAttendanceMessage, []attendance.AttendanceResponse{})
		return
	}
	response.Success(w, records)
}
