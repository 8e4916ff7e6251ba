package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/attendance"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendance struct {
	records    []attendance.Attendance
	lastFilter attendance.Filter
}

func (f *fakeAttendance) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	a.ID = int64(len(f.records) + 1)
	f.records = append(f.records, a)
	return a, nil
}

func (f *fakeAttendance) GetByEmployeeAndDate(_ context.Context, employeeID int64, date time.Time) (attendance.Attendance, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return r, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendance) UpdateClockOut(_ context.Context, id int64, clockOut time.Time, totalHours decimal.Decimal) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].ClockOutTime = &clockOut
			f.records[i].TotalHours = totalHours
		}
	}
	return nil
}

func (f *fakeAttendance) List(_ context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	f.lastFilter = filter
	return f.records, nil
}

type fakeEmployees struct {
	employee.EmployeeRepository
	departments map[string][]int64
}

func (f *fakeEmployees) IDsByDepartment(_ context.Context, department string) ([]int64, error) {
	return f.departments[department], nil
}

func (f *fakeEmployees) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	if id == 404 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id}, nil
}

func newTestService(now *time.Time, loc *time.Location) (*AttendanceServiceImpl, *fakeAttendance) {
	fa := &fakeAttendance{}
	fe := &fakeEmployees{departments: map[string][]int64{"Engineering": {3, 4}}}
	svc := NewAttendanceService(fa, fe, loc)
	svc.now = func() time.Time { return *now }
	return svc, fa
}

func TestClockInAndOut(t *testing.T) {
	now := time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC)
	svc, fa := newTestService(&now, time.UTC)
	claims := auth.Claims{EmployeeID: 7}

	resp, err := svc.ClockIn(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", resp.Date)
	assert.Equal(t, "Present", resp.Status)

	_, err = svc.ClockIn(context.Background(), claims)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)

	now = now.Add(8*time.Hour + 20*time.Minute)
	resp, err = svc.ClockOut(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "8.33", resp.TotalHours.String())
	require.NotNil(t, fa.records[0].ClockOutTime)

	_, err = svc.ClockOut(context.Background(), claims)
	assert.ErrorIs(t, err, attendance.ErrCannotClockOut)
}

func TestClockOut_NotClockedIn(t *testing.T) {
	now := time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC)
	svc, _ := newTestService(&now, time.UTC)

	_, err := svc.ClockOut(context.Background(), auth.Claims{EmployeeID: 7})
	assert.ErrorIs(t, err, attendance.ErrCannotClockOut)
}

func TestClockIn_UsesConfiguredDay(t *testing.T) {
	// 20:00 UTC on the 4th is already the 5th in Jakarta.
	now := time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC)
	svc, _ := newTestService(&now, time.FixedZone("WIB", 7*3600))

	resp, err := svc.ClockIn(context.Background(), auth.Claims{EmployeeID: 7})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", resp.Date)
}

func TestListRoles(t *testing.T) {
	now := time.Now()
	svc, fa := newTestService(&now, time.UTC)
	ctx := context.Background()

	staff := auth.Claims{EmployeeID: 1, Rank: "staff", Department: "Engineering"}
	manager := auth.Claims{EmployeeID: 2, Rank: auth.RankManager, Department: "Engineering"}
	emptyManager := auth.Claims{EmployeeID: 2, Rank: auth.RankManager, Department: "Legal"}
	hrAdmin := auth.Claims{EmployeeID: 3, Rank: auth.RankAdmin, Department: auth.DepartmentHumanResource}
	otherAdmin := auth.Claims{EmployeeID: 4, Rank: auth.RankAdmin, Department: "Finance"}

	_, err := svc.ListMine(ctx, staff, attendance.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, fa.lastFilter.EmployeeIDs)

	_, err = svc.ListDepartment(ctx, staff, attendance.Filter{})
	assert.ErrorIs(t, err, employee.ErrAccessDenied)

	_, err = svc.ListDepartment(ctx, manager, attendance.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, fa.lastFilter.EmployeeIDs)

	_, err = svc.ListDepartment(ctx, emptyManager, attendance.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, fa.lastFilter.EmployeeIDs)
	assert.Empty(t, fa.lastFilter.EmployeeIDs)

	_, err = svc.ListAll(ctx, otherAdmin, attendance.Filter{})
	assert.ErrorIs(t, err, employee.ErrAccessDenied)

	year := 2024
	_, err = svc.ListAll(ctx, hrAdmin, attendance.Filter{Year: &year})
	require.NoError(t, err)
	assert.Nil(t, fa.lastFilter.EmployeeIDs)
	assert.Equal(t, 2024, *fa.lastFilter.Year)

	_, err = svc.ListEmployee(ctx, manager, 9, attendance.Filter{})
	assert.ErrorIs(t, err, employee.ErrAccessDenied)

	_, err = svc.ListEmployee(ctx, hrAdmin, 404, attendance.Filter{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.ListEmployee(ctx, hrAdmin, 9, attendance.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, fa.lastFilter.EmployeeIDs)
}
