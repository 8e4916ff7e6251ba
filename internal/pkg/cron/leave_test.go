package cron

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/employee"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/leave"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmployeeStore mimics the SQL filters of the Postgres repository.
type fakeEmployeeStore struct {
	employees map[int64]*employee.Employee

	locks          int
	balanceWrites  int
	statusWrites   int
	listErr        error
	updateErr      error
	lastStatusSent employee.WorkStatus
}

func newFakeEmployeeStore(emps ...employee.Employee) *fakeEmployeeStore {
	s := &fakeEmployeeStore{employees: map[int64]*employee.Employee{}}
	for i := range emps {
		e := emps[i]
		s.employees[e.ID] = &e
	}
	return s
}

func (s *fakeEmployeeStore) sortedIDs() []int64 {
	ids := make([]int64, 0, len(s.employees))
	for id := range s.employees {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *fakeEmployeeStore) LockForBatch(context.Context) error {
	s.locks++
	return nil
}

func (s *fakeEmployeeStore) ListActive(context.Context) ([]employee.Employee, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []employee.Employee
	for _, id := range s.sortedIDs() {
		if e := s.employees[id]; e.Status == employee.StatusActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeEmployeeStore) ListByWorkStatus(_ context.Context, status employee.WorkStatus) ([]employee.Employee, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []employee.Employee
	for _, id := range s.sortedIDs() {
		if e := s.employees[id]; e.WorkStatus == status {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeEmployeeStore) UpdateLeaveBalances(_ context.Context, updates []employee.BalanceUpdate) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.balanceWrites++
	for _, u := range updates {
		b := u.Balance
		s.employees[u.EmployeeID].LeaveBalance = &b
	}
	return nil
}

func (s *fakeEmployeeStore) UpdateWorkStatus(_ context.Context, ids []int64, status employee.WorkStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.statusWrites++
	s.lastStatusSent = status
	for _, id := range ids {
		s.employees[id].WorkStatus = status
	}
	return nil
}

type fakeLeaveStore struct {
	requests []leave.LeaveRequest
	calls    int
}

func (s *fakeLeaveStore) LatestApprovedEndDates(_ context.Context, ids []int64) (map[int64]time.Time, error) {
	s.calls++
	wanted := map[int64]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	out := map[int64]time.Time{}
	for _, r := range s.requests {
		if !wanted[r.EmployeeID] || r.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if cur, ok := out[r.EmployeeID]; !ok || r.EndDate.After(cur) {
			out[r.EmployeeID] = r.EndDate
		}
	}
	return out, nil
}

type fakeTx struct {
	calls int
}

func (t *fakeTx) WithinSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func newTestLeaveJobs(emps *fakeEmployeeStore, leaves *fakeLeaveStore, now time.Time) (*LeaveJobs, *fakeTx, *metrics.Collection) {
	tx := &fakeTx{}
	m := metrics.New()
	j := NewLeaveJobs(emps, leaves, tx, m, time.UTC)
	j.now = func() time.Time { return now }
	return j, tx, m
}

func activeEmployee(id int64, start *time.Time, balance *decimal.Decimal) employee.Employee {
	return employee.Employee{
		ID:           id,
		FirstName:    "Emp",
		LastName:     "Loyee",
		Status:       employee.StatusActive,
		WorkStatus:   employee.WorkStatusInOffice,
		StartDate:    start,
		LeaveBalance: balance,
	}
}

func TestMonthlyAccrual_SixMonthsOfTenure(t *testing.T) {
	start := datePtr(2024, 1, 1)
	terminated := activeEmployee(4, start, nil)
	terminated.Status = employee.StatusTerminated

	store := newFakeEmployeeStore(
		activeEmployee(1, start, nil),
		activeEmployee(2, start, dec(5)),
		activeEmployee(3, start, dec(20)),
		terminated,
		activeEmployee(5, nil, nil),
	)
	jobs, tx, m := newTestLeaveJobs(store, &fakeLeaveStore{}, time.Date(2024, 7, 1, 0, 0, 5, 0, time.UTC))

	require.NoError(t, jobs.MonthlyAccrual(context.Background()))

	assert.True(t, decimal.NewFromInt(12).Equal(*store.employees[1].LeaveBalance))
	assert.True(t, decimal.NewFromInt(12).Equal(*store.employees[2].LeaveBalance))
	assert.True(t, decimal.NewFromInt(20).Equal(*store.employees[3].LeaveBalance))
	assert.Nil(t, store.employees[4].LeaveBalance, "terminated employees are never modified")
	assert.Nil(t, store.employees[5].LeaveBalance, "employees without a start date are skipped")

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, store.locks)
	assert.Equal(t, 1, store.balanceWrites, "changes are committed in one bulk write")
	assert.Equal(t, float64(2), testutil.ToFloat64(m.LeaveBalancesAccrued))
}

func TestMonthlyAccrual_IsIdempotent(t *testing.T) {
	store := newFakeEmployeeStore(
		activeEmployee(1, datePtr(2023, 11, 20), nil),
		activeEmployee(2, datePtr(2024, 2, 1), dec(1)),
	)
	jobs, _, _ := newTestLeaveJobs(store, &fakeLeaveStore{}, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, jobs.MonthlyAccrual(context.Background()))
	first := map[int64]decimal.Decimal{}
	for id, e := range store.employees {
		first[id] = *e.LeaveBalance
	}

	require.NoError(t, jobs.MonthlyAccrual(context.Background()))
	for id, e := range store.employees {
		assert.True(t, first[id].Equal(*e.LeaveBalance), "employee %d changed on second run", id)
	}
	assert.Equal(t, 1, store.balanceWrites, "second run has nothing to write")
}

func TestMonthlyAccrual_BalanceReachesFloorAndNeverDrops(t *testing.T) {
	today := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		start   time.Time
		balance *decimal.Decimal
	}{
		{date(2020, 5, 17), nil},
		{date(2024, 12, 31), dec(0)},
		{date(2023, 3, 1), dec(24)},
		{date(2023, 3, 1), dec(30)},
		{date(2025, 3, 1), dec(-2)},
		{date(2019, 1, 1), func() *decimal.Decimal { d := decimal.RequireFromString("7.5"); return &d }()},
	}

	var emps []employee.Employee
	for i, c := range cases {
		start := c.start
		emps = append(emps, activeEmployee(int64(i+1), &start, c.balance))
	}
	store := newFakeEmployeeStore(emps...)
	jobs, _, _ := newTestLeaveJobs(store, &fakeLeaveStore{}, today)

	require.NoError(t, jobs.MonthlyAccrual(context.Background()))

	for i, c := range cases {
		got := store.employees[int64(i+1)].Balance()
		expected := employee.ExpectedLeaveBalance(c.start, today)
		assert.True(t, got.GreaterThanOrEqual(expected), "case %d: %s < %s", i, got, expected)
		if c.balance != nil {
			assert.True(t, got.GreaterThanOrEqual(*c.balance), "case %d lowered a balance", i)
		}
	}
}

func TestMonthlyAccrual_FutureStartDateIsNotClamped(t *testing.T) {
	store := newFakeEmployeeStore(
		activeEmployee(1, datePtr(2024, 9, 15), nil),
		activeEmployee(2, datePtr(2024, 9, 15), dec(0)),
	)
	jobs, _, _ := newTestLeaveJobs(store, &fakeLeaveStore{}, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, jobs.MonthlyAccrual(context.Background()))

	// months_worked = -2, so a NULL balance becomes -4 and zero is kept.
	assert.True(t, decimal.NewFromInt(-4).Equal(*store.employees[1].LeaveBalance))
	assert.True(t, decimal.Zero.Equal(*store.employees[2].LeaveBalance))
}

func TestMonthlyAccrual_WriteFailureAbortsRun(t *testing.T) {
	store := newFakeEmployeeStore(activeEmployee(1, datePtr(2024, 1, 1), nil))
	store.updateErr = errors.New("connection reset")
	jobs, _, m := newTestLeaveJobs(store, &fakeLeaveStore{}, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	err := jobs.MonthlyAccrual(context.Background())
	assert.ErrorIs(t, err, store.updateErr)
	assert.Nil(t, store.employees[1].LeaveBalance)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.LeaveBalancesAccrued))
}

func TestMonthlyAccrual_ListFailure(t *testing.T) {
	store := newFakeEmployeeStore()
	store.listErr = errors.New("timeout")
	jobs, _, _ := newTestLeaveJobs(store, &fakeLeaveStore{}, time.Now())

	assert.ErrorIs(t, jobs.MonthlyAccrual(context.Background()), store.listErr)
}

func onLeaveEmployee(id int64, status employee.WorkStatus) employee.Employee {
	e := activeEmployee(id, datePtr(2023, 1, 1), dec(10))
	e.WorkStatus = status
	return e
}

func approved(empID int64, start, end time.Time) leave.LeaveRequest {
	return leave.LeaveRequest{EmployeeID: empID, StartDate: start, EndDate: end, Status: leave.LeaveRequestStatusApproved}
}

func TestEndLeaveStatusCheck(t *testing.T) {
	today := date(2024, 7, 10)
	store := newFakeEmployeeStore(
		onLeaveEmployee(1, reconcileOnLeave),           // ended yesterday
		onLeaveEmployee(2, reconcileOnLeave),           // ends tomorrow
		onLeaveEmployee(3, reconcileOnLeave),           // no approved leave
		onLeaveEmployee(4, employee.WorkStatusOnLeave), // title-case, ended yesterday
		onLeaveEmployee(5, reconcileOnLeave),           // ends today
		onLeaveEmployee(6, reconcileOnLeave),           // older leave ended, newer one running
	)
	leaves := &fakeLeaveStore{requests: []leave.LeaveRequest{
		approved(1, date(2024, 7, 1), date(2024, 7, 9)),
		approved(2, date(2024, 7, 8), date(2024, 7, 11)),
		{EmployeeID: 3, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 2), Status: leave.LeaveRequestStatusPending},
		approved(4, date(2024, 7, 1), date(2024, 7, 9)),
		approved(5, date(2024, 7, 8), date(2024, 7, 10)),
		approved(6, date(2024, 5, 1), date(2024, 5, 3)),
		approved(6, date(2024, 7, 9), date(2024, 7, 12)),
	}}
	jobs, tx, m := newTestLeaveJobs(store, leaves, today.Add(30*time.Minute))

	require.NoError(t, jobs.EndLeaveStatusCheck(context.Background()))

	assert.Equal(t, reconcileInOffice, store.employees[1].WorkStatus)
	assert.Equal(t, reconcileOnLeave, store.employees[2].WorkStatus)
	assert.Equal(t, reconcileOnLeave, store.employees[3].WorkStatus)
	assert.Equal(t, employee.WorkStatusOnLeave, store.employees[4].WorkStatus, "title-case status is not matched")
	assert.Equal(t, reconcileOnLeave, store.employees[5].WorkStatus)
	assert.Equal(t, reconcileOnLeave, store.employees[6].WorkStatus)

	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, 1, store.statusWrites)
	assert.Equal(t, employee.WorkStatus("in office"), store.lastStatusSent)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LeaveStatusesReset))
}

func TestEndLeaveStatusCheck_UsesJobTimeZone(t *testing.T) {
	store := newFakeEmployeeStore(onLeaveEmployee(1, reconcileOnLeave))
	leaves := &fakeLeaveStore{requests: []leave.LeaveRequest{
		approved(1, date(2024, 7, 1), date(2024, 7, 10)),
	}}
	jobs, _, _ := newTestLeaveJobs(store, leaves, time.Date(2024, 7, 10, 17, 30, 0, 0, time.UTC))
	jobs.location = time.FixedZone("WIB", 7*60*60) // already 00:30 on the 11th

	require.NoError(t, jobs.EndLeaveStatusCheck(context.Background()))
	assert.Equal(t, reconcileInOffice, store.employees[1].WorkStatus)
}

func TestEndLeaveStatusCheck_NobodyOnLeave(t *testing.T) {
	store := newFakeEmployeeStore(activeEmployee(1, datePtr(2024, 1, 1), nil))
	leaves := &fakeLeaveStore{}
	jobs, _, _ := newTestLeaveJobs(store, leaves, time.Now())

	require.NoError(t, jobs.EndLeaveStatusCheck(context.Background()))
	assert.Equal(t, 0, leaves.calls)
	assert.Equal(t, 0, store.statusWrites)
}

func TestEndLeaveStatusCheck_WriteFailure(t *testing.T) {
	store := newFakeEmployeeStore(onLeaveEmployee(1, reconcileOnLeave))
	store.updateErr = errors.New("serialization failure")
	leaves := &fakeLeaveStore{requests: []leave.LeaveRequest{
		approved(1, date(2024, 7, 1), date(2024, 7, 2)),
	}}
	jobs, _, _ := newTestLeaveJobs(store, leaves, time.Date(2024, 7, 10, 0, 30, 0, 0, time.UTC))

	assert.ErrorIs(t, jobs.EndLeaveStatusCheck(context.Background()), store.updateErr)
	assert.Equal(t, reconcileOnLeave, store.employees[1].WorkStatus)
}

func TestLeaveJobs_RegisterJobs(t *testing.T) {
	s := NewScheduler(time.UTC, nil)
	jobs, _, _ := newTestLeaveJobs(newFakeEmployeeStore(), &fakeLeaveStore{}, time.Now())

	require.NoError(t, jobs.RegisterJobs(s, "0 0 1 * *", "30 0 * * *"))
	assert.Equal(t, []string{JobMonthlyAccrual, JobEndLeaveStatusCheck}, s.Jobs())

	assert.Error(t, jobs.RegisterJobs(NewScheduler(time.UTC, nil), "bad", "30 0 * * *"))
}
