package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveJob(t *testing.T) {
	c := New()

	c.ObserveJob("tasks.accrual.monthly_accrual", nil, 10*time.Millisecond)
	c.ObserveJob("tasks.accrual.monthly_accrual", nil, 20*time.Millisecond)
	c.ObserveJob("tasks.accrual.monthly_accrual", errors.New("boom"), time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.JobRuns.WithLabelValues("tasks.accrual.monthly_accrual", ResultSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.JobRuns.WithLabelValues("tasks.accrual.monthly_accrual", ResultError)))
}

func TestCounters(t *testing.T) {
	c := New()

	c.AddLeaveBalancesAccrued(3)
	c.AddLeaveStatusesReset(2)
	c.ObserveAssistantQuery(ResultSuccess)

	assert.Equal(t, float64(3), testutil.ToFloat64(c.LeaveBalancesAccrued))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.LeaveStatusesReset))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.AssistantQueries.WithLabelValues(ResultSuccess)))
}

func TestNilCollection(t *testing.T) {
	var c *Collection
	assert.NotPanics(t, func() {
		c.ObserveJob("x", nil, time.Second)
		c.AddLeaveBalancesAccrued(1)
		c.AddLeaveStatusesReset(1)
		c.ObserveAssistantQuery(ResultError)
	})
}

func TestHandler(t *testing.T) {
	c := New()
	c.AddLeaveStatusesReset(1)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "hrstreamline_leave_statuses_reset_total 1"))
}
