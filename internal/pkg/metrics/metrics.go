package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "hrstreamline"

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Collection holds the application metrics on its own registry. A nil
// *Collection is valid and records nothing.
type Collection struct {
	registry *prometheus.Registry

	JobRuns              *prometheus.CounterVec
	JobDuration          *prometheus.HistogramVec
	LeaveBalancesAccrued prometheus.Counter
	LeaveStatusesReset   prometheus.Counter
	AssistantQueries     *prometheus.CounterVec
}

func New() *Collection {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collection{
		registry: reg,
		JobRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "job_runs_total",
				Help:      "Number of scheduled job runs by job and result.",
			},
			[]string{"job", "result"},
		),
		JobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "job_duration_seconds",
				Help:      "Scheduled job run time in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"job"},
		),
		LeaveBalancesAccrued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "leave_balances_accrued_total",
			Help:      "Employee leave balances raised by the monthly accrual.",
		}),
		LeaveStatusesReset: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "leave_statuses_reset_total",
			Help:      "Employees returned to in office after their leave ended.",
		}),
		AssistantQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "assistant_queries_total",
				Help:      "Assistant questions by outcome.",
			},
			[]string{"result"},
		),
	}
}

func (c *Collection) ObserveJob(job string, err error, elapsed time.Duration) {
	if c == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	c.JobRuns.WithLabelValues(job, result).Inc()
	c.JobDuration.WithLabelValues(job).Observe(elapsed.Seconds())
}

func (c *Collection) AddLeaveBalancesAccrued(n int) {
	if c == nil {
		return
	}
	c.LeaveBalancesAccrued.Add(float64(n))
}

func (c *Collection) AddLeaveStatusesReset(n int) {
	if c == nil {
		return
	}
	c.LeaveStatusesReset.Add(float64(n))
}

func (c *Collection) ObserveAssistantQuery(result string) {
	if c == nil {
		return
	}
	c.AssistantQueries.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (c *Collection) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
