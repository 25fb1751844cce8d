package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "towerctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total admin HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "towerctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Admin HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	connsAccepted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "towerctl",
			Subsystem: "server",
			Name:      "connections_accepted_total",
			Help:      "Connections handed to a protocol handler.",
		},
		[]string{"node"},
	)
	acceptErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "towerctl",
			Subsystem: "server",
			Name:      "accept_errors_total",
			Help:      "Accept failures that were logged and skipped.",
		},
		[]string{"node"},
	)
	dispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "towerctl",
			Subsystem: "protocol",
			Name:      "dispatches_total",
			Help:      "Protocol lines dispatched, by command.",
		},
		[]string{"node", "command"},
	)
	dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "towerctl",
			Subsystem: "protocol",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent dispatching one protocol line under the table lock.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "command"},
	)
	registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "towerctl",
			Subsystem: "mapper",
			Name:      "registrations_total",
			Help:      "Registration attempts, by acceptance.",
		},
		[]string{"node", "accepted"},
	)
	lookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "towerctl",
			Subsystem: "mapper",
			Name:      "lookups_total",
			Help:      "Name lookups, by hit/miss.",
		},
		[]string{"node", "found"},
	)
	visits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "towerctl",
			Subsystem: "tower",
			Name:      "visits_total",
			Help:      "Flight identities appended to the visit log.",
		},
		[]string{"node"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests, httpDuration,
			connsAccepted, acceptErrors,
			dispatches, dispatchDuration,
			registrations, lookups, visits,
		)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordConnection(node string) {
	RegisterMetrics()
	connsAccepted.WithLabelValues(node).Inc()
}

func RecordAcceptError(node string) {
	RegisterMetrics()
	acceptErrors.WithLabelValues(node).Inc()
}

func RecordDispatch(node, command string, duration time.Duration) {
	RegisterMetrics()
	dispatches.WithLabelValues(node, command).Inc()
	dispatchDuration.WithLabelValues(node, command).Observe(duration.Seconds())
}

func RecordRegistration(node string, accepted bool) {
	RegisterMetrics()
	registrations.WithLabelValues(node, strconv.FormatBool(accepted)).Inc()
}

func RecordLookup(node string, found bool) {
	RegisterMetrics()
	lookups.WithLabelValues(node, strconv.FormatBool(found)).Inc()
}

func RecordVisit(node string) {
	RegisterMetrics()
	visits.WithLabelValues(node).Inc()
}
