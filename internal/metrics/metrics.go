package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presaleadmin_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presaleadmin_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presaleadmin_backend_requests_total",
			Help: "Total number of requests sent to the presale backend",
		},
		[]string{"method", "route", "status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "presaleadmin_backend_request_duration_seconds",
			Help:    "Presale backend request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	SnapshotReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presaleadmin_snapshot_reloads_total",
			Help: "Total number of snapshot reloads",
		},
		[]string{"result"},
	)

	SnapshotRecords = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "presaleadmin_snapshot_records",
			Help: "Number of records held in the current snapshot",
		},
		[]string{"kind"},
	)

	TokenTransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "presaleadmin_token_transfers_total",
			Help: "Total number of operator-triggered token transfers",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// RecordBackendRequest counts a backend call. A zero status means the request
// never got a response.
func RecordBackendRequest(method, route string, status int, duration time.Duration) {
	label := ResultError
	if status != 0 {
		label = strconv.Itoa(status)
	}
	BackendRequestsTotal.WithLabelValues(method, route, label).Inc()
	BackendRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordSnapshotReload(err error, users, transactions int) {
	if err != nil {
		SnapshotReloadsTotal.WithLabelValues(ResultError).Inc()
		return
	}
	SnapshotReloadsTotal.WithLabelValues(ResultSuccess).Inc()
	SnapshotRecords.WithLabelValues("users").Set(float64(users))
	SnapshotRecords.WithLabelValues("transactions").Set(float64(transactions))
}

func RecordTransfer(result string) {
	TokenTransfersTotal.WithLabelValues(result).Inc()
}
