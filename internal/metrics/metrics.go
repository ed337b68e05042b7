package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_bookings_total",
			Help: "Total number of training bookings created",
		},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	ScheduleConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_schedule_conflicts_total",
			Help: "Training proposals rejected due to a schedule conflict",
		},
		[]string{"kind"},
	)

	SubRequestsResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_sub_requests_resolved_total",
			Help: "Subscription requests resolved by an administrator",
		},
		[]string{"decision"},
	)

	MembershipsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_memberships_expired_total",
			Help: "Memberships transitioned to expired by the sweep",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking() {
	BookingsTotal.Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordScheduleConflict(kind string) {
	ScheduleConflictsTotal.WithLabelValues(kind).Inc()
}

func RecordSubRequestResolved(decision string) {
	SubRequestsResolvedTotal.WithLabelValues(decision).Inc()
}

func RecordMembershipsExpired(count int) {
	MembershipsExpiredTotal.Add(float64(count))
}
