package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiobook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studiobook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studiobook_bookings_created_total",
			Help: "Total number of bookings created",
		},
	)

	BookingRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiobook_booking_rejections_total",
			Help: "Total number of rejected booking attempts",
		},
		[]string{"reason"},
	)

	ClassesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiobook_classes_created_total",
			Help: "Total number of fitness classes created",
		},
		[]string{"class_name"},
	)

	InstructorsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "studiobook_instructors_created_total",
			Help: "Total number of instructors created",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studiobook_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "studiobook_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated() {
	BookingsCreatedTotal.Inc()
}

func RecordBookingRejected(reason string) {
	BookingRejectionsTotal.WithLabelValues(reason).Inc()
}

func RecordClassCreated(className string) {
	ClassesCreatedTotal.WithLabelValues(className).Inc()
}

func RecordInstructorCreated() {
	InstructorsCreatedTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
