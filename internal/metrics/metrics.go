package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ResultConfirmed     = "confirmed"
	ResultSoldOut       = "sold_out"
	ResultAlreadyBooked = "already_booked"
	ResultPast          = "past"
	ResultNotFound      = "not_found"
	ResultPaymentFailed = "payment_failed"
	ResultError         = "error"
)

var (
	BookingAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_booking_attempts_total",
			Help: "Number of booking attempts by result",
		},
		[]string{"result"},
	)

	BookingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "activity_booking_duration_seconds",
			Help:    "Time taken to run a booking, retries included",
			Buckets: prometheus.DefBuckets,
		},
	)

	BookingEventsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "activity_booking_events_failed_total",
			Help: "Number of booking events that could not be published",
		},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func Register() {
	prometheus.MustRegister(
		BookingAttempts,
		BookingDuration,
		BookingEventsFailed,
		HTTPRequests,
		HTTPRequestDuration,
	)
}
