package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberbook_bookings_created_total",
		Help: "Pending bookings created.",
	})
	BookingsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberbook_bookings_confirmed_total",
		Help: "Bookings confirmed by a payment callback.",
	})
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberbook_bookings_cancelled_total",
		Help: "Bookings cancelled, by any path.",
	})
	BookingsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberbook_bookings_completed_total",
		Help: "Bookings marked completed by the barber.",
	})
	SlotConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberbook_slot_conflicts_total",
		Help: "Booking attempts rejected because the slot was taken.",
	})
	PaymentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberbook_payment_failures_total",
		Help: "Payment failure callbacks processed.",
	})
	RefundsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberbook_refunds_issued_total",
		Help: "Deposit refunds issued on cancellation.",
	})
	WaitlistNotifications = promauto.NewCounter(prometheus.CounterOpts{
		Name: "barberbook_waitlist_notifications_total",
		Help: "Waitlist entries notified about a freed slot.",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
