package booking

import (
	"context"

	"github.com/barberbook/barberbook-api/internal/models"
)

// Repository is the booking ledger plus the reads the lifecycle needs.
// The store must enforce uniqueness of (barber, date, time) across
// pending/confirmed rows; CreateBooking surfaces a violation as ErrSlotTaken.
type Repository interface {
	// -------- Catalog / availability --------
	GetService(
		ctx context.Context,
		barberID uint,
		serviceID uint,
	) (*models.Service, error)

	GetAvailabilityRule(
		ctx context.Context,
		barberID uint,
		dayOfWeek int,
	) (*models.AvailabilityRule, error)

	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Ledger (create / conflict) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	FindConflict(
		ctx context.Context,
		barberID uint,
		date string,
		timeOfDay string,
	) (*models.Booking, error)

	ListBookedTimes(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]string, error)

	// -------- Ledger (lookup) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	GetBookingForCustomer(
		ctx context.Context,
		id uint,
		customerID uint,
	) (*models.Booking, error)

	FindByPaymentRef(
		ctx context.Context,
		ref string,
	) (*models.Booking, error)

	ListBookingsForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Booking, error)

	ListBookingsForBarberDate(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Booking, error)

	// -------- Ledger (state change) --------
	// Transition moves the booking to `to` only while its current status is
	// in `from`, applying extra column updates atomically. Returns false
	// when no row matched.
	Transition(
		ctx context.Context,
		bookingID uint,
		from []Status,
		to Status,
		updates map[string]any,
	) (bool, error)
}
