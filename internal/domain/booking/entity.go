package booking

import (
	"math"
	"time"

	"github.com/barberbook/barberbook-api/internal/models"
)

// DepositFraction of the total price is collected upfront to secure a slot.
const DepositFraction = 0.5

// NoticeWindowHours is the cancellation threshold below which the deposit
// is forfeited. The boundary itself is refund-eligible.
const NoticeWindowHours = 24.0

// ===============================
// Domain Actions
// ===============================

func Cancel(b *models.Booking, now time.Time) error {
	if !Cancellable(Status(b.Status)) {
		return ErrNotCancellable
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanTransition(Status(b.Status), StatusCompleted); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}

// ===============================
// Money
// ===============================

// Deposit computes the upfront charge in minor units.
func Deposit(totalPriceMinor int64) int64 {
	return int64(math.Round(float64(totalPriceMinor) * DepositFraction))
}

// ===============================
// Refund policy
// ===============================

// AppointmentAt resolves the booking's date and time-of-day into an instant
// in the given location.
func AppointmentAt(b *models.Booking, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04:05",
		b.AppointmentDate+" "+NormalizeClock(b.AppointmentTime),
		loc,
	)
}

// RefundEligible reports whether cancelling now returns the deposit:
// at least NoticeWindowHours of notice (inclusive), a paid deposit, and a
// payment reference to refund against.
func RefundEligible(b *models.Booking, now time.Time, loc *time.Location) bool {
	if !b.DepositPaid || b.PaymentIntentRef == nil || *b.PaymentIntentRef == "" {
		return false
	}

	at, err := AppointmentAt(b, loc)
	if err != nil {
		return false
	}

	hoursUntil := at.Sub(now).Hours()
	return hoursUntil >= NoticeWindowHours
}
