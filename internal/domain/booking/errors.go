package booking

import "errors"

var (
	// ErrSlotTaken is returned when a pending or confirmed booking already
	// occupies the requested (barber, date, time) slot.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrStaleState is returned when a transition's expected source status
	// no longer matches: the booking moved under the caller.
	ErrStaleState = errors.New("booking changed state")

	// ErrInvalidTransition is returned for lifecycle moves the state
	// machine does not permit.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotAuthorized is returned when the actor does not own the resource.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrNotCancellable is returned when the booking is not in a
	// cancellable status.
	ErrNotCancellable = errors.New("booking cannot be cancelled")

	// ErrPaymentSetup is returned when the payment session could not be
	// created; booking creation is aborted.
	ErrPaymentSetup = errors.New("payment session setup failed")

	ErrBookingNotFound = errors.New("booking not found")
	ErrServiceNotFound = errors.New("service not found")
)
