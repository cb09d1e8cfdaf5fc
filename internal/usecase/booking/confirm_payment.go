package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/audit"
	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/metrics"
	"github.com/barberbook/barberbook-api/internal/notify"
)

// ConfirmPaymentInput carries the checkout metadata delivered by the
// gateway's success callback.
type ConfirmPaymentInput struct {
	CustomerID uint
	BarberID   uint

	Date string
	Time string

	// Final payment intent reference from the completed session.
	PaymentIntentRef string
}

type ConfirmPayment struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewConfirmPayment(
	repo domain.Repository,
	notifier notify.Notifier,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
) *ConfirmPayment {
	return &ConfirmPayment{
		repo:     repo,
		notifier: notifier,
		audit:    auditDispatcher,
		log:      log,
	}
}

// Execute is idempotent: callbacks are delivered at least once, so a replay
// against an already-confirmed booking is a no-op success.
func (uc *ConfirmPayment) Execute(
	ctx context.Context,
	in ConfirmPaymentInput,
) error {

	timeOfDay := domain.NormalizeClock(in.Time)

	b, err := uc.repo.FindConflict(ctx, in.BarberID, in.Date, timeOfDay)
	if err != nil {
		return err
	}
	if b == nil || b.CustomerID != in.CustomerID {
		// Booking already terminal or metadata does not match anything we
		// hold; acknowledge so the gateway stops redelivering.
		uc.log.Warn("payment confirmation matched no active booking",
			zap.Uint("barber_id", in.BarberID),
			zap.String("date", in.Date),
			zap.String("time", timeOfDay))
		return nil
	}

	if domain.Status(b.Status) == domain.StatusConfirmed {
		// Replay.
		return nil
	}

	moved, err := uc.repo.Transition(
		ctx,
		b.ID,
		[]domain.Status{domain.StatusPending},
		domain.StatusConfirmed,
		map[string]any{
			"deposit_paid":       true,
			"payment_intent_ref": in.PaymentIntentRef,
		},
	)
	if err != nil {
		return err
	}
	if !moved {
		cur, err := uc.repo.GetBooking(ctx, b.ID)
		if err == nil && domain.Status(cur.Status) == domain.StatusConfirmed {
			return nil
		}
		return domain.ErrStaleState
	}

	metrics.BookingsConfirmed.Inc()
	uc.audit.Dispatch(audit.Event{
		ActorID:  &b.CustomerID,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	// Best-effort reminder scheduling; a failure never fails confirmation.
	uc.scheduleReminder(ctx, b.ID)

	return nil
}

func (uc *ConfirmPayment) scheduleReminder(ctx context.Context, bookingID uint) {
	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		uc.log.Warn("reminder skipped, booking reload failed", zap.Uint("booking_id", bookingID), zap.Error(err))
		return
	}

	customer, err := uc.repo.GetUser(ctx, b.CustomerID)
	if err != nil {
		uc.log.Warn("reminder skipped, customer lookup failed", zap.Uint("booking_id", bookingID), zap.Error(err))
		return
	}

	nctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := uc.notifier.SendReminder(nctx, b, customer.Email); err != nil {
		uc.log.Warn("reminder scheduling failed",
			zap.Uint("booking_id", bookingID),
			zap.Error(err))
	}
}
