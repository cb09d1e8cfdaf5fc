package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/audit"
	"github.com/barberbook/barberbook-api/internal/cache"
	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/metrics"
	"github.com/barberbook/barberbook-api/internal/timezone"
)

type FailPayment struct {
	repo  domain.Repository
	slots *cache.SlotCache
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewFailPayment(
	repo domain.Repository,
	slots *cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
) *FailPayment {
	return &FailPayment{
		repo:  repo,
		slots: slots,
		audit: auditDispatcher,
		log:   log,
	}
}

// Execute cancels the pending booking whose payment failed. Idempotent:
// redeliveries and already-resolved bookings are acknowledged silently.
func (uc *FailPayment) Execute(ctx context.Context, paymentIntentRef string) error {
	metrics.PaymentFailures.Inc()

	b, err := uc.repo.FindByPaymentRef(ctx, paymentIntentRef)
	if err != nil {
		return err
	}
	if b == nil {
		uc.log.Debug("payment failure for unknown reference",
			zap.String("payment_intent_ref", paymentIntentRef))
		return nil
	}

	if domain.Status(b.Status).Terminal() {
		// Replay, or already resolved by another path.
		return nil
	}

	moved, err := uc.repo.Transition(
		ctx,
		b.ID,
		[]domain.Status{domain.StatusPending},
		domain.StatusCancelled,
		map[string]any{"cancelled_at": timezone.Now()},
	)
	if err != nil {
		return err
	}
	if !moved {
		// Confirmed in the meantime; a stale failure event must not undo it.
		uc.log.Warn("payment failure ignored, booking no longer pending",
			zap.Uint("booking_id", b.ID))
		return nil
	}

	metrics.BookingsCancelled.Inc()
	uc.slots.Invalidate(ctx, b.BarberID, b.AppointmentDate)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &b.CustomerID,
		Action:   "booking_payment_failed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return nil
}
