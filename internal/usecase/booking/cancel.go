package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/audit"
	"github.com/barberbook/barberbook-api/internal/cache"
	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/metrics"
	"github.com/barberbook/barberbook-api/internal/payments"
	"github.com/barberbook/barberbook-api/internal/timezone"
	"github.com/barberbook/barberbook-api/internal/usecase/waitlist"
)

type CancelBookingOutput struct {
	Refunded bool
}

type CancelBooking struct {
	repo    domain.Repository
	gateway payments.Gateway
	matcher *waitlist.Matcher
	slots   *cache.SlotCache
	audit   *audit.Dispatcher
	log     *zap.Logger

	loc *time.Location
	now func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	gateway payments.Gateway,
	matcher *waitlist.Matcher,
	slots *cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
	tz string,
) *CancelBooking {
	return &CancelBooking{
		repo:    repo,
		gateway: gateway,
		matcher: matcher,
		slots:   slots,
		audit:   auditDispatcher,
		log:     log,
		loc:     timezone.Location(tz),
		now:     func() time.Time { return timezone.NowIn(tz) },
	}
}

// Execute cancels the customer's booking. The refund is best-effort and
// gated by the notice window; the cancellation itself always proceeds, and
// the waitlist match runs regardless of the refund outcome.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	customerID uint,
) (*CancelBookingOutput, error) {

	b, err := uc.repo.GetBookingForCustomer(ctx, bookingID, customerID)
	if err != nil {
		// Scoped lookup: someone else's booking looks identical to a
		// missing one, existence is never leaked.
		return nil, domain.ErrBookingNotFound
	}

	if !domain.Cancellable(domain.Status(b.Status)) {
		return nil, domain.ErrNotCancellable
	}

	// --------------------------------------------------
	// 1. Refund attempt (>= 24h notice, inclusive)
	// --------------------------------------------------
	refunded := false
	if domain.RefundEligible(b, uc.now(), uc.loc) {
		refunded = uc.tryRefund(ctx, b.ID, *b.PaymentIntentRef)
	}

	// --------------------------------------------------
	// 2. Ledger transition — never blocked by the refund
	// --------------------------------------------------
	moved, err := uc.repo.Transition(
		ctx,
		b.ID,
		domain.ActiveStatuses,
		domain.StatusCancelled,
		map[string]any{"cancelled_at": uc.now()},
	)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domain.ErrStaleState
	}

	metrics.BookingsCancelled.Inc()
	uc.slots.Invalidate(ctx, b.BarberID, b.AppointmentDate)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &customerID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"refunded": refunded},
	})

	// --------------------------------------------------
	// 3. Waitlist — runs even when the refund failed
	// --------------------------------------------------
	uc.matcher.OnSlotFreed(ctx, b.BarberID, b.AppointmentDate, b.AppointmentTime)

	return &CancelBookingOutput{Refunded: refunded}, nil
}

func (uc *CancelBooking) tryRefund(ctx context.Context, bookingID uint, paymentIntentRef string) bool {
	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	chargeRef, err := uc.gateway.RetrieveChargeRef(gctx, paymentIntentRef)
	if err != nil {
		uc.log.Warn("refund skipped, charge lookup failed",
			zap.Uint("booking_id", bookingID),
			zap.Error(err))
		return false
	}

	if _, err := uc.gateway.CreateRefund(gctx, chargeRef); err != nil {
		uc.log.Warn("refund failed, cancellation proceeds without it",
			zap.Uint("booking_id", bookingID),
			zap.Error(err))
		return false
	}

	metrics.RefundsIssued.Inc()
	return true
}
