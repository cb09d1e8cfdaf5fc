package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/audit"
	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/metrics"
	"github.com/barberbook/barberbook-api/internal/models"
	"github.com/barberbook/barberbook-api/internal/timezone"
)

type CompleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCompleteBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: auditDispatcher,
		log:   log,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	bookingID uint,
	barberID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	if b.BarberID != barberID {
		return nil, domain.ErrNotAuthorized
	}

	if err := domain.CanTransition(domain.Status(b.Status), domain.StatusCompleted); err != nil {
		return nil, err
	}

	now := timezone.Now()
	moved, err := uc.repo.Transition(
		ctx,
		b.ID,
		domain.ActiveStatuses,
		domain.StatusCompleted,
		map[string]any{"completed_at": now},
	)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domain.ErrStaleState
	}

	b.Status = string(domain.StatusCompleted)
	b.CompletedAt = &now

	metrics.BookingsCompleted.Inc()
	uc.audit.Dispatch(audit.Event{
		ActorID:  &barberID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
