package review

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/audit"
	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/models"
)

type Repository interface {
	GetCompletedBookingForCustomer(
		ctx context.Context,
		bookingID uint,
		customerID uint,
	) (*models.Booking, error)

	HasReview(
		ctx context.Context,
		bookingID uint,
	) (bool, error)

	CreateReview(
		ctx context.Context,
		rv *models.Review,
	) error

	RecalculateBarberRating(
		ctx context.Context,
		barberID uint,
	) error
}

type CreateReviewInput struct {
	BookingID  uint
	CustomerID uint
	Rating     int
	Comment    string
}

type CreateReview struct {
	repo  Repository
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewCreateReview(
	repo Repository,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
) *CreateReview {
	return &CreateReview{
		repo:  repo,
		audit: auditDispatcher,
		log:   log,
	}
}

func (uc *CreateReview) Execute(
	ctx context.Context,
	in CreateReviewInput,
) (*models.Review, error) {

	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrBusiness("invalid_rating")
	}

	// Reviews exist only for the customer's own completed bookings.
	b, err := uc.repo.GetCompletedBookingForCustomer(ctx, in.BookingID, in.CustomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_completed")
	}

	exists, err := uc.repo.HasReview(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrBusiness("already_reviewed")
	}

	rv := &models.Review{
		BookingID:  in.BookingID,
		CustomerID: in.CustomerID,
		BarberID:   b.BarberID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	}
	if err := uc.repo.CreateReview(ctx, rv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CustomerID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &rv.ID,
	})

	// Fire-and-forget: the stored aggregate catches up eventually even if
	// this attempt fails.
	barberID := b.BarberID
	go func() {
		rctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.repo.RecalculateBarberRating(rctx, barberID); err != nil {
			uc.log.Warn("rating recalculation failed",
				zap.Uint("barber_id", barberID),
				zap.Error(err))
		}
	}()

	return rv, nil
}
