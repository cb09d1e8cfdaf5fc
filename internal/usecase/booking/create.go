package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/audit"
	"github.com/barberbook/barberbook-api/internal/cache"
	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/metrics"
	"github.com/barberbook/barberbook-api/internal/models"
	"github.com/barberbook/barberbook-api/internal/payments"
	"github.com/barberbook/barberbook-api/internal/validators"
)

const gatewayTimeout = 10 * time.Second

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uint
	BarberID   uint
	ServiceID  uint

	Date string // YYYY-MM-DD
	Time string // HH:MM
}

type CreateBookingOutput struct {
	BookingID        uint
	SessionRef       string
	PaymentIntentRef string
	CheckoutURL      string
	DepositMinor     int64
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	gateway  payments.Gateway
	slots    *cache.SlotCache
	audit    *audit.Dispatcher
	log      *zap.Logger
	currency string
}

func NewCreateBooking(
	repo domain.Repository,
	gateway payments.Gateway,
	slots *cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
	currency string,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		gateway:  gateway,
		slots:    slots,
		audit:    auditDispatcher,
		log:      log,
		currency: currency,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingOutput, error) {

	// --------------------------------------------------
	// 1. Date / time on the booking grid
	// --------------------------------------------------
	if !validators.IsValidDate(in.Date) || !validators.IsValidClock(in.Time) {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	if !validators.IsGridAligned(in.Time) {
		return nil, httperr.ErrBusiness("time_off_grid")
	}
	timeOfDay := domain.NormalizeClock(in.Time)

	// --------------------------------------------------
	// 2. Service (price snapshot source)
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.BarberID, in.ServiceID)
	if err != nil {
		return nil, domain.ErrServiceNotFound
	}
	if !svc.IsActive {
		return nil, httperr.ErrBusiness("service_inactive")
	}

	// --------------------------------------------------
	// 3. Conflict fast path — friendly error before any
	//    gateway call. The unique index is the real guard.
	// --------------------------------------------------
	existing, err := uc.repo.FindConflict(ctx, in.BarberID, in.Date, timeOfDay)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.SlotConflicts.Inc()
		return nil, domain.ErrSlotTaken
	}

	// --------------------------------------------------
	// 4. Payment session for the deposit
	// --------------------------------------------------
	deposit := domain.Deposit(svc.PriceMinor)

	gctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	session, err := uc.gateway.CreateCheckoutSession(gctx, payments.SessionRequest{
		AmountMinor: deposit,
		Currency:    uc.currency,
		Description: fmt.Sprintf("%s - Deposit", svc.Name),
		Metadata: map[string]string{
			"customer_id":      strconv.FormatUint(uint64(in.CustomerID), 10),
			"barber_id":        strconv.FormatUint(uint64(in.BarberID), 10),
			"service_id":       strconv.FormatUint(uint64(in.ServiceID), 10),
			"appointment_date": in.Date,
			"appointment_time": timeOfDay,
			"total_price":      strconv.FormatInt(svc.PriceMinor, 10),
		},
	})
	if err != nil {
		uc.log.Error("checkout session creation failed",
			zap.Uint("barber_id", in.BarberID),
			zap.String("date", in.Date),
			zap.Error(err))
		return nil, domain.ErrPaymentSetup
	}

	// --------------------------------------------------
	// 5. Pending ledger entry
	// --------------------------------------------------
	paymentRef := session.PaymentIntentRef
	b := &models.Booking{
		CustomerID:       in.CustomerID,
		BarberID:         in.BarberID,
		ServiceID:        in.ServiceID,
		AppointmentDate:  in.Date,
		AppointmentTime:  timeOfDay,
		Status:           string(domain.InitialStatus()),
		TotalPrice:       svc.PriceMinor,
		DepositPaid:      false,
		PaymentIntentRef: &paymentRef,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			// Lost the race after session creation. The session is
			// abandoned and expires gateway-side, uncaptured.
			metrics.SlotConflicts.Inc()
			return nil, domain.ErrSlotTaken
		}

		uc.log.Error("booking insert failed after session creation, abandoning payment session",
			zap.String("session_ref", session.SessionRef),
			zap.Error(err))
		return nil, err
	}

	uc.slots.Invalidate(ctx, in.BarberID, in.Date)
	metrics.BookingsCreated.Inc()

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.CustomerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"date": in.Date, "time": timeOfDay, "deposit": deposit,
		},
	})

	return &CreateBookingOutput{
		BookingID:        b.ID,
		SessionRef:       session.SessionRef,
		PaymentIntentRef: session.PaymentIntentRef,
		CheckoutURL:      session.CheckoutURL,
		DepositMinor:     deposit,
	}, nil
}
