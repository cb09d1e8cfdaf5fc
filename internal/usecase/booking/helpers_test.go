package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/barberbook/barberbook-api/internal/audit"
	"github.com/barberbook/barberbook-api/internal/cache"
	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/models"
	"github.com/barberbook/barberbook-api/internal/notify"
	"github.com/barberbook/barberbook-api/internal/payments"
)

// ======================================================
// Ledger fake
// ======================================================

type transitionCall struct {
	bookingID uint
	from      []domain.Status
	to        domain.Status
	updates   map[string]any
}

type fakeLedger struct {
	service *models.Service
	rule    *models.AvailabilityRule
	user    *models.User

	bookings map[uint]*models.Booking
	nextID   uint

	createErr      error
	transitionDeny bool

	transitions []transitionCall
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		service: &models.Service{
			ID:              7,
			BarberID:        3,
			Name:            "Classic Cut",
			PriceMinor:      4000,
			DurationMinutes: 30,
			IsActive:        true,
		},
		rule: &models.AvailabilityRule{
			BarberID:    3,
			DayOfWeek:   4,
			StartTime:   "09:00:00",
			EndTime:     "17:00:00",
			IsAvailable: true,
		},
		user:     &models.User{ID: 11, Email: "customer@example.com", FullName: "Sam Field"},
		bookings: map[uint]*models.Booking{},
	}
}

func (f *fakeLedger) seedBooking(b *models.Booking) *models.Booking {
	f.nextID++
	b.ID = f.nextID
	f.bookings[b.ID] = b
	return b
}

func (f *fakeLedger) GetService(ctx context.Context, barberID, serviceID uint) (*models.Service, error) {
	if f.service == nil || f.service.BarberID != barberID || f.service.ID != serviceID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.service, nil
}

func (f *fakeLedger) GetAvailabilityRule(ctx context.Context, barberID uint, dayOfWeek int) (*models.AvailabilityRule, error) {
	if f.rule == nil || f.rule.BarberID != barberID || f.rule.DayOfWeek != dayOfWeek {
		return nil, gorm.ErrRecordNotFound
	}
	return f.rule, nil
}

func (f *fakeLedger) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

func (f *fakeLedger) CreateBooking(ctx context.Context, b *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, ex := range f.bookings {
		if ex.BarberID == b.BarberID &&
			ex.AppointmentDate == b.AppointmentDate &&
			ex.AppointmentTime == b.AppointmentTime &&
			!domain.Status(ex.Status).Terminal() {
			return domain.ErrSlotTaken
		}
	}
	f.seedBooking(b)
	return nil
}

func (f *fakeLedger) FindConflict(ctx context.Context, barberID uint, date, timeOfDay string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.BarberID == barberID &&
			b.AppointmentDate == date &&
			b.AppointmentTime == timeOfDay &&
			!domain.Status(b.Status).Terminal() {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) ListBookedTimes(ctx context.Context, barberID uint, date string) ([]string, error) {
	var times []string
	for _, b := range f.bookings {
		if b.BarberID == barberID && b.AppointmentDate == date && !domain.Status(b.Status).Terminal() {
			times = append(times, b.AppointmentTime)
		}
	}
	return times, nil
}

func (f *fakeLedger) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeLedger) GetBookingForCustomer(ctx context.Context, id, customerID uint) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || b.CustomerID != customerID {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeLedger) FindByPaymentRef(ctx context.Context, ref string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.PaymentIntentRef != nil && *b.PaymentIntentRef == ref {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) ListBookingsForCustomer(ctx context.Context, customerID uint) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeLedger) ListBookingsForBarberDate(ctx context.Context, barberID uint, date string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeLedger) Transition(
	ctx context.Context,
	bookingID uint,
	from []domain.Status,
	to domain.Status,
	updates map[string]any,
) (bool, error) {
	f.transitions = append(f.transitions, transitionCall{bookingID, from, to, updates})

	if f.transitionDeny {
		return false, nil
	}

	b, ok := f.bookings[bookingID]
	if !ok {
		return false, nil
	}
	match := false
	for _, s := range from {
		if domain.Status(b.Status) == s {
			match = true
			break
		}
	}
	if !match {
		return false, nil
	}

	b.Status = string(to)
	if v, ok := updates["deposit_paid"].(bool); ok {
		b.DepositPaid = v
	}
	if v, ok := updates["payment_intent_ref"].(string); ok {
		ref := v
		b.PaymentIntentRef = &ref
	}
	if v, ok := updates["cancelled_at"].(time.Time); ok {
		at := v
		b.CancelledAt = &at
	}
	if v, ok := updates["completed_at"].(time.Time); ok {
		at := v
		b.CompletedAt = &at
	}
	return true, nil
}

var _ domain.Repository = (*fakeLedger)(nil)

// ======================================================
// Gateway fake
// ======================================================

type fakeGateway struct {
	sessionErr error
	chargeErr  error
	refundErr  error

	sessionCalls int
	refundCalls  int
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, req payments.SessionRequest) (*payments.Session, error) {
	g.sessionCalls++
	if g.sessionErr != nil {
		return nil, g.sessionErr
	}
	return &payments.Session{
		SessionRef:       "cs_test_1",
		PaymentIntentRef: "pi_test_1",
		CheckoutURL:      "https://checkout.test/cs_test_1",
	}, nil
}

func (g *fakeGateway) RetrieveChargeRef(ctx context.Context, paymentIntentRef string) (string, error) {
	if g.chargeErr != nil {
		return "", g.chargeErr
	}
	return "ch_test_1", nil
}

func (g *fakeGateway) CreateRefund(ctx context.Context, chargeRef string) (string, error) {
	g.refundCalls++
	if g.refundErr != nil {
		return "", g.refundErr
	}
	return "re_test_1", nil
}

var _ payments.Gateway = (*fakeGateway)(nil)

// ======================================================
// Notifier fake
// ======================================================

type fakeNotifier struct {
	reminderCalls int
	alertCalls    int
	sendErr       error
}

func (n *fakeNotifier) SendReminder(ctx context.Context, b *models.Booking, recipientEmail string) error {
	n.reminderCalls++
	return n.sendErr
}

func (n *fakeNotifier) SendWaitlistAlert(ctx context.Context, entry *models.WaitlistEntry, recipientEmail string, slot notify.SlotInfo) error {
	n.alertCalls++
	return n.sendErr
}

var _ notify.Notifier = (*fakeNotifier)(nil)

// ======================================================
// Waitlist repository fake (for the cancel path)
// ======================================================

type fakeWaitlistRepo struct {
	entry       *models.WaitlistEntry
	lookupCalls int
	markCalls   int
}

func (f *fakeWaitlistRepo) OldestUnnotified(ctx context.Context, barberID uint, date string) (*models.WaitlistEntry, error) {
	f.lookupCalls++
	if f.entry == nil || f.entry.Notified {
		return nil, nil
	}
	return f.entry, nil
}

func (f *fakeWaitlistRepo) MarkNotified(ctx context.Context, entryID uint) (bool, error) {
	f.markCalls++
	if f.entry == nil || f.entry.Notified {
		return false, nil
	}
	f.entry.Notified = true
	return true, nil
}

func (f *fakeWaitlistRepo) CustomerEmail(ctx context.Context, customerID uint) (string, error) {
	return "waiting@example.com", nil
}

func (f *fakeWaitlistRepo) BarberName(ctx context.Context, barberID uint) (string, error) {
	return "Alex Moraes", nil
}

// ======================================================
// Shared wiring
// ======================================================

var errBoom = errors.New("boom")

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zap.NewNop())
}

func testCache() *cache.SlotCache {
	return cache.NewSlotCache(nil, zap.NewNop())
}
