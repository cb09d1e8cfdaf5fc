package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/models"
)

func pendingBooking(ledger *fakeLedger) *models.Booking {
	ref := "cs_test_1"
	return ledger.seedBooking(&models.Booking{
		CustomerID:       11,
		BarberID:         3,
		ServiceID:        7,
		AppointmentDate:  "2026-09-10",
		AppointmentTime:  "10:00:00",
		Status:           string(domain.StatusPending),
		TotalPrice:       4000,
		PaymentIntentRef: &ref,
	})
}

func confirmInput() ConfirmPaymentInput {
	return ConfirmPaymentInput{
		CustomerID:       11,
		BarberID:         3,
		Date:             "2026-09-10",
		Time:             "10:00",
		PaymentIntentRef: "pi_final_1",
	}
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("pending booking becomes confirmed with the deposit marked paid", func(t *testing.T) {
		ledger := newFakeLedger()
		b := pendingBooking(ledger)
		notifier := &fakeNotifier{}
		uc := NewConfirmPayment(ledger, notifier, testDispatcher(), zap.NewNop())

		require.NoError(t, uc.Execute(ctx, confirmInput()))

		assert.Equal(t, string(domain.StatusConfirmed), b.Status)
		assert.True(t, b.DepositPaid)
		require.NotNil(t, b.PaymentIntentRef)
		assert.Equal(t, "pi_final_1", *b.PaymentIntentRef)
		assert.Equal(t, 1, notifier.reminderCalls)
	})

	t.Run("replay on an already confirmed booking is a silent no-op", func(t *testing.T) {
		ledger := newFakeLedger()
		b := pendingBooking(ledger)
		b.Status = string(domain.StatusConfirmed)
		uc := NewConfirmPayment(ledger, &fakeNotifier{}, testDispatcher(), zap.NewNop())

		require.NoError(t, uc.Execute(ctx, confirmInput()))
		assert.Empty(t, ledger.transitions)
	})

	t.Run("callback matching no active booking is acknowledged", func(t *testing.T) {
		ledger := newFakeLedger()
		uc := NewConfirmPayment(ledger, &fakeNotifier{}, testDispatcher(), zap.NewNop())

		assert.NoError(t, uc.Execute(ctx, confirmInput()))
	})

	t.Run("customer mismatch is acknowledged without touching the booking", func(t *testing.T) {
		ledger := newFakeLedger()
		b := pendingBooking(ledger)
		in := confirmInput()
		in.CustomerID = 999
		uc := NewConfirmPayment(ledger, &fakeNotifier{}, testDispatcher(), zap.NewNop())

		require.NoError(t, uc.Execute(ctx, in))
		assert.Equal(t, string(domain.StatusPending), b.Status)
	})

	t.Run("reminder failure never fails the confirmation", func(t *testing.T) {
		ledger := newFakeLedger()
		b := pendingBooking(ledger)
		uc := NewConfirmPayment(ledger, &fakeNotifier{sendErr: errBoom}, testDispatcher(), zap.NewNop())

		require.NoError(t, uc.Execute(ctx, confirmInput()))
		assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	})
}
