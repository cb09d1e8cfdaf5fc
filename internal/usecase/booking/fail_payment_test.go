package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
)

func TestFailPayment(t *testing.T) {
	ctx := context.Background()

	newUC := func(ledger *fakeLedger) *FailPayment {
		return NewFailPayment(ledger, testCache(), testDispatcher(), zap.NewNop())
	}

	t.Run("pending booking is cancelled when its payment fails", func(t *testing.T) {
		ledger := newFakeLedger()
		b := pendingBooking(ledger)
		uc := newUC(ledger)

		require.NoError(t, uc.Execute(ctx, *b.PaymentIntentRef))

		assert.Equal(t, string(domain.StatusCancelled), b.Status)
		require.NotNil(t, b.CancelledAt)
	})

	t.Run("unknown payment reference is acknowledged", func(t *testing.T) {
		uc := newUC(newFakeLedger())
		assert.NoError(t, uc.Execute(ctx, "pi_unknown"))
	})

	t.Run("redelivery against a terminal booking is a no-op", func(t *testing.T) {
		ledger := newFakeLedger()
		b := pendingBooking(ledger)
		b.Status = string(domain.StatusCancelled)
		uc := newUC(ledger)

		require.NoError(t, uc.Execute(ctx, *b.PaymentIntentRef))
		assert.Empty(t, ledger.transitions)
	})

	t.Run("stale failure never undoes a confirmation", func(t *testing.T) {
		ledger := newFakeLedger()
		b := pendingBooking(ledger)
		b.Status = string(domain.StatusConfirmed)
		uc := newUC(ledger)

		require.NoError(t, uc.Execute(ctx, *b.PaymentIntentRef))
		assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	})
}
