package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barberbook/barberbook-api/internal/models"
)

func TestDeposit(t *testing.T) {
	assert.Equal(t, int64(2000), Deposit(4000))
	assert.Equal(t, int64(2000), Deposit(3999)) // 1999.5 rounds up
	assert.Equal(t, int64(1999), Deposit(3998))
	assert.Equal(t, int64(0), Deposit(0))
}

func TestRefundEligible(t *testing.T) {
	ref := "pi_123"
	paid := func() *models.Booking {
		return &models.Booking{
			AppointmentDate:  "2026-09-10",
			AppointmentTime:  "10:00:00",
			DepositPaid:      true,
			PaymentIntentRef: &ref,
		}
	}
	appointment := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

	t.Run("exactly the notice window is still eligible", func(t *testing.T) {
		now := appointment.Add(-24 * time.Hour)
		assert.True(t, RefundEligible(paid(), now, time.UTC))
	})

	t.Run("one minute inside the window forfeits", func(t *testing.T) {
		now := appointment.Add(-24*time.Hour + time.Minute)
		assert.False(t, RefundEligible(paid(), now, time.UTC))
	})

	t.Run("well outside the window", func(t *testing.T) {
		now := appointment.Add(-72 * time.Hour)
		assert.True(t, RefundEligible(paid(), now, time.UTC))
	})

	t.Run("unpaid deposit never refunds", func(t *testing.T) {
		b := paid()
		b.DepositPaid = false
		assert.False(t, RefundEligible(b, appointment.Add(-72*time.Hour), time.UTC))
	})

	t.Run("missing payment reference never refunds", func(t *testing.T) {
		b := paid()
		b.PaymentIntentRef = nil
		assert.False(t, RefundEligible(b, appointment.Add(-72*time.Hour), time.UTC))

		empty := ""
		b.PaymentIntentRef = &empty
		assert.False(t, RefundEligible(b, appointment.Add(-72*time.Hour), time.UTC))
	})
}

func TestCancelAction(t *testing.T) {
	now := time.Now()

	b := &models.Booking{Status: string(StatusConfirmed)}
	require.NoError(t, Cancel(b, now))
	assert.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)
	assert.Equal(t, now, *b.CancelledAt)

	done := &models.Booking{Status: string(StatusCompleted)}
	assert.ErrorIs(t, Cancel(done, now), ErrNotCancellable)
}

func TestCompleteAction(t *testing.T) {
	now := time.Now()

	b := &models.Booking{Status: string(StatusConfirmed)}
	require.NoError(t, Complete(b, now))
	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)

	cancelled := &models.Booking{Status: string(StatusCancelled)}
	assert.ErrorIs(t, Complete(cancelled, now), ErrInvalidTransition)
}
