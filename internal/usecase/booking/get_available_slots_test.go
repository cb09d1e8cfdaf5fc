package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/models"
)

func TestGetAvailableSlots(t *testing.T) {
	ctx := context.Background()

	newUC := func(ledger *fakeLedger) *GetAvailableSlots {
		return NewGetAvailableSlots(ledger, testCache(), zap.NewNop())
	}

	// 2026-09-10 is a Thursday (weekday 4), matching the seeded rule.

	t.Run("full open day on a 30 minute service", func(t *testing.T) {
		uc := newUC(newFakeLedger())

		slots, err := uc.Execute(ctx, 3, 7, "2026-09-10")
		require.NoError(t, err)

		require.Len(t, slots, 16)
		assert.Equal(t, "09:00", slots[0].Time)
		assert.Equal(t, "16:30", slots[15].Time)
		for _, s := range slots {
			assert.True(t, s.Available)
		}
	})

	t.Run("booked times are flagged, not removed", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.seedBooking(&models.Booking{
			BarberID:        3,
			AppointmentDate: "2026-09-10",
			AppointmentTime: "10:00:00",
			Status:          string(domain.StatusConfirmed),
		})
		uc := newUC(ledger)

		slots, err := uc.Execute(ctx, 3, 7, "2026-09-10")
		require.NoError(t, err)
		require.Len(t, slots, 16)

		taken := 0
		for _, s := range slots {
			if !s.Available {
				taken++
				assert.Equal(t, "10:00", s.Time)
			}
		}
		assert.Equal(t, 1, taken)
	})

	t.Run("cancelled bookings free their slot", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.seedBooking(&models.Booking{
			BarberID:        3,
			AppointmentDate: "2026-09-10",
			AppointmentTime: "10:00:00",
			Status:          string(domain.StatusCancelled),
		})
		uc := newUC(ledger)

		slots, err := uc.Execute(ctx, 3, 7, "2026-09-10")
		require.NoError(t, err)
		for _, s := range slots {
			assert.True(t, s.Available)
		}
	})

	t.Run("day without a rule yields an empty grid", func(t *testing.T) {
		uc := newUC(newFakeLedger())

		// 2026-09-11 is a Friday; only Thursday is seeded.
		slots, err := uc.Execute(ctx, 3, 7, "2026-09-11")
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("closed day yields an empty grid", func(t *testing.T) {
		ledger := newFakeLedger()
		ledger.rule.IsAvailable = false
		uc := newUC(ledger)

		slots, err := uc.Execute(ctx, 3, 7, "2026-09-10")
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("malformed date", func(t *testing.T) {
		uc := newUC(newFakeLedger())

		_, err := uc.Execute(ctx, 3, 7, "10-09-2026")
		var be httperr.BusinessError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, "invalid_date", be.Code)
	})

	t.Run("unknown service", func(t *testing.T) {
		uc := newUC(newFakeLedger())

		_, err := uc.Execute(ctx, 3, 999, "2026-09-10")
		assert.ErrorIs(t, err, domain.ErrServiceNotFound)
	})
}
