package validators

import (
	"time"

	"github.com/barberbook/barberbook-api/internal/domain/booking"
)

func IsValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func IsValidClock(s string) bool {
	_, err := booking.ParseClock(s)
	return err == nil
}

// IsGridAligned reports whether a time of day lands on the booking grid.
func IsGridAligned(clock string) bool {
	minutes, err := booking.ParseClock(clock)
	if err != nil {
		return false
	}
	return minutes%booking.GridQuantumMinutes == 0
}

// IsValidDuration checks a service duration: positive multiple of the grid
// quantum.
func IsValidDuration(minutes int) bool {
	return minutes > 0 && minutes%booking.GridQuantumMinutes == 0
}
