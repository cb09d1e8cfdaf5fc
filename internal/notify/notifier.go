package notify

import (
	"context"

	"github.com/barberbook/barberbook-api/internal/models"
)

// SlotInfo describes a freed slot for a waitlist alert.
type SlotInfo struct {
	BarberName string
	Date       string
	Time       string
}

// Notifier delivers customer-facing email. Every call is best-effort:
// callers log failures and move on, they never fail the booking lifecycle.
type Notifier interface {
	// SendReminder schedules/sends the 24h-before appointment reminder.
	SendReminder(ctx context.Context, b *models.Booking, recipientEmail string) error

	// SendWaitlistAlert tells a waiting customer a slot opened up.
	SendWaitlistAlert(ctx context.Context, entry *models.WaitlistEntry, recipientEmail string, slot SlotInfo) error
}
