package waitlist

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/audit"
	"github.com/barberbook/barberbook-api/internal/metrics"
	"github.com/barberbook/barberbook-api/internal/models"
	"github.com/barberbook/barberbook-api/internal/notify"
)

type Repository interface {
	OldestUnnotified(
		ctx context.Context,
		barberID uint,
		date string,
	) (*models.WaitlistEntry, error)

	MarkNotified(
		ctx context.Context,
		entryID uint,
	) (bool, error)

	CustomerEmail(
		ctx context.Context,
		customerID uint,
	) (string, error)

	BarberName(
		ctx context.Context,
		barberID uint,
	) (string, error)
}

// Matcher reacts to a freed slot: the single oldest un-notified entry for
// that barber and date is claimed and alerted. First come, first served;
// never a broadcast.
type Matcher struct {
	repo     Repository
	notifier notify.Notifier
	audit    *audit.Dispatcher
	log      *zap.Logger
}

func NewMatcher(
	repo Repository,
	notifier notify.Notifier,
	auditDispatcher *audit.Dispatcher,
	log *zap.Logger,
) *Matcher {
	return &Matcher{
		repo:     repo,
		notifier: notifier,
		audit:    auditDispatcher,
		log:      log,
	}
}

// OnSlotFreed is best-effort end to end: every failure is logged and the
// caller's cancellation is never affected.
func (m *Matcher) OnSlotFreed(ctx context.Context, barberID uint, freedDate, freedTime string) {
	entry, err := m.repo.OldestUnnotified(ctx, barberID, freedDate)
	if err != nil {
		m.log.Warn("waitlist lookup failed",
			zap.Uint("barber_id", barberID),
			zap.String("date", freedDate),
			zap.Error(err))
		return
	}
	if entry == nil {
		return
	}

	// Claim before sending: if delivery fails the entry stays notified,
	// trading a lost alert for never double-notifying.
	marked, err := m.repo.MarkNotified(ctx, entry.ID)
	if err != nil {
		m.log.Warn("waitlist claim failed", zap.Uint("entry_id", entry.ID), zap.Error(err))
		return
	}
	if !marked {
		// A concurrent cancellation claimed the same entry.
		return
	}
	metrics.WaitlistNotifications.Inc()

	email, err := m.repo.CustomerEmail(ctx, entry.CustomerID)
	if err != nil {
		m.log.Warn("waitlist recipient lookup failed", zap.Uint("entry_id", entry.ID), zap.Error(err))
		return
	}
	barberName, err := m.repo.BarberName(ctx, barberID)
	if err != nil {
		m.log.Warn("waitlist barber lookup failed", zap.Uint("barber_id", barberID), zap.Error(err))
	}

	nctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := m.notifier.SendWaitlistAlert(nctx, entry, email, notify.SlotInfo{
		BarberName: barberName,
		Date:       freedDate,
		Time:       freedTime,
	}); err != nil {
		m.log.Warn("waitlist alert delivery failed, entry stays notified",
			zap.Uint("entry_id", entry.ID),
			zap.Error(err))
		return
	}

	m.audit.Dispatch(audit.Event{
		ActorID:  nil,
		Action:   "waitlist_notified",
		Entity:   "waitlist_entry",
		EntityID: &entry.ID,
		Metadata: map[string]any{"date": freedDate, "time": freedTime},
	})
}
