package waitlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/audit"
	"github.com/barberbook/barberbook-api/internal/models"
	"github.com/barberbook/barberbook-api/internal/notify"
)

var errBoom = errors.New("boom")

type stubRepo struct {
	entries []*models.WaitlistEntry

	lookupErr error
	markErr   error

	markCalls int
}

func (s *stubRepo) OldestUnnotified(ctx context.Context, barberID uint, date string) (*models.WaitlistEntry, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	var oldest *models.WaitlistEntry
	for _, e := range s.entries {
		if e.BarberID != barberID || e.PreferredDate != date || e.Notified {
			continue
		}
		if oldest == nil || e.ID < oldest.ID {
			oldest = e
		}
	}
	return oldest, nil
}

func (s *stubRepo) MarkNotified(ctx context.Context, entryID uint) (bool, error) {
	s.markCalls++
	if s.markErr != nil {
		return false, s.markErr
	}
	for _, e := range s.entries {
		if e.ID == entryID && !e.Notified {
			e.Notified = true
			return true, nil
		}
	}
	return false, nil
}

func (s *stubRepo) CustomerEmail(ctx context.Context, customerID uint) (string, error) {
	return "waiting@example.com", nil
}

func (s *stubRepo) BarberName(ctx context.Context, barberID uint) (string, error) {
	return "Alex Moraes", nil
}

type stubNotifier struct {
	alerts  []uint // entry ids, in delivery order
	sendErr error
}

func (n *stubNotifier) SendReminder(ctx context.Context, b *models.Booking, recipientEmail string) error {
	return nil
}

func (n *stubNotifier) SendWaitlistAlert(ctx context.Context, entry *models.WaitlistEntry, recipientEmail string, slot notify.SlotInfo) error {
	n.alerts = append(n.alerts, entry.ID)
	return n.sendErr
}

func newMatcher(repo *stubRepo, notifier *stubNotifier) *Matcher {
	return NewMatcher(repo, notifier, audit.NewDispatcher(audit.New(nil), zap.NewNop()), zap.NewNop())
}

func TestOnSlotFreed(t *testing.T) {
	ctx := context.Background()

	t.Run("only the oldest matching entry is alerted", func(t *testing.T) {
		repo := &stubRepo{entries: []*models.WaitlistEntry{
			{ID: 2, CustomerID: 20, BarberID: 3, PreferredDate: "2026-09-10"},
			{ID: 1, CustomerID: 10, BarberID: 3, PreferredDate: "2026-09-10"},
			{ID: 3, CustomerID: 30, BarberID: 3, PreferredDate: "2026-09-10"},
		}}
		notifier := &stubNotifier{}

		newMatcher(repo, notifier).OnSlotFreed(ctx, 3, "2026-09-10", "10:00:00")

		assert.Equal(t, []uint{1}, notifier.alerts)
		assert.True(t, repo.entries[1].Notified)
		assert.False(t, repo.entries[0].Notified)
		assert.False(t, repo.entries[2].Notified)
	})

	t.Run("other barbers and dates never match", func(t *testing.T) {
		repo := &stubRepo{entries: []*models.WaitlistEntry{
			{ID: 1, CustomerID: 10, BarberID: 9, PreferredDate: "2026-09-10"},
			{ID: 2, CustomerID: 20, BarberID: 3, PreferredDate: "2026-09-12"},
		}}
		notifier := &stubNotifier{}

		newMatcher(repo, notifier).OnSlotFreed(ctx, 3, "2026-09-10", "10:00:00")

		assert.Empty(t, notifier.alerts)
		assert.Zero(t, repo.markCalls)
	})

	t.Run("an entry is never alerted twice", func(t *testing.T) {
		repo := &stubRepo{entries: []*models.WaitlistEntry{
			{ID: 1, CustomerID: 10, BarberID: 3, PreferredDate: "2026-09-10"},
		}}
		notifier := &stubNotifier{}
		m := newMatcher(repo, notifier)

		m.OnSlotFreed(ctx, 3, "2026-09-10", "10:00:00")
		m.OnSlotFreed(ctx, 3, "2026-09-10", "11:00:00")

		assert.Equal(t, []uint{1}, notifier.alerts)
	})

	t.Run("delivery failure still consumes the entry", func(t *testing.T) {
		repo := &stubRepo{entries: []*models.WaitlistEntry{
			{ID: 1, CustomerID: 10, BarberID: 3, PreferredDate: "2026-09-10"},
		}}
		notifier := &stubNotifier{sendErr: errBoom}
		m := newMatcher(repo, notifier)

		m.OnSlotFreed(ctx, 3, "2026-09-10", "10:00:00")

		// A lost alert is the accepted cost of never double-notifying.
		assert.True(t, repo.entries[0].Notified)

		m.OnSlotFreed(ctx, 3, "2026-09-10", "11:00:00")
		assert.Equal(t, []uint{1}, notifier.alerts)
	})

	t.Run("concurrent claim loses quietly", func(t *testing.T) {
		repo := &stubRepo{entries: []*models.WaitlistEntry{
			{ID: 1, CustomerID: 10, BarberID: 3, PreferredDate: "2026-09-10", Notified: false},
		}}
		// The entry is claimed between lookup and mark.
		repo.markErr = nil
		notifier := &stubNotifier{}
		m := newMatcher(repo, notifier)

		repo.entries[0].Notified = true
		assert.NotPanics(t, func() {
			m.OnSlotFreed(ctx, 3, "2026-09-10", "10:00:00")
		})
		assert.Empty(t, notifier.alerts)
	})

	t.Run("lookup failure is swallowed", func(t *testing.T) {
		repo := &stubRepo{lookupErr: errBoom}
		notifier := &stubNotifier{}

		assert.NotPanics(t, func() {
			newMatcher(repo, notifier).OnSlotFreed(ctx, 3, "2026-09-10", "10:00:00")
		})
		assert.Empty(t, notifier.alerts)
	})
}
