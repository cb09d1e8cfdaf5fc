package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/cache"
	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/validators"
)

type GetAvailableSlots struct {
	repo  domain.Repository
	slots *cache.SlotCache
	log   *zap.Logger
}

func NewGetAvailableSlots(
	repo domain.Repository,
	slots *cache.SlotCache,
	log *zap.Logger,
) *GetAvailableSlots {
	return &GetAvailableSlots{
		repo:  repo,
		slots: slots,
		log:   log,
	}
}

// Execute returns the day's grid for a barber and service, chronologically
// ascending, each slot flagged free or taken. A day without an availability
// rule, or with the toggle off, yields an empty sequence.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	barberID uint,
	serviceID uint,
	date string,
) ([]domain.Slot, error) {

	if !validators.IsValidDate(date) {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	svc, err := uc.repo.GetService(ctx, barberID, serviceID)
	if err != nil {
		return nil, domain.ErrServiceNotFound
	}

	if cached, ok := uc.slots.Get(ctx, barberID, serviceID, date); ok {
		return cached, nil
	}

	day, _ := time.Parse("2006-01-02", date)
	weekday := int(day.Weekday())

	rule, err := uc.repo.GetAvailabilityRule(ctx, barberID, weekday)
	if err != nil || !rule.IsAvailable {
		return []domain.Slot{}, nil
	}

	times := domain.GenerateSlots(rule.StartTime, rule.EndTime, svc.DurationMinutes)
	if len(times) == 0 {
		return []domain.Slot{}, nil
	}

	bookedTimes, err := uc.repo.ListBookedTimes(ctx, barberID, date)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[domain.NormalizeClock(t)] = true
	}

	out := make([]domain.Slot, 0, len(times))
	for _, t := range times {
		out = append(out, domain.Slot{
			Time:      t,
			Available: !booked[domain.NormalizeClock(t)],
		})
	}

	uc.slots.Set(ctx, barberID, serviceID, date, out)
	return out, nil
}
