package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/barberbook/barberbook-api/internal/models"
	"github.com/barberbook/barberbook-api/internal/usecase/waitlist"
)

type WaitlistGormRepository struct {
	db *gorm.DB
}

func NewWaitlistGormRepository(db *gorm.DB) *WaitlistGormRepository {
	return &WaitlistGormRepository{db: db}
}

func (r *WaitlistGormRepository) OldestUnnotified(
	ctx context.Context,
	barberID uint,
	date string,
) (*models.WaitlistEntry, error) {

	var entry models.WaitlistEntry
	err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND preferred_date = ? AND notified = false",
			barberID, date,
		).
		Order("created_at ASC").
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarkNotified flips the flag once, false -> true. Returns false when the
// entry was already claimed by a concurrent matcher run.
func (r *WaitlistGormRepository) MarkNotified(
	ctx context.Context,
	entryID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.WaitlistEntry{}).
		Where("id = ? AND notified = false", entryID).
		Update("notified", true)

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *WaitlistGormRepository) CustomerEmail(
	ctx context.Context,
	customerID uint,
) (string, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, customerID).Error; err != nil {
		return "", err
	}
	return u.Email, nil
}

func (r *WaitlistGormRepository) BarberName(
	ctx context.Context,
	barberID uint,
) (string, error) {

	var profile models.BarberProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&profile, barberID).Error; err != nil {
		return "", err
	}
	return profile.User.FullName, nil
}

// Compile-time check
var _ waitlist.Repository = (*WaitlistGormRepository)(nil)
