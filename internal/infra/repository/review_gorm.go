package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/models"
	"github.com/barberbook/barberbook-api/internal/usecase/review"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) GetCompletedBookingForCustomer(
	ctx context.Context,
	bookingID uint,
	customerID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"id = ? AND customer_id = ? AND status = ?",
			bookingID, customerID, string(domain.StatusCompleted),
		).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ReviewGormRepository) HasReview(
	ctx context.Context,
	bookingID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewGormRepository) CreateReview(
	ctx context.Context,
	rv *models.Review,
) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

// RecalculateBarberRating refreshes the profile's stored aggregate from the
// review rows. Invoked best-effort after each new review.
func (r *ReviewGormRepository) RecalculateBarberRating(
	ctx context.Context,
	barberID uint,
) error {

	return r.db.WithContext(ctx).Exec(`
        UPDATE barber_profiles
        SET rating = COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE barber_id = ?), 0),
            total_reviews = (SELECT COUNT(*) FROM reviews WHERE barber_id = ?)
        WHERE id = ?
    `, barberID, barberID, barberID).Error
}

// Compile-time check
var _ review.Repository = (*ReviewGormRepository)(nil)
