package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/middleware"
	"github.com/barberbook/barberbook-api/internal/models"
)

// barberProfileID resolves the authenticated user's barber profile.
func barberProfileID(c *gin.Context, db *gorm.DB) (uint, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var profile models.BarberProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		httperr.Forbidden(c, "not_a_barber", "No barber profile for this account.")
		return 0, false
	}
	return profile.ID, true
}

// writeBookingError maps lifecycle errors to stable HTTP codes.
func writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSlotTaken):
		httperr.Conflict(c, "slot_taken", "This time slot is already booked.")
	case errors.Is(err, domain.ErrNotCancellable):
		httperr.BadRequest(c, "not_cancellable", "Booking cannot be cancelled.")
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrStaleState):
		httperr.BadRequest(c, "booking_not_modifiable", "This booking can no longer be modified.")
	case errors.Is(err, domain.ErrNotAuthorized):
		httperr.Forbidden(c, "not_authorized", "You do not have access to this booking.")
	case errors.Is(err, domain.ErrBookingNotFound):
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
	case errors.Is(err, domain.ErrServiceNotFound):
		httperr.NotFound(c, "service_not_found", "Service not found.")
	case errors.Is(err, domain.ErrPaymentSetup):
		httperr.Write(c, http.StatusBadGateway, "payment_setup_failed", "Could not set up the deposit payment.")
	default:
		var be httperr.BusinessError
		if errors.As(err, &be) {
			httperr.BadRequest(c, be.Code, "Request rejected.")
			return
		}
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}
