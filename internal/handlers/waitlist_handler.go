package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/httpresp"
	"github.com/barberbook/barberbook-api/internal/middleware"
	"github.com/barberbook/barberbook-api/internal/models"
	"github.com/barberbook/barberbook-api/internal/validators"
)

type WaitlistHandler struct {
	db *gorm.DB
}

func NewWaitlistHandler(db *gorm.DB) *WaitlistHandler {
	return &WaitlistHandler{db: db}
}

type joinWaitlistRequest struct {
	BarberID           uint   `json:"barber_id" binding:"required"`
	PreferredDate      string `json:"preferred_date" binding:"required"`
	PreferredTimeRange string `json:"preferred_time_range"`
}

func (h *WaitlistHandler) Join(c *gin.Context) {
	var req joinWaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}
	if !validators.IsValidDate(req.PreferredDate) {
		httperr.BadRequest(c, "invalid_date", "preferred_date must be YYYY-MM-DD.")
		return
	}

	customerID := c.MustGet(middleware.ContextUserID).(uint)

	entry := models.WaitlistEntry{
		CustomerID:         customerID,
		BarberID:           req.BarberID,
		PreferredDate:      req.PreferredDate,
		PreferredTimeRange: req.PreferredTimeRange,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&entry).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not join the waitlist.")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *WaitlistHandler) ListMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var entries []models.WaitlistEntry
	if err := h.db.WithContext(c.Request.Context()).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list waitlist entries.")
		return
	}
	httpresp.List(c, entries)
}
