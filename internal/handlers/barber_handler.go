package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/httpresp"
	"github.com/barberbook/barberbook-api/internal/models"
)

// BarberHandler serves the public browsing surface: the barber directory
// and a single barber's profile with active services and weekly hours.
type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

func (h *BarberHandler) List(c *gin.Context) {
	var profiles []models.BarberProfile
	if err := h.db.WithContext(c.Request.Context()).
		Preload("User").
		Order("rating DESC, total_reviews DESC").
		Find(&profiles).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list barbers.")
		return
	}
	httpresp.List(c, profiles)
}

type barberDetailResponse struct {
	Profile      models.BarberProfile      `json:"profile"`
	Services     []models.Service          `json:"services"`
	Availability []models.AvailabilityRule `json:"availability"`
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Barber id must be numeric.")
		return
	}

	ctx := c.Request.Context()

	var profile models.BarberProfile
	if err := h.db.WithContext(ctx).Preload("User").First(&profile, uint(id)).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	var services []models.Service
	if err := h.db.WithContext(ctx).
		Where("barber_id = ? AND is_active = ?", profile.ID, true).
		Order("price_minor ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not load services.")
		return
	}

	var rules []models.AvailabilityRule
	if err := h.db.WithContext(ctx).
		Where("barber_id = ?", profile.ID).
		Order("day_of_week ASC").
		Find(&rules).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not load availability.")
		return
	}

	httpresp.OK(c, barberDetailResponse{
		Profile:      profile,
		Services:     services,
		Availability: rules,
	})
}
