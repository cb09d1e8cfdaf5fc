package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/httpresp"
	"github.com/barberbook/barberbook-api/internal/models"
	"github.com/barberbook/barberbook-api/internal/validators"
)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

type availabilityDay struct {
	DayOfWeek   int    `json:"day_of_week"`
	IsAvailable bool   `json:"is_available"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type availabilityUpdateRequest struct {
	Days []availabilityDay `json:"days" binding:"required"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	barberID, ok := barberProfileID(c, h.db)
	if !ok {
		return
	}

	var rules []models.AvailabilityRule
	if err := h.db.WithContext(c.Request.Context()).
		Where("barber_id = ?", barberID).
		Order("day_of_week ASC").
		Find(&rules).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not load availability.")
		return
	}
	httpresp.List(c, rules)
}

// Update replaces the weekly schedule. One row per weekday, upserted on
// (barber_id, day_of_week) so repeated saves stay idempotent.
func (h *AvailabilityHandler) Update(c *gin.Context) {
	barberID, ok := barberProfileID(c, h.db)
	if !ok {
		return
	}

	var req availabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	rules := make([]models.AvailabilityRule, 0, len(req.Days))
	for _, d := range req.Days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			httperr.BadRequest(c, "invalid_day", "day_of_week must be 0 (Sunday) through 6 (Saturday).")
			return
		}
		if d.IsAvailable {
			if !validators.IsValidClock(d.StartTime) || !validators.IsValidClock(d.EndTime) {
				httperr.BadRequest(c, "invalid_time", "start_time and end_time must be HH:MM clocks.")
				return
			}
			start, _ := domain.ParseClock(d.StartTime)
			end, _ := domain.ParseClock(d.EndTime)
			if start >= end {
				httperr.BadRequest(c, "invalid_window", "start_time must be before end_time.")
				return
			}
		}
		rules = append(rules, models.AvailabilityRule{
			BarberID:    barberID,
			DayOfWeek:   d.DayOfWeek,
			StartTime:   domain.NormalizeClock(d.StartTime),
			EndTime:     domain.NormalizeClock(d.EndTime),
			IsAvailable: d.IsAvailable,
		})
	}
	if len(rules) == 0 {
		httperr.BadRequest(c, "empty_schedule", "At least one day is required.")
		return
	}

	err := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "barber_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"start_time", "end_time", "is_available", "updated_at",
			}),
		}).
		Create(&rules).Error
	if err != nil {
		httperr.Internal(c, "update_failed", "Could not save availability.")
		return
	}

	httpresp.List(c, rules)
}
