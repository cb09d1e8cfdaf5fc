package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/httpresp"
	"github.com/barberbook/barberbook-api/internal/models"
	"github.com/barberbook/barberbook-api/internal/validators"
)

// ServiceHandler is the barber-side catalog CRUD.
type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type serviceRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	PriceMinor      int64  `json:"price_minor" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	IsActive        *bool  `json:"is_active"`
}

func (r *serviceRequest) validate(c *gin.Context) bool {
	if r.PriceMinor <= 0 {
		httperr.BadRequest(c, "invalid_price", "Price must be positive.")
		return false
	}
	if !validators.IsValidDuration(r.DurationMinutes) {
		httperr.BadRequest(c, "invalid_duration", "Duration must be a positive multiple of 15 minutes.")
		return false
	}
	return true
}

func (h *ServiceHandler) ListMine(c *gin.Context) {
	barberID, ok := barberProfileID(c, h.db)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("barber_id = ?", barberID).
		Order("created_at ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list services.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	barberID, ok := barberProfileID(c, h.db)
	if !ok {
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	svc := models.Service{
		BarberID:        barberID,
		Name:            req.Name,
		Description:     req.Description,
		PriceMinor:      req.PriceMinor,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		httperr.Internal(c, "create_failed", "Could not create service.")
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	barberID, ok := barberProfileID(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Service id must be numeric.")
		return
	}

	ctx := c.Request.Context()

	var svc models.Service
	if err := h.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", uint(id), barberID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.PriceMinor = req.PriceMinor
	svc.DurationMinutes = req.DurationMinutes
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := h.db.WithContext(ctx).Save(&svc).Error; err != nil {
		httperr.Internal(c, "update_failed", "Could not update service.")
		return
	}
	httpresp.OK(c, svc)
}

// Deactivate soft-disables the service; existing bookings keep their
// price snapshot and are unaffected.
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	barberID, ok := barberProfileID(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Service id must be numeric.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Service{}).
		Where("id = ? AND barber_id = ?", uint(id), barberID).
		Update("is_active", false)
	if res.Error != nil {
		httperr.Internal(c, "update_failed", "Could not deactivate service.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}
	c.Status(http.StatusNoContent)
}
