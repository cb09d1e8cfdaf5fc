package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/httpresp"
	"github.com/barberbook/barberbook-api/internal/middleware"
	"github.com/barberbook/barberbook-api/internal/models"

	ucreview "github.com/barberbook/barberbook-api/internal/usecase/review"
)

type ReviewHandler struct {
	db       *gorm.DB
	createUC *ucreview.CreateReview
}

func NewReviewHandler(db *gorm.DB, createUC *ucreview.CreateReview) *ReviewHandler {
	return &ReviewHandler{db: db, createUC: createUC}
}

type createReviewRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	customerID := c.MustGet(middleware.ContextUserID).(uint)

	rv, err := h.createUC.Execute(c.Request.Context(), ucreview.CreateReviewInput{
		BookingID:  req.BookingID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rv)
}

// ListForBarber is public: the reviews shown on a barber's profile page.
func (h *ReviewHandler) ListForBarber(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Barber id must be numeric.")
		return
	}

	var reviews []models.Review
	if err := h.db.WithContext(c.Request.Context()).
		Where("barber_id = ?", uint(id)).
		Order("created_at DESC").
		Limit(50).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "list_failed", "Could not list reviews.")
		return
	}
	httpresp.List(c, reviews)
}
