package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/barberbook/barberbook-api/internal/domain/booking"
	"github.com/barberbook/barberbook-api/internal/dto"
	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/httpresp"
	"github.com/barberbook/barberbook-api/internal/middleware"
	"github.com/barberbook/barberbook-api/internal/validators"

	ucbooking "github.com/barberbook/barberbook-api/internal/usecase/booking"
)

type BookingHandler struct {
	db *gorm.DB

	repo domain.Repository

	createUC   *ucbooking.CreateBooking
	cancelUC   *ucbooking.CancelBooking
	completeUC *ucbooking.CompleteBooking
	slotsUC    *ucbooking.GetAvailableSlots
}

func NewBookingHandler(
	db *gorm.DB,
	repo domain.Repository,
	createUC *ucbooking.CreateBooking,
	cancelUC *ucbooking.CancelBooking,
	completeUC *ucbooking.CompleteBooking,
	slotsUC *ucbooking.GetAvailableSlots,
) *BookingHandler {
	return &BookingHandler{
		db:         db,
		repo:       repo,
		createUC:   createUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		slotsUC:    slotsUC,
	}
}

// ======================================================
// CUSTOMER
// ======================================================

type createBookingRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

type createBookingResponse struct {
	BookingID    uint   `json:"booking_id"`
	SessionRef   string `json:"payment_session_ref"`
	CheckoutURL  string `json:"checkout_url"`
	DepositMinor int64  `json:"deposit_minor"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_payload", err.Error())
		return
	}

	customerID := c.MustGet(middleware.ContextUserID).(uint)

	out, err := h.createUC.Execute(c.Request.Context(), ucbooking.CreateBookingInput{
		CustomerID: customerID,
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createBookingResponse{
		BookingID:    out.BookingID,
		SessionRef:   out.SessionRef,
		CheckoutURL:  out.CheckoutURL,
		DepositMinor: out.DepositMinor,
	})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return
	}

	customerID := c.MustGet(middleware.ContextUserID).(uint)

	out, err := h.cancelUC.Execute(c.Request.Context(), uint(id), customerID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"refunded": out.Refunded})
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.repo.ListBookingsForCustomer(c.Request.Context(), customerID)
	if err != nil {
		httperr.Internal(c, "list_failed", "Could not list bookings.")
		return
	}

	out := make([]dto.CustomerBookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.CustomerBookingDTO{
			ID:              b.ID,
			AppointmentDate: b.AppointmentDate,
			AppointmentTime: b.AppointmentTime,
			Status:          b.Status,
			ServiceName:     b.Service.Name,
			BarberName:      b.Barber.User.FullName,
			TotalPrice:      b.TotalPrice,
			DepositPaid:     b.DepositPaid,
		})
	}
	httpresp.List(c, out)
}

// ======================================================
// BARBER
// ======================================================

func (h *BookingHandler) Complete(c *gin.Context) {
	barberID, ok := barberProfileID(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Booking id must be numeric.")
		return
	}

	b, err := h.completeUC.Execute(c.Request.Context(), uint(id), barberID)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BookingHandler) ListForDate(c *gin.Context) {
	barberID, ok := barberProfileID(c, h.db)
	if !ok {
		return
	}

	date := c.Query("date")
	if !validators.IsValidDate(date) {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	bookings, err := h.repo.ListBookingsForBarberDate(c.Request.Context(), barberID, date)
	if err != nil {
		httperr.Internal(c, "list_failed", "Could not list bookings.")
		return
	}

	out := make([]dto.BarberBookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BarberBookingDTO{
			ID:              b.ID,
			AppointmentDate: b.AppointmentDate,
			AppointmentTime: b.AppointmentTime,
			Status:          b.Status,
			CustomerName:    b.Customer.FullName,
			ServiceName:     b.Service.Name,
			TotalPrice:      b.TotalPrice,
			DepositPaid:     b.DepositPaid,
		})
	}
	httpresp.List(c, out)
}

// ======================================================
// PUBLIC
// ======================================================

type slotsResponse struct {
	Date  string        `json:"date"`
	Slots []domain.Slot `json:"slots"`
}

func (h *BookingHandler) Slots(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Query("barber_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "barber_id is required and must be numeric.")
		return
	}
	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id is required and must be numeric.")
		return
	}
	date := c.Query("date")

	slots, err := h.slotsUC.Execute(c.Request.Context(), uint(barberID), uint(serviceID), date)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, slotsResponse{Date: date, Slots: slots})
}
