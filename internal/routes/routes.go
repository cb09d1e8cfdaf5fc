package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/barberbook/barberbook-api/internal/audit"
	"github.com/barberbook/barberbook-api/internal/cache"
	"github.com/barberbook/barberbook-api/internal/config"
	"github.com/barberbook/barberbook-api/internal/handlers"
	"github.com/barberbook/barberbook-api/internal/infra/repository"
	"github.com/barberbook/barberbook-api/internal/metrics"
	"github.com/barberbook/barberbook-api/internal/middleware"
	"github.com/barberbook/barberbook-api/internal/models"
	"github.com/barberbook/barberbook-api/internal/notify"
	"github.com/barberbook/barberbook-api/internal/payments"

	ucbooking "github.com/barberbook/barberbook-api/internal/usecase/booking"
	ucreview "github.com/barberbook/barberbook-api/internal/usecase/review"
	ucwaitlist "github.com/barberbook/barberbook-api/internal/usecase/waitlist"
)

// Register wires repositories, gateways and use cases and mounts every route
// group on the engine.
func Register(
	r *gin.Engine,
	database *gorm.DB,
	redisClient *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {
	// -------- Infrastructure --------
	bookingRepo := repository.NewBookingGormRepository(database)
	waitlistRepo := repository.NewWaitlistGormRepository(database)
	reviewRepo := repository.NewReviewGormRepository(database)

	gateway := payments.NewStripeGateway(
		cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.AppURL, log)
	notifier := notify.NewResendNotifier(
		cfg.ResendAPIKey, cfg.NotifyFrom, cfg.AppURL, log)
	slotCache := cache.NewSlotCache(redisClient, log)
	auditDispatcher := audit.NewDispatcher(audit.New(database), log)

	// -------- Use cases --------
	matcher := ucwaitlist.NewMatcher(waitlistRepo, notifier, auditDispatcher, log)

	createUC := ucbooking.NewCreateBooking(
		bookingRepo, gateway, slotCache, auditDispatcher, log, cfg.Currency)
	confirmUC := ucbooking.NewConfirmPayment(bookingRepo, notifier, auditDispatcher, log)
	failUC := ucbooking.NewFailPayment(bookingRepo, slotCache, auditDispatcher, log)
	cancelUC := ucbooking.NewCancelBooking(
		bookingRepo, gateway, matcher, slotCache, auditDispatcher, log, cfg.Timezone)
	completeUC := ucbooking.NewCompleteBooking(bookingRepo, auditDispatcher, log)
	slotsUC := ucbooking.NewGetAvailableSlots(bookingRepo, slotCache, log)
	reviewUC := ucreview.NewCreateReview(reviewRepo, auditDispatcher, log)

	// -------- Handlers --------
	authHandler := handlers.NewAuthHandler(database, cfg)
	barberHandler := handlers.NewBarberHandler(database)
	serviceHandler := handlers.NewServiceHandler(database)
	availabilityHandler := handlers.NewAvailabilityHandler(database)
	bookingHandler := handlers.NewBookingHandler(
		database, bookingRepo, createUC, cancelUC, completeUC, slotsUC)
	webhookHandler := handlers.NewWebhookHandler(gateway, confirmUC, failUC, log)
	waitlistHandler := handlers.NewWaitlistHandler(database)
	reviewHandler := handlers.NewReviewHandler(database, reviewUC)

	// -------- Routes --------
	api := r.Group("/api/v1")

	// Public
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/barbers", barberHandler.List)
	api.GET("/barbers/:id", barberHandler.Get)
	api.GET("/barbers/:id/reviews", reviewHandler.ListForBarber)
	api.GET("/slots", bookingHandler.Slots)

	// Payment gateway callbacks (signature-verified, no JWT)
	api.POST("/webhooks/stripe", webhookHandler.Handle)

	// Customer
	customer := api.Group("/")
	customer.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleCustomer))
	{
		customer.POST("/bookings", bookingHandler.Create)
		customer.GET("/bookings", bookingHandler.ListMine)
		customer.POST("/bookings/:id/cancel", bookingHandler.Cancel)
		customer.POST("/waitlist", waitlistHandler.Join)
		customer.GET("/waitlist", waitlistHandler.ListMine)
		customer.POST("/reviews", reviewHandler.Create)
	}

	// Barber
	barber := api.Group("/me")
	barber.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(models.RoleBarber))
	{
		barber.GET("/services", serviceHandler.ListMine)
		barber.POST("/services", serviceHandler.Create)
		barber.PUT("/services/:id", serviceHandler.Update)
		barber.DELETE("/services/:id", serviceHandler.Deactivate)
		barber.GET("/availability", availabilityHandler.Get)
		barber.PUT("/availability", availabilityHandler.Update)
		barber.GET("/bookings", bookingHandler.ListForDate)
		barber.POST("/bookings/:id/complete", bookingHandler.Complete)
	}

	// Observability
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
