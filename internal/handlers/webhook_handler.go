package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/httperr"
	"github.com/barberbook/barberbook-api/internal/payments"

	ucbooking "github.com/barberbook/barberbook-api/internal/usecase/booking"
)

// WebhookHandler terminates the payment gateway's event stream. Events are
// delivered at least once; the use cases behind it absorb replays, so any
// 2xx here is safe and any non-2xx triggers a redelivery.
type WebhookHandler struct {
	gateway   *payments.StripeGateway
	confirmUC *ucbooking.ConfirmPayment
	failUC    *ucbooking.FailPayment
	log       *zap.Logger
}

func NewWebhookHandler(
	gateway *payments.StripeGateway,
	confirmUC *ucbooking.ConfirmPayment,
	failUC *ucbooking.FailPayment,
	log *zap.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		gateway:   gateway,
		confirmUC: confirmUC,
		failUC:    failUC,
		log:       log,
	}
}

func (h *WebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httperr.BadRequest(c, "invalid_body", "Could not read request body.")
		return
	}

	event, err := h.gateway.VerifyWebhook(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.log.Warn("webhook signature verification failed", zap.Error(err))
		httperr.BadRequest(c, "invalid_signature", "Webhook signature verification failed.")
		return
	}

	switch event.Type {
	case payments.EventCheckoutCompleted:
		err = h.handleCheckoutCompleted(c, event)
	case payments.EventPaymentFailed:
		err = h.handlePaymentFailed(c, event)
	default:
		h.log.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
	}
	if err != nil {
		h.log.Error("webhook processing failed",
			zap.String("type", string(event.Type)),
			zap.Error(err))
		httperr.Internal(c, "webhook_failed", "Event processing failed; it will be retried.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func (h *WebhookHandler) handleCheckoutCompleted(c *gin.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return err
	}

	customerID, err1 := strconv.ParseUint(session.Metadata["customer_id"], 10, 32)
	barberID, err2 := strconv.ParseUint(session.Metadata["barber_id"], 10, 32)
	if err1 != nil || err2 != nil {
		// Not one of ours (or corrupted); acknowledge rather than retry.
		h.log.Warn("checkout session missing booking metadata",
			zap.String("session_id", session.ID))
		return nil
	}

	paymentIntentRef := session.ID
	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		paymentIntentRef = session.PaymentIntent.ID
	}

	return h.confirmUC.Execute(c.Request.Context(), ucbooking.ConfirmPaymentInput{
		CustomerID:       uint(customerID),
		BarberID:         uint(barberID),
		Date:             session.Metadata["appointment_date"],
		Time:             session.Metadata["appointment_time"],
		PaymentIntentRef: paymentIntentRef,
	})
}

func (h *WebhookHandler) handlePaymentFailed(c *gin.Context, event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return err
	}
	return h.failUC.Execute(c.Request.Context(), intent.ID)
}
