package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// Webhook event types the lifecycle reacts to.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventPaymentFailed     = "payment_intent.payment_failed"
)

type StripeGateway struct {
	api           *client.API
	webhookSecret string
	appURL        string
	log           *zap.Logger
}

func NewStripeGateway(secretKey, webhookSecret, appURL string, log *zap.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
		appURL:        appURL,
		log:           log,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
					UnitAmount: stripe.Int64(req.AmountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(g.appURL + "/bookings?success=true"),
		CancelURL:         stripe.String(g.appURL + "/book?cancelled=true"),
		ClientReferenceID: stripe.String(uuid.NewString()),
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	// The payment intent may not exist until the customer reaches the
	// payment page; fall back to the session id as the stored reference.
	paymentIntentRef := s.ID
	if s.PaymentIntent != nil && s.PaymentIntent.ID != "" {
		paymentIntentRef = s.PaymentIntent.ID
	}

	return &Session{
		SessionRef:       s.ID,
		PaymentIntentRef: paymentIntentRef,
		CheckoutURL:      s.URL,
	}, nil
}

func (g *StripeGateway) RetrieveChargeRef(ctx context.Context, paymentIntentRef string) (string, error) {
	pi, err := g.api.PaymentIntents.Get(paymentIntentRef, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return "", fmt.Errorf("retrieve payment intent: %w", err)
	}

	if pi.LatestCharge == nil || pi.LatestCharge.ID == "" {
		return "", fmt.Errorf("payment intent %s has no charge", paymentIntentRef)
	}
	return pi.LatestCharge.ID, nil
}

func (g *StripeGateway) CreateRefund(ctx context.Context, chargeRef string) (string, error) {
	r, err := g.api.Refunds.New(&stripe.RefundParams{
		Params: stripe.Params{Context: ctx},
		Charge: stripe.String(chargeRef),
	})
	if err != nil {
		return "", fmt.Errorf("create refund: %w", err)
	}
	return r.ID, nil
}

// VerifyWebhook checks the signature and parses the event payload.
func (g *StripeGateway) VerifyWebhook(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
}

var _ Gateway = (*StripeGateway)(nil)
