package payments

import "context"

// SessionRequest describes the deposit charge to set up.
type SessionRequest struct {
	AmountMinor int64
	Currency    string
	Description string
	// Metadata travels to the processor and comes back on the webhook;
	// it is how callbacks are matched to bookings.
	Metadata map[string]string
}

// Session is the created checkout session.
type Session struct {
	SessionRef       string
	PaymentIntentRef string
	CheckoutURL      string
}

// Gateway is the narrow payment-processor surface the booking lifecycle
// needs. Implementations must honor ctx cancellation/deadlines.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)

	// RetrieveChargeRef resolves a payment intent to its captured charge.
	RetrieveChargeRef(ctx context.Context, paymentIntentRef string) (string, error)

	CreateRefund(ctx context.Context, chargeRef string) (string, error)
}
