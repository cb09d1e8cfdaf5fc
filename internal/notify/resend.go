package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/barberbook/barberbook-api/internal/models"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendNotifier sends transactional email through the Resend HTTP API.
type ResendNotifier struct {
	apiKey string
	from   string
	appURL string
	http   *http.Client
	log    *zap.Logger
}

func NewResendNotifier(apiKey, from, appURL string, log *zap.Logger) *ResendNotifier {
	return &ResendNotifier{
		apiKey: apiKey,
		from:   from,
		appURL: appURL,
		http:   &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}
}

type emailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (n *ResendNotifier) SendReminder(ctx context.Context, b *models.Booking, recipientEmail string) error {
	subject := "Reminder: your appointment tomorrow"
	html := fmt.Sprintf(
		`<p>This is a reminder for your appointment on <strong>%s</strong> at <strong>%s</strong>.</p>
<p><a href="%s/bookings">View your booking</a></p>`,
		b.AppointmentDate, b.AppointmentTime[:5], n.appURL,
	)

	return n.send(ctx, recipientEmail, subject, html)
}

func (n *ResendNotifier) SendWaitlistAlert(ctx context.Context, entry *models.WaitlistEntry, recipientEmail string, slot SlotInfo) error {
	subject := fmt.Sprintf("A slot just opened up with %s!", slot.BarberName)
	html := fmt.Sprintf(
		`<p>A time slot you've been waiting for just became available:</p>
<p><strong>Barber:</strong> %s<br/><strong>Date:</strong> %s<br/><strong>Time:</strong> %s</p>
<p><a href="%s/book?barberId=%d">Book it now before someone else does!</a></p>`,
		slot.BarberName, slot.Date, slot.Time, n.appURL, entry.BarberID,
	)

	return n.send(ctx, recipientEmail, subject, html)
}

func (n *ResendNotifier) send(ctx context.Context, to, subject, html string) error {
	if n.apiKey == "" {
		// No provider configured (local dev); log instead of failing.
		n.log.Info("email suppressed, no provider configured",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	body, err := json.Marshal(emailPayload{
		From:    n.from,
		To:      to,
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("resend returned %d", resp.StatusCode)
	}
	return nil
}

var _ Notifier = (*ResendNotifier)(nil)
