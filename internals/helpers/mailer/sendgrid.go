package mailer

import (
	"fmt"
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"madrasahku_backend/internals/configs"
)

const fromName = "Madrasahku"

// Send delivers one plain-text email through Sendgrid. Caller decides whether
// a failure is fatal (OTP delivery is, notice broadcast is not).
func Send(toEmail, subject, body string) error {
	if configs.SendgridKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set")
	}

	from := sgmail.NewEmail(fromName, configs.DefaultFromEmail)
	to := sgmail.NewEmail("", toEmail)
	msg := sgmail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(configs.SendgridKey)
	resp, err := client.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("[MAIL] sendgrid status=%d body=%s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}
	return nil
}
