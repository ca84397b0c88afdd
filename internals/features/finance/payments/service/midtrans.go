package service

import (
	"strings"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"madrasahku_backend/internals/configs"
	"madrasahku_backend/internals/features/finance/payments/model"
)

var SnapClient snap.Client

// InitMidtrans configures the Snap client once at startup.
func InitMidtrans(serverKey string) {
	env := midtrans.Sandbox
	if strings.EqualFold(configs.GetEnv("MIDTRANS_ENV", "sandbox"), "production") {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
}

// GenerateSnapToken creates a gateway transaction for a pending payment and
// returns the snap token plus the hosted payment page URL.
func GenerateSnapToken(p model.PaymentModel, payerName, payerEmail string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.PaymentOrderID,
			GrossAmt: p.PaymentAmount / 100, // gateway wants whole currency units
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: payerName,
			Email: payerEmail,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

// StatusFromNotification maps a gateway transaction_status to ours. The bool
// is false for statuses we leave untouched (e.g. a still-pending notice).
func StatusFromNotification(transactionStatus string) (string, bool) {
	switch transactionStatus {
	case "capture", "settlement":
		return model.PaymentStatusPaid, true
	case "expire":
		return model.PaymentStatusExpired, true
	case "cancel":
		return model.PaymentStatusCanceled, true
	case "deny", "failure":
		return model.PaymentStatusFailed, true
	default:
		return "", false
	}
}

// NextStatus decides whether a stored payment moves to the status a
// notification carries. Re-delivery of the same status is a no-op, and paid
// is terminal: a later expire or cancel never takes money back.
func NextStatus(current, incoming string) (string, bool) {
	if current == model.PaymentStatusPaid || current == incoming {
		return current, false
	}
	return incoming, true
}
