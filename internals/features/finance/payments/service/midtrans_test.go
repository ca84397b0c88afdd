package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"madrasahku_backend/internals/features/finance/payments/model"
)

func TestStatusFromNotification(t *testing.T) {
	cases := map[string]string{
		"capture":    model.PaymentStatusPaid,
		"settlement": model.PaymentStatusPaid,
		"expire":     model.PaymentStatusExpired,
		"cancel":     model.PaymentStatusCanceled,
		"deny":       model.PaymentStatusFailed,
		"failure":    model.PaymentStatusFailed,
	}
	for in, want := range cases {
		got, ok := StatusFromNotification(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
}

func TestStatusFromNotificationIgnoresPending(t *testing.T) {
	for _, in := range []string{"pending", "authorize", "", "refund"} {
		_, ok := StatusFromNotification(in)
		assert.False(t, ok, in)
	}
}

func TestNextStatusPaidIsTerminal(t *testing.T) {
	// a late expire notice after settlement must not take the payment back
	got, changed := NextStatus(model.PaymentStatusPaid, model.PaymentStatusExpired)
	assert.False(t, changed)
	assert.Equal(t, model.PaymentStatusPaid, got)

	for _, incoming := range []string{
		model.PaymentStatusCanceled,
		model.PaymentStatusFailed,
		model.PaymentStatusPending,
	} {
		_, changed := NextStatus(model.PaymentStatusPaid, incoming)
		assert.False(t, changed, incoming)
	}
}

func TestNextStatusDuplicateDeliveryIsNoOp(t *testing.T) {
	// the gateway retries settlement webhooks; the second one changes nothing
	got, changed := NextStatus(model.PaymentStatusPaid, model.PaymentStatusPaid)
	assert.False(t, changed)
	assert.Equal(t, model.PaymentStatusPaid, got)

	_, changed = NextStatus(model.PaymentStatusExpired, model.PaymentStatusExpired)
	assert.False(t, changed)
}

func TestNextStatusAppliesTransitions(t *testing.T) {
	cases := []struct{ current, incoming string }{
		{model.PaymentStatusPending, model.PaymentStatusPaid},
		{model.PaymentStatusPending, model.PaymentStatusExpired},
		{model.PaymentStatusPending, model.PaymentStatusCanceled},
		{model.PaymentStatusFailed, model.PaymentStatusPaid}, // retried card eventually settles
	}
	for _, tc := range cases {
		got, changed := NextStatus(tc.current, tc.incoming)
		assert.True(t, changed, tc.current+" -> "+tc.incoming)
		assert.Equal(t, tc.incoming, got)
	}
}
