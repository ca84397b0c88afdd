package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodCash    = "cash"
	PaymentMethodGateway = "gateway"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusExpired  = "expired"
	PaymentStatusCanceled = "canceled"
	PaymentStatusFailed   = "failed"
)

// PaymentModel records one fee payment, cash or gateway. Amounts in paisa.
type PaymentModel struct {
	PaymentID        uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`
	PaymentMadrasaID uuid.UUID `gorm:"column:payment_madrasa_id;type:uuid;not null;index" json:"madrasa_id"`
	PaymentPersonID  uuid.UUID `gorm:"column:payment_person_id;type:uuid;not null;index" json:"person_id"`

	PaymentOrderID string `gorm:"column:payment_order_id;type:varchar(64);uniqueIndex;not null" json:"order_id"`
	PaymentAmount  int64  `gorm:"column:payment_amount;not null" json:"amount"`
	// YYYY-MM month this payment covers; empty for one-off charges.
	PaymentMonth  string `gorm:"column:payment_month;type:varchar(7);index" json:"month"`
	PaymentMethod string `gorm:"column:payment_method;type:varchar(10);not null" json:"method"`
	PaymentStatus string `gorm:"column:payment_status;type:varchar(10);not null;default:'pending';index" json:"status"`

	PaymentGatewayToken *string `gorm:"column:payment_gateway_token;type:text" json:"gateway_token,omitempty"`
	PaymentRedirectURL  *string `gorm:"column:payment_redirect_url;type:text" json:"redirect_url,omitempty"`

	PaymentPaidAt *time.Time `gorm:"column:payment_paid_at" json:"paid_at,omitempty"`
	PaymentNote   *string    `gorm:"column:payment_note;type:text" json:"note,omitempty"`

	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;autoCreateTime" json:"created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;autoUpdateTime" json:"updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

func (PaymentModel) TableName() string {
	return "payments"
}

func IsValidPaymentMethod(m string) bool {
	return m == PaymentMethodCash || m == PaymentMethodGateway
}
