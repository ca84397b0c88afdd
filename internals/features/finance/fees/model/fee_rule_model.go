package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeRuleModel defines what a class/account-type combination pays from a
// given month onward. Amounts are stored in paisa so the math stays integer.
type FeeRuleModel struct {
	FeeRuleID        uuid.UUID `gorm:"column:fee_rule_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_rule_id"`
	FeeRuleMadrasaID uuid.UUID `gorm:"column:fee_rule_madrasa_id;type:uuid;not null;index" json:"madrasa_id"`

	FeeRuleClassName string `gorm:"column:fee_rule_class_name;type:varchar(50);not null;index" json:"class_name"`
	FeeRuleAccType   string `gorm:"column:fee_rule_acc_type;type:varchar(20);not null;default:'student'" json:"acc_type"`

	FeeRuleAdmissionAmount int64 `gorm:"column:fee_rule_admission_amount;not null;default:0" json:"admission_amount"`
	FeeRuleMonthlyAmount   int64 `gorm:"column:fee_rule_monthly_amount;not null;default:0" json:"monthly_amount"`
	FeeRuleExamAmount      int64 `gorm:"column:fee_rule_exam_amount;not null;default:0" json:"exam_amount"`
	FeeRuleTransportAmount int64 `gorm:"column:fee_rule_transport_amount;not null;default:0" json:"transport_amount"`

	FeeRuleDiscountPercent int `gorm:"column:fee_rule_discount_percent;not null;default:0" json:"discount_percent"`

	// YYYY-MM; the rule applies to this month and every later one until a
	// newer rule takes over.
	FeeRuleEffectiveMonth string `gorm:"column:fee_rule_effective_month;type:varchar(7);not null;index" json:"effective_month"`
	FeeRuleIsActive       bool   `gorm:"column:fee_rule_is_active;not null;default:true" json:"is_active"`

	FeeRuleCreatedAt time.Time      `gorm:"column:fee_rule_created_at;autoCreateTime" json:"created_at"`
	FeeRuleUpdatedAt time.Time      `gorm:"column:fee_rule_updated_at;autoUpdateTime" json:"updated_at"`
	FeeRuleDeletedAt gorm.DeletedAt `gorm:"column:fee_rule_deleted_at;index" json:"-"`
}

func (FeeRuleModel) TableName() string {
	return "fee_rules"
}
