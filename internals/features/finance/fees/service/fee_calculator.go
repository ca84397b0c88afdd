package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"madrasahku_backend/internals/features/finance/fees/model"
)

var (
	ErrNoRule   = errors.New("no fee rule covers this class and month")
	ErrBadMonth = errors.New("month must be formatted YYYY-MM")
)

var reMonth = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func IsValidMonth(month string) bool {
	return reMonth.MatchString(month)
}

// FeeOptions selects which one-off components join the monthly amount.
type FeeOptions struct {
	Admission bool `json:"admission"`
	Exam      bool `json:"exam"`
	Transport bool `json:"transport"`
}

// FeeBreakdown is the itemized result of a calculation, all amounts in paisa.
type FeeBreakdown struct {
	RuleID          uuid.UUID `json:"rule_id"`
	ClassName       string    `json:"class_name"`
	Month           string    `json:"month"`
	Monthly         int64     `json:"monthly"`
	Admission       int64     `json:"admission"`
	Exam            int64     `json:"exam"`
	Transport       int64     `json:"transport"`
	Subtotal        int64     `json:"subtotal"`
	DiscountPercent int       `json:"discount_percent"`
	DiscountAmount  int64     `json:"discount_amount"`
	Total           int64     `json:"total"`
}

// Calculate sums the selected components of a rule and applies its discount.
// The discount truncates toward zero so the payer is never overcharged by
// rounding.
func Calculate(rule model.FeeRuleModel, month string, opts FeeOptions) FeeBreakdown {
	b := FeeBreakdown{
		RuleID:          rule.FeeRuleID,
		ClassName:       rule.FeeRuleClassName,
		Month:           month,
		Monthly:         rule.FeeRuleMonthlyAmount,
		DiscountPercent: rule.FeeRuleDiscountPercent,
	}
	if opts.Admission {
		b.Admission = rule.FeeRuleAdmissionAmount
	}
	if opts.Exam {
		b.Exam = rule.FeeRuleExamAmount
	}
	if opts.Transport {
		b.Transport = rule.FeeRuleTransportAmount
	}
	b.Subtotal = b.Monthly + b.Admission + b.Exam + b.Transport
	if b.DiscountPercent > 0 {
		b.DiscountAmount = b.Subtotal * int64(b.DiscountPercent) / 100
	}
	b.Total = b.Subtotal - b.DiscountAmount
	return b
}

// PickRule returns the newest active rule whose effective month does not
// exceed the requested one. YYYY-MM strings order correctly as text, so the
// comparison stays in SQL.
func PickRule(db *gorm.DB, madrasaID uuid.UUID, className, accType, month string) (*model.FeeRuleModel, error) {
	if !IsValidMonth(month) {
		return nil, ErrBadMonth
	}
	var rule model.FeeRuleModel
	err := db.
		Where("fee_rule_madrasa_id = ? AND fee_rule_class_name = ? AND fee_rule_acc_type = ? AND fee_rule_is_active = true AND fee_rule_effective_month <= ?",
			madrasaID, strings.TrimSpace(className), accType, month).
		Order("fee_rule_effective_month DESC").
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRule
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// CalculateFor is the one-stop operation: resolve the rule, then price it.
func CalculateFor(db *gorm.DB, madrasaID uuid.UUID, className, accType, month string, opts FeeOptions) (*FeeBreakdown, error) {
	rule, err := PickRule(db, madrasaID, className, accType, month)
	if err != nil {
		return nil, err
	}
	b := Calculate(*rule, month, opts)
	return &b, nil
}
