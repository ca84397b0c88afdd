package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"madrasahku_backend/internals/features/finance/fees/model"
)

func sampleRule() model.FeeRuleModel {
	return model.FeeRuleModel{
		FeeRuleID:              uuid.New(),
		FeeRuleClassName:       "hifz-1",
		FeeRuleAdmissionAmount: 500000, // 5000.00 in paisa
		FeeRuleMonthlyAmount:   150000,
		FeeRuleExamAmount:      30000,
		FeeRuleTransportAmount: 80000,
		FeeRuleEffectiveMonth:  "2026-01",
	}
}

func TestCalculateMonthlyOnly(t *testing.T) {
	b := Calculate(sampleRule(), "2026-03", FeeOptions{})
	assert.Equal(t, int64(150000), b.Monthly)
	assert.Equal(t, int64(0), b.Admission)
	assert.Equal(t, int64(150000), b.Subtotal)
	assert.Equal(t, int64(150000), b.Total)
	assert.Equal(t, "2026-03", b.Month)
}

func TestCalculateAllComponents(t *testing.T) {
	b := Calculate(sampleRule(), "2026-01", FeeOptions{Admission: true, Exam: true, Transport: true})
	assert.Equal(t, int64(500000+150000+30000+80000), b.Subtotal)
	assert.Equal(t, b.Subtotal, b.Total)
}

func TestCalculateDiscountTruncates(t *testing.T) {
	rule := sampleRule()
	rule.FeeRuleDiscountPercent = 15
	// subtotal 150000 + 30000 = 180000; 15% = 27000
	b := Calculate(rule, "2026-02", FeeOptions{Exam: true})
	assert.Equal(t, int64(27000), b.DiscountAmount)
	assert.Equal(t, int64(153000), b.Total)

	// odd subtotal: 3% of 100001 = 3000.03 → 3000 (never overcharge)
	rule.FeeRuleDiscountPercent = 3
	rule.FeeRuleMonthlyAmount = 100001
	b = Calculate(rule, "2026-02", FeeOptions{})
	assert.Equal(t, int64(3000), b.DiscountAmount)
	assert.Equal(t, int64(97001), b.Total)
}

func TestIsValidMonth(t *testing.T) {
	assert.True(t, IsValidMonth("2026-01"))
	assert.True(t, IsValidMonth("2026-12"))
	assert.False(t, IsValidMonth("2026-13"))
	assert.False(t, IsValidMonth("2026-0"))
	assert.False(t, IsValidMonth("2026-00"))
	assert.False(t, IsValidMonth("26-01"))
	assert.False(t, IsValidMonth("2026/01"))
	assert.False(t, IsValidMonth(""))
}
