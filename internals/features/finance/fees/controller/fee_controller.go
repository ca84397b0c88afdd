package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madrasahku_backend/internals/constants"
	"madrasahku_backend/internals/features/finance/fees/dto"
	"madrasahku_backend/internals/features/finance/fees/model"
	"madrasahku_backend/internals/features/finance/fees/service"
	helper "madrasahku_backend/internals/helpers"
)

type FeeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewFeeController(db *gorm.DB) *FeeController {
	return &FeeController{DB: db, Validate: validator.New()}
}

// CREATE RULE
// POST /api/a/fees/rules
func (h *FeeController) CreateRule(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateFeeRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if !service.IsValidMonth(req.EffectiveMonth) {
		return helper.JsonError(c, fiber.StatusBadRequest, service.ErrBadMonth.Error())
	}
	if req.AccType == "" {
		req.AccType = constants.AccStudent
	}
	if !constants.IsValidAccType(req.AccType) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown acc_type")
	}

	rule := model.FeeRuleModel{
		FeeRuleMadrasaID:       madrasaID,
		FeeRuleClassName:       strings.TrimSpace(req.ClassName),
		FeeRuleAccType:         req.AccType,
		FeeRuleAdmissionAmount: req.AdmissionAmount,
		FeeRuleMonthlyAmount:   req.MonthlyAmount,
		FeeRuleExamAmount:      req.ExamAmount,
		FeeRuleTransportAmount: req.TransportAmount,
		FeeRuleDiscountPercent: req.DiscountPercent,
		FeeRuleEffectiveMonth:  req.EffectiveMonth,
		FeeRuleIsActive:        true,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&rule).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create fee rule")
	}
	return helper.JsonCreated(c, "Fee rule created", rule)
}

// LIST RULES
// GET /api/a/fees/rules?class_name=&page=&per_page=
func (h *FeeController) ListRules(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "effective_month", "desc", helper.AdminOpts)
	q := h.DB.WithContext(c.UserContext()).Model(&model.FeeRuleModel{}).
		Where("fee_rule_madrasa_id = ?", madrasaID)

	if cls := strings.TrimSpace(c.Query("class_name")); cls != "" {
		q = q.Where("fee_rule_class_name = ?", cls)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"effective_month": "fee_rule_effective_month",
		"class_name":      "fee_rule_class_name",
		"created_at":      "fee_rule_created_at",
	}, "effective_month")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Invalid sort")
	}

	var rows []model.FeeRuleModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p.Page, p.PerPage, len(rows)))
}

// UPDATE RULE
// PATCH /api/a/fees/rules/:id
func (h *FeeController) UpdateRule(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateFeeRuleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var rule model.FeeRuleModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&rule, "fee_rule_id = ? AND fee_rule_madrasa_id = ?", c.Params("id"), madrasaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Fee rule not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if req.AdmissionAmount != nil {
		rule.FeeRuleAdmissionAmount = *req.AdmissionAmount
	}
	if req.MonthlyAmount != nil {
		rule.FeeRuleMonthlyAmount = *req.MonthlyAmount
	}
	if req.ExamAmount != nil {
		rule.FeeRuleExamAmount = *req.ExamAmount
	}
	if req.TransportAmount != nil {
		rule.FeeRuleTransportAmount = *req.TransportAmount
	}
	if req.DiscountPercent != nil {
		rule.FeeRuleDiscountPercent = *req.DiscountPercent
	}
	if req.IsActive != nil {
		rule.FeeRuleIsActive = *req.IsActive
	}

	if err := h.DB.WithContext(c.UserContext()).Save(&rule).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update fee rule")
	}
	return helper.JsonUpdated(c, "Fee rule updated", rule)
}

// CALCULATE
// POST /api/u/fees/calculate
func (h *FeeController) Calculate(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CalculateFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.AccType == "" {
		req.AccType = constants.AccStudent
	}

	breakdown, err := service.CalculateFor(h.DB.WithContext(c.UserContext()), madrasaID,
		req.ClassName, req.AccType, req.Month,
		service.FeeOptions{Admission: req.Admission, Exam: req.Exam, Transport: req.Transport})
	switch {
	case errors.Is(err, service.ErrBadMonth):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoRule):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "ok", breakdown)
}
