package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"madrasahku_backend/internals/constants"
	feeService "madrasahku_backend/internals/features/finance/fees/service"
	"madrasahku_backend/internals/features/finance/payments/dto"
	"madrasahku_backend/internals/features/finance/payments/model"
	"madrasahku_backend/internals/features/finance/payments/service"
	personModel "madrasahku_backend/internals/features/people/model"
	helper "madrasahku_backend/internals/helpers"
)

type PaymentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, Validate: validator.New()}
}

// CREATE CASH PAYMENT (staff records money taken at the office)
// POST /api/a/payments/cash
func (h *PaymentController) CreateCashPayment(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateCashPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Month != "" && !feeService.IsValidMonth(req.Month) {
		return helper.JsonError(c, fiber.StatusBadRequest, feeService.ErrBadMonth.Error())
	}

	person, err := h.findPersonInTenant(c, madrasaID, req.PersonID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	p := model.PaymentModel{
		PaymentMadrasaID: madrasaID,
		PaymentPersonID:  person.PersonID,
		PaymentOrderID:   service.NewOrderID(madrasaID),
		PaymentAmount:    req.Amount,
		PaymentMonth:     req.Month,
		PaymentMethod:    model.PaymentMethodCash,
		PaymentStatus:    model.PaymentStatusPaid,
		PaymentPaidAt:    &now,
	}
	if note := strings.TrimSpace(req.Note); note != "" {
		p.PaymentNote = &note
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&p).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record payment")
	}
	return helper.JsonCreated(c, "Payment recorded", p)
}

// INITIATE GATEWAY PAYMENT
// POST /api/u/payments/gateway
func (h *PaymentController) InitiateGatewayPayment(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.InitiateGatewayPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.Month != "" && !feeService.IsValidMonth(req.Month) {
		return helper.JsonError(c, fiber.StatusBadRequest, feeService.ErrBadMonth.Error())
	}

	person, err := h.findPersonInTenant(c, madrasaID, req.PersonID)
	if err != nil {
		return err
	}
	// non-staff may only pay for their own person row
	accType := helper.GetAccTypeFromToken(c)
	if accType != constants.AccAdmin && accType != constants.AccStaff {
		userID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		if person.UserID == nil || *person.UserID != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "You can only pay your own fees")
		}
	}

	p := model.PaymentModel{
		PaymentMadrasaID: madrasaID,
		PaymentPersonID:  person.PersonID,
		PaymentOrderID:   service.NewOrderID(madrasaID),
		PaymentAmount:    req.Amount,
		PaymentMonth:     req.Month,
		PaymentMethod:    model.PaymentMethodGateway,
		PaymentStatus:    model.PaymentStatusPending,
	}
	if note := strings.TrimSpace(req.Note); note != "" {
		p.PaymentNote = &note
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&p).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create payment")
	}

	userName, _ := c.Locals("user_name").(string)
	token, redirectURL, err := service.GenerateSnapToken(p, userName, "")
	if err != nil {
		log.Println("❌ Gateway token request failed:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Payment gateway rejected the transaction")
	}
	p.PaymentGatewayToken = &token
	p.PaymentRedirectURL = &redirectURL
	if err := h.DB.WithContext(c.UserContext()).Save(&p).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store gateway token")
	}

	return helper.JsonCreated(c, "Payment initiated", fiber.Map{
		"payment_id":   p.PaymentID,
		"order_id":     p.PaymentOrderID,
		"snap_token":   token,
		"redirect_url": redirectURL,
	})
}

// MIDTRANS WEBHOOK (no auth; mounted on the skip list)
// POST /api/payments/notification
func (h *PaymentController) HandleMidtransNotification(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	orderID, _ := body["order_id"].(string)
	transactionStatus, _ := body["transaction_status"].(string)
	if orderID == "" || transactionStatus == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	newStatus, ok := service.StatusFromNotification(transactionStatus)
	if !ok {
		// pending and friends: acknowledge, change nothing
		return c.SendStatus(fiber.StatusOK)
	}

	var p model.PaymentModel
	if err := h.DB.WithContext(c.UserContext()).
		Where("payment_order_id = ?", orderID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	next, changed := service.NextStatus(p.PaymentStatus, newStatus)
	if !changed {
		return c.SendStatus(fiber.StatusOK)
	}

	p.PaymentStatus = next
	if next == model.PaymentStatusPaid {
		now := time.Now().UTC()
		p.PaymentPaidAt = &now
	}
	if err := h.DB.WithContext(c.UserContext()).Save(&p).Error; err != nil {
		log.Println("❌ Webhook update failed:", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.SendStatus(fiber.StatusOK)
}

// LIST PAYMENTS (admin, filterable)
// GET /api/a/payments?status=&month=&person_id=&page=&per_page=
func (h *PaymentController) ListPayments(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	q := h.DB.WithContext(c.UserContext()).Model(&model.PaymentModel{}).
		Where("payment_madrasa_id = ?", madrasaID)

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("payment_status = ?", status)
	}
	if month := strings.TrimSpace(c.Query("month")); month != "" {
		q = q.Where("payment_month = ?", month)
	}
	if pid := strings.TrimSpace(c.Query("person_id")); pid != "" {
		personID, err := uuid.Parse(pid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "person_id is not a valid uuid")
		}
		q = q.Where("payment_person_id = ?", personID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	order, err := p.SafeOrderClause(map[string]string{
		"created_at": "payment_created_at",
		"amount":     "payment_amount",
		"month":      "payment_month",
	}, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Invalid sort")
	}

	var rows []model.PaymentModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p.Page, p.PerPage, len(rows)))
}

// MY PAYMENTS
// GET /api/u/payments/my
func (h *PaymentController) MyPayments(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	person, err := h.findPersonByUser(c, madrasaID, userID)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	q := h.DB.WithContext(c.UserContext()).Model(&model.PaymentModel{}).
		Where("payment_madrasa_id = ? AND payment_person_id = ?", madrasaID, person.PersonID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var rows []model.PaymentModel
	if err := q.Order("payment_created_at DESC").Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonList(c, "ok", rows, helper.BuildPagination(total, p.Page, p.PerPage, len(rows)))
}

// MONTHLY DUES: months since enrollment minus months paid
// GET /api/u/payments/dues  (self)
// GET /api/a/payments/dues/:person_id  (staff, anyone)
func (h *PaymentController) MyDues(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	person, err := h.findPersonByUser(c, madrasaID, userID)
	if err != nil {
		return err
	}
	return h.respondDues(c, madrasaID, person)
}

func (h *PaymentController) PersonDues(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}
	personID, err := uuid.Parse(c.Params("person_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "person_id is not a valid uuid")
	}
	person, err := h.findPersonInTenant(c, madrasaID, personID)
	if err != nil {
		return err
	}
	return h.respondDues(c, madrasaID, person)
}

func (h *PaymentController) respondDues(c *fiber.Ctx, madrasaID uuid.UUID, person *personModel.PersonModel) error {
	owed := service.MonthsBetween(person.EnrolledAt, time.Now().UTC())

	var paid []string
	if err := h.DB.WithContext(c.UserContext()).Model(&model.PaymentModel{}).
		Where("payment_madrasa_id = ? AND payment_person_id = ? AND payment_status = ? AND payment_month <> ''",
			madrasaID, person.PersonID, model.PaymentStatusPaid).
		Distinct().Pluck("payment_month", &paid).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	due := service.UnpaidMonths(owed, paid)
	return helper.JsonOK(c, "ok", fiber.Map{
		"person_id":     person.PersonID,
		"enrolled_at":   person.EnrolledAt,
		"months_owed":   len(owed),
		"months_paid":   len(owed) - len(due),
		"unpaid_months": due,
	})
}

/* ==========================
   Shared lookups
========================== */

func (h *PaymentController) findPersonInTenant(c *fiber.Ctx, madrasaID, personID uuid.UUID) (*personModel.PersonModel, error) {
	var person personModel.PersonModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&person, "person_id = ? AND person_madrasa_id = ?", personID, madrasaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Person not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "DB error")
	}
	return &person, nil
}

func (h *PaymentController) findPersonByUser(c *fiber.Ctx, madrasaID, userID uuid.UUID) (*personModel.PersonModel, error) {
	var person personModel.PersonModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&person, "person_user_id = ? AND person_madrasa_id = ?", userID, madrasaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "No person profile linked to this account")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "DB error")
	}
	return &person, nil
}
