package controller

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	database "madrasahku_backend/internals/databases"
	paymentModel "madrasahku_backend/internals/features/finance/payments/model"
	paymentService "madrasahku_backend/internals/features/finance/payments/service"
	personModel "madrasahku_backend/internals/features/people/model"
	userModel "madrasahku_backend/internals/features/users/user/model"
	helper "madrasahku_backend/internals/helpers"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

const statsCacheTTL = 60 * time.Second

func statsCacheKey(madrasaID uuid.UUID) string { return "dash:stats:" + madrasaID.String() }

type countRow struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type dashboardStats struct {
	UsersByAccType      []countRow                  `json:"users_by_acc_type"`
	PeopleByClass       []countRow                  `json:"people_by_class"`
	PaidThisMonth       int64                       `json:"paid_this_month"`
	PaidPreviousMonth   int64                       `json:"paid_previous_month"`
	PendingPayments     int64                       `json:"pending_payments"`
	LatestPayments      []paymentModel.PaymentModel `json:"latest_payments"`
	LatestRegistrations []personModel.PersonModel   `json:"latest_registrations"`
	GeneratedAt         time.Time                   `json:"generated_at"`
}

// STATS
// GET /api/a/dashboard
func (h *DashboardController) Stats(c *fiber.Ctx) error {
	madrasaID, err := helper.GetMadrasaIDFromToken(c)
	if err != nil {
		return err
	}

	if database.KeyDB != nil {
		if cached, err := database.KeyDB.Get(c.UserContext(), statsCacheKey(madrasaID)).Result(); err == nil {
			var stats dashboardStats
			if sonic.Unmarshal([]byte(cached), &stats) == nil {
				return helper.JsonOK(c, "ok", stats)
			}
		}
	}

	stats, err := h.collect(c, madrasaID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if database.KeyDB != nil {
		if raw, err := sonic.Marshal(stats); err == nil {
			_ = database.KeyDB.Set(c.UserContext(), statsCacheKey(madrasaID), raw, statsCacheTTL).Err()
		}
	}
	return helper.JsonOK(c, "ok", stats)
}

func (h *DashboardController) collect(c *fiber.Ctx, madrasaID uuid.UUID) (*dashboardStats, error) {
	db := h.DB.WithContext(c.UserContext())
	now := time.Now().UTC()
	stats := dashboardStats{GeneratedAt: now}

	if err := db.Model(&userModel.UserModel{}).
		Select("acc_type AS key, COUNT(*) AS count").
		Where("madrasa_id = ?", madrasaID).
		Group("acc_type").
		Scan(&stats.UsersByAccType).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&personModel.PersonModel{}).
		Select("person_class_name AS key, COUNT(*) AS count").
		Where("person_madrasa_id = ? AND person_class_name IS NOT NULL", madrasaID).
		Group("person_class_name").
		Scan(&stats.PeopleByClass).Error; err != nil {
		return nil, err
	}

	thisMonth := paymentService.MonthKey(now)
	prevMonth := paymentService.MonthKey(now.AddDate(0, -1, 0))
	sumFor := func(month string) (int64, error) {
		var total int64
		err := db.Model(&paymentModel.PaymentModel{}).
			Where("payment_madrasa_id = ? AND payment_status = ? AND payment_month = ?",
				madrasaID, paymentModel.PaymentStatusPaid, month).
			Select("COALESCE(SUM(payment_amount), 0)").
			Scan(&total).Error
		return total, err
	}
	var err error
	if stats.PaidThisMonth, err = sumFor(thisMonth); err != nil {
		return nil, err
	}
	if stats.PaidPreviousMonth, err = sumFor(prevMonth); err != nil {
		return nil, err
	}

	if err := db.Model(&paymentModel.PaymentModel{}).
		Where("payment_madrasa_id = ? AND payment_status = ?", madrasaID, paymentModel.PaymentStatusPending).
		Count(&stats.PendingPayments).Error; err != nil {
		return nil, err
	}

	if err := db.
		Where("payment_madrasa_id = ?", madrasaID).
		Order("payment_created_at DESC").Limit(5).
		Find(&stats.LatestPayments).Error; err != nil {
		return nil, err
	}

	if err := db.
		Where("person_madrasa_id = ?", madrasaID).
		Order("person_created_at DESC").Limit(5).
		Find(&stats.LatestRegistrations).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
