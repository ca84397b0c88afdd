package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madrasahku_backend/internals/features/finance/payments/controller"
	authMw "madrasahku_backend/internals/middlewares/auth"
)

// PaymentRoutes mounts the gateway webhook on the public group (it is on the
// auth skip list), self-service endpoints on the user group and recording /
// listing on the admin group.
func PaymentRoutes(public, user, admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewPaymentController(db)

	public.Post("/payments/notification", ctrl.HandleMidtransNotification)

	user.Post("/payments/gateway", ctrl.InitiateGatewayPayment)
	user.Get("/payments/my", ctrl.MyPayments)
	user.Get("/payments/dues", ctrl.MyDues)

	adm := admin.Group("/payments", authMw.StaffAndAbove())
	adm.Post("/cash", ctrl.CreateCashPayment)
	adm.Get("/", ctrl.ListPayments)
	adm.Get("/dues/:person_id", ctrl.PersonDues)
}
