package route

import (
	"salonku_backend/internals/configs"
	recordCtrl "salonku_backend/internals/features/records/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ServiceRecordUserRoutes(r fiber.Router, db *gorm.DB, policy configs.AttendancePolicy) {
	ctl := recordCtrl.NewServiceRecordController(db, policy)

	g := r.Group("/records")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.GetByID)
}

func ServiceRecordAdminRoutes(r fiber.Router, db *gorm.DB, policy configs.AttendancePolicy) {
	ctl := recordCtrl.NewServiceRecordController(db, policy)

	g := r.Group("/records")
	g.Delete("/:id", ctl.Delete)
}
