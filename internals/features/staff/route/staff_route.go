package route

import (
	staffCtrl "salonku_backend/internals/features/staff/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func StaffUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := staffCtrl.NewStaffController(db)

	g := r.Group("/staff")
	g.Get("/status", ctl.StatusBoard)
	g.Get("/me", ctl.Me)
}

func StaffAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := staffCtrl.NewStaffController(db)

	g := r.Group("/staff")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Update)
}
