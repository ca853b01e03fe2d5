package route

import (
	locationCtrl "salonku_backend/internals/features/locations/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func LocationUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := locationCtrl.NewLocationController(db)
	r.Get("/locations", ctl.ListActive)
}

func LocationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := locationCtrl.NewLocationController(db)

	g := r.Group("/locations")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Update)
	g.Patch("/:id/toggle", ctl.Toggle)
	g.Delete("/:id", ctl.Delete)
}
