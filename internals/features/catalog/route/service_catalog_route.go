package route

import (
	catalogCtrl "salonku_backend/internals/features/catalog/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ServiceCatalogUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := catalogCtrl.NewServiceCatalogController(db)
	r.Get("/services", ctl.ListActive)
}

func ServiceCatalogAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := catalogCtrl.NewServiceCatalogController(db)

	g := r.Group("/services")
	g.Get("/", ctl.List)
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.GetByID)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
