package route

import (
	inventoryCtrl "salonku_backend/internals/features/inventory/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func InventoryUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := inventoryCtrl.NewInventoryController(db)

	g := r.Group("/inventory")
	g.Get("/", ctl.List)
	g.Post("/:id/use", ctl.Use)
}

func InventoryAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := inventoryCtrl.NewInventoryController(db)

	g := r.Group("/inventory")
	g.Post("/", ctl.Create)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
