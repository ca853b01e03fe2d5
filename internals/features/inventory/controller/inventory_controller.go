package controller

import (
	"errors"
	"log"
	"time"

	"salonku_backend/internals/features/inventory/dto"
	"salonku_backend/internals/features/inventory/repository"
	helper "salonku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db, Now: time.Now}
}

// GET /api/u/inventory?q=
func (ctl *InventoryController) List(c *fiber.Ctx) error {
	rows, err := repository.ListItems(ctl.DB.WithContext(c.UserContext()), c.Query("q"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load inventory")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// POST /api/a/inventory
func (ctl *InventoryController) Create(c *fiber.Ctx) error {
	var req dto.CreateInventoryItemRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m := req.ToModel()
	if err := repository.CreateItem(ctl.DB.WithContext(c.UserContext()), m); err != nil {
		return helper.WritePGError(c, err)
	}
	return helper.JsonCreated(c, "item created", dto.FromModel(m))
}

// PATCH /api/a/inventory/:id
func (ctl *InventoryController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateInventoryItemRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m, err := repository.UpdateItem(ctl.DB.WithContext(c.UserContext()), id, req.Updates())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "item not found")
		}
		return helper.WritePGError(c, err)
	}
	return helper.JsonUpdated(c, "item updated", dto.FromModel(m))
}

// POST /api/u/inventory/:id/use {quantity}
func (ctl *InventoryController) Use(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UseInventoryItemRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	by, _ := c.Locals(helper.LocUserName).(string)
	if by == "" {
		by = "unknown"
	}
	m, err := repository.UseItem(ctl.DB.WithContext(c.UserContext()), id, req.Quantity, by, ctl.Now())
	switch {
	case errors.Is(err, repository.ErrInsufficientStock):
		return helper.JsonError(c, fiber.StatusConflict, "not enough stock")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "item not found")
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update stock")
	}
	log.Printf("[INVENTORY] %s used %d of %q, %d left", by, req.Quantity, m.InventoryItemName, m.InventoryItemQuantity)
	return helper.JsonUpdated(c, "stock updated", dto.FromModel(m))
}

// DELETE /api/a/inventory/:id
func (ctl *InventoryController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := repository.DeleteItem(ctl.DB.WithContext(c.UserContext()), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "item not found")
		}
		return helper.WritePGError(c, err)
	}
	return helper.JsonDeleted(c, "item deleted", fiber.Map{"inventory_item_id": id})
}
