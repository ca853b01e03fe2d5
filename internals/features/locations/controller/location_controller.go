package controller

import (
	"errors"
	"log"
	"strconv"

	"salonku_backend/internals/features/locations/dto"
	"salonku_backend/internals/features/locations/repository"
	helper "salonku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LocationController struct {
	DB *gorm.DB
}

func NewLocationController(db *gorm.DB) *LocationController {
	return &LocationController{DB: db}
}

// GET /api/a/locations?active=true
func (ctl *LocationController) List(c *fiber.Ctx) error {
	activeOnly, _ := strconv.ParseBool(c.Query("active", "false"))
	rows, err := repository.ListLocations(ctl.DB.WithContext(c.UserContext()), activeOnly)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load locations")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// GET /api/u/locations
func (ctl *LocationController) ListActive(c *fiber.Ctx) error {
	rows, err := repository.ListLocations(ctl.DB.WithContext(c.UserContext()), true)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load locations")
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// GET /api/a/locations/:id
func (ctl *LocationController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := repository.FindLocationByID(ctl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return notFoundOr500(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// POST /api/a/locations
func (ctl *LocationController) Create(c *fiber.Ctx) error {
	var req dto.CreateLocationRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m := req.ToModel()
	if err := repository.CreateLocation(ctl.DB.WithContext(c.UserContext()), m); err != nil {
		return helper.WritePGError(c, err)
	}
	log.Printf("[LOCATION] created %s %q radius=%.0fm", m.LocationID, m.LocationName, m.LocationMaxDistance)
	return helper.JsonCreated(c, "location created", dto.FromModel(m))
}

// PATCH /api/a/locations/:id
func (ctl *LocationController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateLocationRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m, err := repository.UpdateLocation(ctl.DB.WithContext(c.UserContext()), id, req.Updates())
	if err != nil {
		return notFoundOr500(c, err)
	}
	return helper.JsonUpdated(c, "location updated", dto.FromModel(m))
}

// PATCH /api/a/locations/:id/toggle
func (ctl *LocationController) Toggle(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := repository.ToggleLocation(ctl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return notFoundOr500(c, err)
	}
	return helper.JsonUpdated(c, "location status changed", dto.FromModel(m))
}

// DELETE /api/a/locations/:id
func (ctl *LocationController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := repository.DeleteLocation(ctl.DB.WithContext(c.UserContext()), id); err != nil {
		return notFoundOr500(c, err)
	}
	return helper.JsonDeleted(c, "location deleted", fiber.Map{"location_id": id})
}

func notFoundOr500(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "location not found")
	}
	return helper.WritePGError(c, err)
}
