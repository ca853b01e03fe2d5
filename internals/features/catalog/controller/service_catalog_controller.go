package controller

import (
	"errors"
	"log"
	"strconv"

	"salonku_backend/internals/features/catalog/dto"
	"salonku_backend/internals/features/catalog/repository"
	helper "salonku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ServiceCatalogController struct {
	DB *gorm.DB
}

func NewServiceCatalogController(db *gorm.DB) *ServiceCatalogController {
	return &ServiceCatalogController{DB: db}
}

// GET /api/u/services?q=&category=&grouped=true
func (ctl *ServiceCatalogController) ListActive(c *fiber.Ctx) error {
	return ctl.list(c, true)
}

// GET /api/a/services?q=&category=&active=true
func (ctl *ServiceCatalogController) List(c *fiber.Ctx) error {
	activeOnly, _ := strconv.ParseBool(c.Query("active", "false"))
	return ctl.list(c, activeOnly)
}

func (ctl *ServiceCatalogController) list(c *fiber.Ctx, activeOnly bool) error {
	f := repository.ServiceFilter{
		Query:      c.Query("q"),
		Category:   c.Query("category"),
		ActiveOnly: activeOnly,
	}
	rows, err := repository.ListServices(ctl.DB.WithContext(c.UserContext()), f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load services")
	}
	if grouped, _ := strconv.ParseBool(c.Query("grouped", "false")); grouped {
		return helper.JsonOK(c, "ok", dto.GroupByCategory(rows))
	}
	return helper.JsonOK(c, "ok", dto.FromModels(rows))
}

// GET /api/a/services/:id
func (ctl *ServiceCatalogController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := repository.FindServiceByID(ctl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return serviceNotFoundOr500(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// POST /api/a/services
func (ctl *ServiceCatalogController) Create(c *fiber.Ctx) error {
	var req dto.CreateServiceRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m := req.ToModel()
	if err := repository.CreateService(ctl.DB.WithContext(c.UserContext()), m); err != nil {
		return helper.WritePGError(c, err)
	}
	log.Printf("[CATALOG] created %s %q / %q price=%.2f", m.ServiceCatalogID, m.ServiceCatalogCategory, m.ServiceCatalogName, m.ServiceCatalogPrice)
	return helper.JsonCreated(c, "service created", dto.FromModel(m))
}

// PATCH /api/a/services/:id
func (ctl *ServiceCatalogController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateServiceRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m, err := repository.UpdateService(ctl.DB.WithContext(c.UserContext()), id, req.Updates())
	if err != nil {
		return serviceNotFoundOr500(c, err)
	}
	return helper.JsonUpdated(c, "service updated", dto.FromModel(m))
}

// DELETE /api/a/services/:id
func (ctl *ServiceCatalogController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := repository.DeleteService(ctl.DB.WithContext(c.UserContext()), id); err != nil {
		return serviceNotFoundOr500(c, err)
	}
	return helper.JsonDeleted(c, "service deleted", fiber.Map{"service_id": id})
}

func serviceNotFoundOr500(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "service not found")
	}
	return helper.WritePGError(c, err)
}
