package controller

import (
	"errors"
	"log"
	"strings"

	"salonku_backend/internals/features/staff/dto"
	"salonku_backend/internals/features/staff/model"
	"salonku_backend/internals/features/staff/repository"
	helper "salonku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

// GET /api/a/staff?role=&status=&q=&page=&per_page=
func (ctl *StaffController) List(c *fiber.Ctx) error {
	f := repository.StaffFilter{
		Role:   strings.TrimSpace(c.Query("role")),
		Status: strings.ToLower(strings.TrimSpace(c.Query("status"))),
		Query:  c.Query("q"),
	}
	if f.Status != "" && f.Status != model.StaffStatusIn && f.Status != model.StaffStatusOut {
		return helper.JsonError(c, fiber.StatusBadRequest, "status must be in or out")
	}
	p := helper.ResolvePaging(c, helper.AdminOpts)

	rows, total, err := repository.ListStaff(ctl.DB.WithContext(c.UserContext()), f, p.Offset(), p.Limit())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load staff")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p, len(rows)))
}

// GET /api/a/staff/:id
func (ctl *StaffController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := repository.FindStaffByID(ctl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return staffNotFoundOr500(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// GET /api/u/staff/me
func (ctl *StaffController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := repository.FindStaffByUserID(ctl.DB.WithContext(c.UserContext()), userID)
	if err != nil {
		return staffNotFoundOr500(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// POST /api/a/staff
func (ctl *StaffController) Create(c *fiber.Ctx) error {
	var req dto.CreateStaffRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m := req.ToModel()
	if err := repository.CreateStaff(ctl.DB.WithContext(c.UserContext()), m); err != nil {
		return helper.WritePGError(c, err)
	}
	log.Printf("[STAFF] created %s %q role=%s", m.StaffID, m.StaffName, m.StaffRole)
	return helper.JsonCreated(c, "staff created", dto.FromModel(m))
}

// PATCH /api/a/staff/:id
func (ctl *StaffController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.UpdateStaffRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	m, err := repository.UpdateStaff(ctl.DB.WithContext(c.UserContext()), id, req.Updates())
	if err != nil {
		return staffNotFoundOr500(c, err)
	}
	return helper.JsonUpdated(c, "staff updated", dto.FromModel(m))
}

// GET /api/u/staff/status
func (ctl *StaffController) StatusBoard(c *fiber.Ctx) error {
	rows, err := repository.StatusBoard(ctl.DB.WithContext(c.UserContext()))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load staff status")
	}
	return helper.JsonOK(c, "ok", dto.ToStatusBoard(rows))
}

func staffNotFoundOr500(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "staff not found")
	}
	return helper.WritePGError(c, err)
}
