package controller

import (
	"errors"
	"log"
	"time"

	"salonku_backend/internals/configs"
	"salonku_backend/internals/constants"
	catalogRepo "salonku_backend/internals/features/catalog/repository"
	"salonku_backend/internals/features/records/dto"
	"salonku_backend/internals/features/records/repository"
	staffModel "salonku_backend/internals/features/staff/model"
	staffRepo "salonku_backend/internals/features/staff/repository"
	helper "salonku_backend/internals/helpers"
	"salonku_backend/internals/helpers/dbtime"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRecordController struct {
	DB     *gorm.DB
	Policy configs.AttendancePolicy
	Now    func() time.Time
}

func NewServiceRecordController(db *gorm.DB, policy configs.AttendancePolicy) *ServiceRecordController {
	return &ServiceRecordController{DB: db, Policy: policy, Now: time.Now}
}

// callerStaff resolves the staff row of a non-admin caller. Admins get nil.
func (ctl *ServiceRecordController) callerStaff(c *fiber.Ctx) (*staffModel.StaffModel, error) {
	if constants.IsAdmin(helper.GetUserRole(c)) {
		return nil, nil
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	s, err := staffRepo.FindStaffByUserID(ctl.DB.WithContext(c.UserContext()), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusForbidden, "account is not linked to a staff member")
		}
		return nil, err
	}
	return s, nil
}

// GET /api/u/records?date=&from=&to=&staff_id=&payment_method=&page=&per_page=
func (ctl *ServiceRecordController) List(c *fiber.Ctx) error {
	me, err := ctl.callerStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	f := repository.RecordFilter{PaymentMethod: c.Query("payment_method")}
	if f.Date, err = dbtime.ParseDay(c.Query("date")); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.DateFrom, err = dbtime.ParseDay(c.Query("from")); err != nil {
		return helper.FromFiberError(c, err)
	}
	if f.DateTo, err = dbtime.ParseDay(c.Query("to")); err != nil {
		return helper.FromFiberError(c, err)
	}
	switch {
	case me != nil:
		f.StaffID = &me.StaffID
	case c.Query("staff_id") != "":
		id, err := uuid.Parse(c.Query("staff_id"))
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "staff_id is not a valid UUID")
		}
		f.StaffID = &id
	}

	p := helper.ResolvePaging(c, helper.DefaultOpts)
	rows, total, err := repository.ListServiceRecords(ctl.DB.WithContext(c.UserContext()), f, p.Offset(), p.Limit())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load service records")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows), helper.BuildPagination(total, p, len(rows)))
}

// GET /api/u/records/:id
func (ctl *ServiceRecordController) GetByID(c *fiber.Ctx) error {
	me, err := ctl.callerStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	m, err := repository.FindServiceRecordByID(ctl.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return recordNotFoundOr500(c, err)
	}
	if me != nil && m.ServiceRecordStaffID != me.StaffID {
		return helper.JsonError(c, fiber.StatusNotFound, "service record not found")
	}
	return helper.JsonOK(c, "ok", dto.FromModel(m))
}

// POST /api/u/records
func (ctl *ServiceRecordController) Create(c *fiber.Ctx) error {
	me, err := ctl.callerStaff(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var req dto.CreateServiceRecordRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}

	db := ctl.DB.WithContext(c.UserContext())
	staff := me
	if staff == nil {
		if req.StaffID == nil {
			return helper.JsonValidationError(c, map[string][]string{"staff_id": {"required"}})
		}
		id, _ := uuid.Parse(*req.StaffID)
		if staff, err = staffRepo.FindStaffByID(db, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusBadRequest, "staff not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load staff")
		}
	}

	ids, names := req.CatalogKeys()
	entries, err := catalogRepo.FindServicesForLines(db, ids, names)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load service catalog")
	}
	if err := req.ResolveLines(entries); err != nil {
		return writeLineError(c, err)
	}

	var createdBy *uuid.UUID
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		createdBy = &uid
	}
	now := ctl.Now().In(ctl.Policy.Location)
	m, err := req.ToModel(staff.StaffID, staff.StaffName, createdBy, now)
	if err != nil {
		var le *dto.LineError
		if errors.As(err, &le) {
			return writeLineError(c, err)
		}
		if errors.Is(err, dto.ErrNegativeFinal) || errors.Is(err, dto.ErrTotalMismatch) {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := repository.CreateServiceRecord(db, m); err != nil {
		return helper.WritePGError(c, err)
	}
	log.Printf("[RECORDS] %s logged %s for %q final=%.2f %s",
		staff.StaffName, m.ServiceRecordID, m.ServiceRecordClientName, m.ServiceRecordFinal, m.ServiceRecordPaymentMethod)
	return helper.JsonCreated(c, "service record created", dto.FromModel(m))
}

// DELETE /api/a/records/:id
func (ctl *ServiceRecordController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := repository.DeleteServiceRecord(ctl.DB.WithContext(c.UserContext()), id); err != nil {
		return recordNotFoundOr500(c, err)
	}
	return helper.JsonDeleted(c, "service record deleted", fiber.Map{"service_record_id": id})
}

var lineErrorCode = map[error]string{
	dto.ErrUnknownService:   "UNKNOWN_SERVICE",
	dto.ErrAmbiguousService: "AMBIGUOUS_SERVICE",
	dto.ErrUnpricedLine:     "PRICE_REQUIRED",
}

func writeLineError(c *fiber.Ctx, err error) error {
	var le *dto.LineError
	if !errors.As(err, &le) {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	code, ok := lineErrorCode[le.Err]
	if !ok {
		code = "INVALID_SERVICE"
	}
	return helper.JsonErrorCode(c, fiber.StatusUnprocessableEntity, code, err.Error(), fiber.Map{"index": le.Index})
}

func recordNotFoundOr500(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "service record not found")
	}
	return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load service record")
}
