package controller

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"salonku_backend/internals/configs"
	"salonku_backend/internals/features/attendance/dto"
	"salonku_backend/internals/features/attendance/events"
	"salonku_backend/internals/features/attendance/export"
	"salonku_backend/internals/features/attendance/model"
	"salonku_backend/internals/features/attendance/repository"
	"salonku_backend/internals/features/attendance/service"
	helper "salonku_backend/internals/helpers"
	"salonku_backend/internals/helpers/dbtime"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceController struct {
	Store    *repository.GormStore
	Svc      *service.Service
	Recorder events.Recorder
}

func NewAttendanceController(db *gorm.DB, svc *service.Service, recorder events.Recorder) *AttendanceController {
	if recorder == nil {
		recorder = events.LogRecorder{}
	}
	return &AttendanceController{
		Store:    repository.NewGormStore(db),
		Svc:      svc,
		Recorder: recorder,
	}
}

func (ctl *AttendanceController) loc() *time.Location {
	return ctl.Svc.Policy().Location
}

// me resolves the staff row of the authenticated user.
func (ctl *AttendanceController) me(c *fiber.Ctx) (uuid.UUID, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, err
	}
	w, err := ctl.Svc.WorkerForUser(c.UserContext(), userID)
	if err != nil {
		return uuid.Nil, err
	}
	return w.StaffID, nil
}

/* =========================================================
   STAFF
========================================================= */

// POST /api/u/attendance/clock-in
func (ctl *AttendanceController) ClockIn(c *fiber.Ctx) error {
	var req dto.ClockRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	workerID, err := ctl.me(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}

	res, err := ctl.Svc.ClockIn(c.UserContext(), service.ClockInInput{
		WorkerID:   workerID,
		LocationID: req.Location(),
		Positioner: req.Positioner(),
	})
	if err != nil {
		return writeGateError(c, err)
	}
	return helper.JsonCreated(c, "clocked in", dto.FromClockResult(res, ctl.loc()))
}

// POST /api/u/attendance/clock-out
func (ctl *AttendanceController) ClockOut(c *fiber.Ctx) error {
	var req dto.ClockRequest
	if ok, err := helper.BindAndValidate(c, &req); !ok {
		return err
	}
	workerID, err := ctl.me(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}

	res, err := ctl.Svc.ClockOut(c.UserContext(), service.ClockOutInput{
		WorkerID:   workerID,
		LocationID: req.Location(),
		Positioner: req.Positioner(),
	})
	if err != nil {
		return writeGateError(c, err)
	}
	return helper.JsonOK(c, "clocked out", dto.FromClockResult(res, ctl.loc()))
}

// GET /api/u/attendance/today
func (ctl *AttendanceController) Today(c *fiber.Ctx) error {
	workerID, err := ctl.me(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	policy := ctl.Svc.Policy()
	day := dbtime.Today(time.Now(), policy.Location)

	resp := dto.TodayResponse{
		Date:       day,
		CanClockIn: true,
		ShiftStart: configs.FormatClock(policy.ShiftStart),
		ShiftEnd:   configs.FormatClock(policy.ShiftEnd),
	}
	rec, err := ctl.Store.FindRecord(c.UserContext(), model.DayKey(workerID, day))
	switch {
	case err == nil:
		r := dto.FromModel(rec, policy.Location)
		resp.Record = &r
		resp.CanClockIn = false
		resp.ClockedIn = rec.IsOpen()
		resp.CanClockOut = rec.IsOpen()
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "failed to read today's attendance")
	}
	return helper.JsonOK(c, "ok", resp)
}

// GET /api/u/attendance/me?from=&to=
func (ctl *AttendanceController) MyHistory(c *fiber.Ctx) error {
	workerID, err := ctl.me(c)
	if err != nil {
		return ctl.writeErr(c, err)
	}
	from, to, err := dbtime.DayRange(c, time.Now(), ctl.loc(), 30)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	p := helper.ResolvePaging(c, helper.DefaultOpts)

	rows, total, err := ctl.Store.ListRecords(c.UserContext(), repository.RecordFilter{
		StaffID:  &workerID,
		DateFrom: from,
		DateTo:   to,
	}, p.Offset(), p.Limit())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load attendance history")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows, ctl.loc()), helper.BuildPagination(total, p, len(rows)))
}

/* =========================================================
   ADMIN
========================================================= */

// GET /api/a/attendance?date=&worker_id=&open=&page=&per_page=
func (ctl *AttendanceController) List(c *fiber.Ctx) error {
	day, err := dbtime.ParseDay(c.Query("date"))
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	filter := repository.RecordFilter{Date: day}
	if s := strings.TrimSpace(c.Query("worker_id")); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "worker_id is not a valid UUID")
		}
		filter.StaffID = &id
	}
	if open, err := strconv.ParseBool(c.Query("open", "false")); err == nil {
		filter.OpenOnly = open
	}
	p := helper.ResolvePaging(c, helper.AdminOpts)

	rows, total, err := ctl.Store.ListRecords(c.UserContext(), filter, p.Offset(), p.Limit())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load attendance")
	}
	return helper.JsonList(c, "ok", dto.FromModels(rows, ctl.loc()), helper.BuildPagination(total, p, len(rows)))
}

// GET /api/a/attendance/export?from=&to=
func (ctl *AttendanceController) Export(c *fiber.Ctx) error {
	from, to, err := dbtime.DayRange(c, time.Now(), ctl.loc(), 1)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	rows, _, err := ctl.Store.ListRecords(c.UserContext(), repository.RecordFilter{DateFrom: from, DateTo: to}, 0, 0)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load attendance")
	}

	var buf bytes.Buffer
	if err := export.WriteRegister(&buf, rows, ctl.loc()); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to build register")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(export.FileName(from, to))
	return c.Send(buf.Bytes())
}

// POST /api/a/attendance/auto-clock-out
func (ctl *AttendanceController) RunAutoClockOut(c *fiber.Ctx) error {
	report, err := ctl.Svc.AutoClockOut(c.UserContext(), time.Now())
	if err != nil {
		return writeGateError(c, err)
	}
	msg := "auto clock-out done"
	if report.Skipped {
		msg = "shift has not ended yet, nothing to close"
	}
	return helper.JsonOK(c, msg, report)
}

// POST /api/a/attendance/staff/:staff_id/clock-out
// Closes a worker's session for today without a geofence check.
func (ctl *AttendanceController) ForceClockOut(c *fiber.Ctx) error {
	staffID, err := helper.ParseUUIDParam(c, "staff_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := ctl.Svc.ClockOut(c.UserContext(), service.ClockOutInput{WorkerID: staffID})
	if err != nil {
		if errors.Is(err, service.ErrWorkerUnknown) {
			return helper.JsonError(c, fiber.StatusNotFound, "staff not found")
		}
		return writeGateError(c, err)
	}
	return helper.JsonOK(c, "clocked out", dto.FromClockResult(res, ctl.loc()))
}

// GET /api/a/attendance/events?staff_id=&outcome=&limit=
func (ctl *AttendanceController) Events(c *fiber.Ctx) error {
	f := events.Filter{
		StaffID: strings.TrimSpace(c.Query("staff_id")),
		Outcome: strings.TrimSpace(c.Query("outcome")),
	}
	if f.Outcome != "" && f.Outcome != events.OutcomeAccepted && f.Outcome != events.OutcomeRejected {
		return helper.JsonError(c, fiber.StatusBadRequest, "outcome must be accepted or rejected")
	}
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	timeout := ctl.Svc.Policy().StoreTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
	defer cancel()
	list, err := ctl.Recorder.Recent(ctx, f, limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "failed to read attendance events")
	}
	return helper.JsonOK(c, "ok", list)
}

func (ctl *AttendanceController) writeErr(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	return writeGateError(c, err)
}
