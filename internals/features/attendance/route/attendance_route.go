package route

import (
	attendanceCtrl "salonku_backend/internals/features/attendance/controller"

	"github.com/gofiber/fiber/v2"
)

// AttendanceUserRoutes is mounted under /api/u.
func AttendanceUserRoutes(r fiber.Router, ctl *attendanceCtrl.AttendanceController) {
	g := r.Group("/attendance")
	g.Post("/clock-in", ctl.ClockIn)
	g.Post("/clock-out", ctl.ClockOut)
	g.Get("/today", ctl.Today)
	g.Get("/me", ctl.MyHistory)
}

// AttendanceAdminRoutes is mounted under /api/a.
func AttendanceAdminRoutes(r fiber.Router, ctl *attendanceCtrl.AttendanceController) {
	g := r.Group("/attendance")
	g.Get("/", ctl.List)
	g.Get("/export", ctl.Export)
	g.Get("/events", ctl.Events)
	g.Post("/auto-clock-out", ctl.RunAutoClockOut)
	g.Post("/staff/:staff_id/clock-out", ctl.ForceClockOut)
}
