package routes

import (
	"log"
	"time"

	"salonku_backend/internals/configs"
	"salonku_backend/internals/constants"
	attendanceCtrl "salonku_backend/internals/features/attendance/controller"
	"salonku_backend/internals/features/attendance/events"
	attendanceRoute "salonku_backend/internals/features/attendance/route"
	"salonku_backend/internals/features/attendance/service"
	catalogRoute "salonku_backend/internals/features/catalog/route"
	inventoryRoute "salonku_backend/internals/features/inventory/route"
	locationRoute "salonku_backend/internals/features/locations/route"
	recordRoute "salonku_backend/internals/features/records/route"
	staffRoute "salonku_backend/internals/features/staff/route"
	"salonku_backend/internals/middlewares"
	authMiddleware "salonku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

// Deps are built once in main and shared by the HTTP layer and the scheduler.
type Deps struct {
	Policy   configs.AttendancePolicy
	Gate     *service.Service
	Recorder events.Recorder
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	startTime = time.Now()

	BaseRoutes(app, db)

	authJWT := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	// ===================== GROUPS =====================
	log.Println("[INFO] Setting up PRIVATE (staff + admin) group...")
	private := app.Group("/api/u",
		authJWT,
		authMiddleware.OnlyRoles("Forbidden: unknown role", constants.AllRoles...),
	)

	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authJWT,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("the admin area"), constants.AdminOnly...),
	)

	// ===================== MOUNT ROUTES =====================
	attendance := attendanceCtrl.NewAttendanceController(db, deps.Gate, deps.Recorder)

	log.Println("[INFO] Mounting Attendance routes...")
	private.Use("/attendance/clock-in", middlewares.ClockRateLimiter())
	private.Use("/attendance/clock-out", middlewares.ClockRateLimiter())
	attendanceRoute.AttendanceUserRoutes(private, attendance)
	attendanceRoute.AttendanceAdminRoutes(admin, attendance)

	log.Println("[INFO] Mounting Location routes...")
	locationRoute.LocationUserRoutes(private, db)
	locationRoute.LocationAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Staff routes...")
	staffRoute.StaffUserRoutes(private, db)
	staffRoute.StaffAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Service catalog routes...")
	catalogRoute.ServiceCatalogUserRoutes(private, db)
	catalogRoute.ServiceCatalogAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Service record routes...")
	recordRoute.ServiceRecordUserRoutes(private, db, deps.Policy)
	recordRoute.ServiceRecordAdminRoutes(admin, db, deps.Policy)

	log.Println("[INFO] Mounting Inventory routes...")
	inventoryRoute.InventoryUserRoutes(private, db)
	inventoryRoute.InventoryAdminRoutes(admin, db)
}
