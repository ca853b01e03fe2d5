package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonku_backend/internals/configs"
	database "salonku_backend/internals/databases"
	"salonku_backend/internals/features/attendance/events"
	attendanceModel "salonku_backend/internals/features/attendance/model"
	attendanceRepo "salonku_backend/internals/features/attendance/repository"
	"salonku_backend/internals/features/attendance/scheduler"
	"salonku_backend/internals/features/attendance/service"
	catalogModel "salonku_backend/internals/features/catalog/model"
	inventoryModel "salonku_backend/internals/features/inventory/model"
	locationModel "salonku_backend/internals/features/locations/model"
	recordModel "salonku_backend/internals/features/records/model"
	staffModel "salonku_backend/internals/features/staff/model"
	helper "salonku_backend/internals/helpers"
	"salonku_backend/internals/helpers/mailer"
	middlewares "salonku_backend/internals/middlewares"
	routes "salonku_backend/internals/route"
	"salonku_backend/internals/seeds"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/robfig/cron/v3"
)

func main() {
	configs.LoadEnv()

	policy, err := configs.LoadAttendancePolicy()
	if err != nil {
		log.Fatalf("❌ attendance policy: %v", err)
	}
	log.Printf("[ATTENDANCE] zone=%s shift=%s-%s", policy.Location, configs.FormatClock(policy.ShiftStart), configs.FormatClock(policy.ShiftEnd))

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromFiberError(c, err)
		},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app, policy.Location.String(), configs.GetEnvDuration("REQUEST_TIMEOUT", 15*time.Second))

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	database.AutoMigrate(
		&locationModel.LocationModel{},
		&staffModel.StaffModel{},
		&attendanceModel.AttendanceRecordModel{},
		&catalogModel.ServiceCatalogModel{},
		&recordModel.ServiceRecordModel{},
		&inventoryModel.InventoryItemModel{},
	)
	if configs.GetEnvBool("SEED_ON_START", false) {
		seeds.RunAllSeeds(database.DB)
	}

	// audit trail: Mongo when configured, log otherwise
	var recorder events.Recorder = events.LogRecorder{}
	if mdb := database.ConnectMongo(); mdb != nil {
		mr := events.NewMongoRecorder(mdb)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mr.EnsureIndexes(ctx)
		cancel()
		recorder = mr
	}

	gate := service.New(attendanceRepo.NewGormStore(database.DB), recorder, policy)

	// ⏱ auto clock-out after DB is ready
	var sweeper *cron.Cron
	if policy.AutoClockOutEnabled {
		var sender mailer.Sender
		if m := mailer.NewFromEnv(); m != nil {
			sender = m
		}
		sweeper, err = scheduler.StartAutoClockOutCron(gate, policy, sender, configs.GetEnv("ADMIN_EMAIL"))
		if err != nil {
			log.Fatalf("❌ auto clock-out scheduler: %v", err)
		}
	} else {
		log.Println("[AUTO-CLOCKOUT] disabled")
	}

	routes.SetupRoutes(app, database.DB, routes.Deps{
		Policy:   policy,
		Gate:     gate,
		Recorder: recorder,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: stop the sweep, drain HTTP, close pools
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if sweeper != nil {
		<-sweeper.Stop().Done()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	database.Close()
	database.DisconnectMongo(ctx)
}
