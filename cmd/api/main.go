package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"clinic-portal/internal/client/permission"
	"clinic-portal/internal/handler"
	"clinic-portal/internal/middleware"
	"clinic-portal/internal/model"
	"clinic-portal/internal/repository"
	"clinic-portal/internal/service"
	"clinic-portal/internal/ws"
	"clinic-portal/pkg/config"
	"clinic-portal/pkg/database"
	"clinic-portal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
)

func main() {
	// 1. Load Config
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	if _, err := logger.New(cfg.Logger.Level); err != nil {
		slog.Error("init logger", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		slog.Error("connect database", "error", err)
		os.Exit(1)
	}
	// Auto Migrate (use a dedicated migration tool once the schema grows)
	if err := db.AutoMigrate(&model.StorageEntry{}, &model.Job{}, &model.Applicant{}, &model.Lead{}, &model.Offering{}); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	// 3. Seed default offerings
	if err := repository.SeedDefaults(ctx, db); err != nil {
		slog.Warn("seed default offerings", "error", err)
	}

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)

	// 5. Dependency Injection (Wiring Layers)
	storageRepo := repository.NewStorageRepo(db)
	statsRepo := repository.NewStatsRepo(db)

	permClient := permission.NewClient(cfg.Permissions.BaseURL, permission.Paths{
		Owner:       cfg.Permissions.OwnerPath,
		Agent:       cfg.Permissions.AgentPath,
		DoctorStaff: cfg.Permissions.DoctorStaffPath,
	}, cfg.Permissions.Timeout)

	permService := service.NewPermissionService(permClient)
	dashService := service.NewDashboardService(statsRepo, storageRepo, wsHub, cfg.Layout.HistoryLimit,
		service.WithMaxEditors(cfg.Layout.MaxEditors))

	sessions := session.New()

	permHandler := handler.NewPermissionHandler(permService)
	sessionHandler := handler.NewSessionHandler(sessions)
	dashHandler := handler.NewDashboardHandler(dashService)
	layoutHandler := handler.NewLayoutHandler(dashService)
	wsHandler := handler.NewWSHandler(wsHub)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Clinic Portal v1.0",
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Session-scoped token storage
	api.Post("/session/token", sessionHandler.StoreToken)
	api.Delete("/session/token/:key", sessionHandler.RemoveToken)

	// ============ PROTECTED ROUTES ============
	// All routes below require a token
	protected := api.Group("", middleware.Identity(sessions))

	protected.Get("/permissions/:module", permHandler.GetPermissions)
	protected.Get("/dashboard/stats", middleware.RequireCapability(permService, "dashboard", model.ActionRead), dashHandler.GetDashboardStats)

	// Layout editor, one per browser device
	device := middleware.DeviceCookie(cfg.HTTP.DeviceCookie)
	lay := protected.Group("/layout", device)
	lay.Get("/", layoutHandler.GetLayout)
	lay.Post("/edit", layoutHandler.EnterEdit)
	lay.Post("/save", layoutHandler.Save)
	lay.Post("/cancel", layoutHandler.Cancel)
	lay.Post("/drag-start", layoutHandler.DragStart)
	lay.Post("/drag-end", layoutHandler.DragEnd)
	lay.Post("/visibility", layoutHandler.ToggleVisibility)
	lay.Post("/undo", layoutHandler.Undo)
	lay.Post("/redo", layoutHandler.Redo)
	lay.Post("/keys", layoutHandler.KeyStroke)
	lay.Put("/grid-size", layoutHandler.SetGridSize)
	lay.Get("/export", layoutHandler.Export)
	lay.Post("/import", layoutHandler.Import)
	lay.Post("/reset", layoutHandler.Reset)

	// WebSocket Route
	protected.Use("/ws", device, wsHandler.Upgrade)
	protected.Get("/ws", wsHandler.Stream())

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.HTTP.Port); err != nil {
			slog.Error("listen", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}
