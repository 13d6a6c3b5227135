package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/gofiber/swagger"

	_ "github.com/tree-d/kiosk_api/docs"
	"github.com/tree-d/kiosk_api/services/handlers"
	"github.com/tree-d/kiosk_api/shared"
)

type HttpService struct {
	context.DefaultService

	scanSvc      *ScanService
	analyticsSvc *AnalyticsService
	authSvc      *AuthService
	exportSvc    *ExportService
	rateLimitSvc *RateLimitService

	port int
	app  *fiber.App
}

// authGuard is what the auth middleware service exposes; kept structural so
// the registry lookup stays one-directional.
type authGuard interface {
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.scanSvc = svc.Service(SCAN_SVC).(*ScanService)
	svc.analyticsSvc = svc.Service(ANALYTICS_SVC).(*AnalyticsService)
	svc.authSvc = svc.Service(AUTH_SVC).(*AuthService)
	svc.exportSvc, _ = svc.Service(EXPORT_SVC).(*ExportService)
	svc.rateLimitSvc, _ = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)

	guard, ok := svc.Service("auth").(authGuard)
	if !ok {
		return errors.New("auth middleware not registered")
	}

	scanHandler := handlers.NewScanHandler(svc.scanSvc)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.analyticsSvc)
	authHandler := handlers.NewAuthHandler(svc.authSvc)

	config := fiber.Config{
		ErrorHandler: svc.handleError,
	}

	app := fiber.New(config)
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	if monitoringSvc, ok := svc.Service(MONITORING_SVC).(*MonitoringService); ok {
		app.Use(MonitoringMiddleware(monitoringSvc))
	}

	if svc.rateLimitSvc != nil {
		app.Use(svc.rateLimitSvc.IPRateLimit())
	}

	// Validation endpoints
	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", fiberSwagger.HandlerDefault)

	v1 := app.Group("/api/v1")

	v1.Get("/ping", svc.ping)
	v1.Get("/time", scanHandler.GetTime)

	if svc.rateLimitSvc != nil {
		v1.Post("/scan", svc.rateLimitSvc.ScanRateLimit(), scanHandler.PostScan)
		v1.Post("/auth/login", svc.rateLimitSvc.RateLimit("admin_login"), authHandler.Login)
	} else {
		v1.Post("/scan", scanHandler.PostScan)
		v1.Post("/auth/login", authHandler.Login)
	}

	v1.Get("/devices/:deviceId/snapshot", scanHandler.GetSnapshot)
	v1.Get("/counters", analyticsHandler.GetCounters)

	analytics := v1.Group("/analytics")
	analytics.Get("/completion-rates", analyticsHandler.GetCompletionRates)
	analytics.Get("/summary", analyticsHandler.GetSummary)
	analytics.Get("/interactions", analyticsHandler.GetInteractions)

	adminHandler := handlers.NewAdminHandler(svc.analyticsSvc, svc.exportSvc)

	admin := v1.Group("/admin", guard.RequiredAuth(), guard.RequireRole(shared.RoleAdmin))
	admin.Post("/migrate/language-counters", adminHandler.MigrateLanguageCounters)
	if svc.exportSvc != nil {
		if svc.rateLimitSvc != nil {
			admin.Post("/export/interactions", svc.rateLimitSvc.RateLimit("admin_export"), adminHandler.ExportInteractions)
		} else {
			admin.Post("/export/interactions", adminHandler.ExportInteractions)
		}
	}

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.app = app

	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")

	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	return shared.ResponseInternalError(c, err)
}
