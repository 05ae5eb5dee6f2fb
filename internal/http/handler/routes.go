package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"meterportal/internal/http/middleware"
	"meterportal/internal/service"
)

// Services bundles what the routes are served from.
type Services struct {
	Access     service.AccessService
	Portal     service.PortalService
	Dashboards service.DashboardService
	Uploads    service.UploadService
	Sessions   middleware.SessionParser
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse the request, call a service, render the result.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Called straight from the browser sign-in page.
	app.Use("/portal", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: fiber.MethodGet,
		AllowHeaders: "Content-Type,Authorization",
		MaxAge:       3600,
	}))
	app.Get("/portal/resolve-participants", ResolveParticipants(svc.Access))
	app.Post("/auth/session", CreateSession(svc.Access))

	api := app.Group("/api", middleware.RequireSession(svc.Sessions, Unauthorized))
	api.Get("/participants", ListGrants(svc.Access))
	api.Get("/portal", GetPortal(svc.Portal))
	api.Get("/dashboards", ListDashboards(svc.Dashboards))
	api.Get("/participants/:env/:number", GetParticipant(svc.Portal))
	api.Post("/participants/:env/:number/uploads", UploadFiles(svc.Uploads))
	api.Get("/participants/:env/:number/objects", GetObject(svc.Uploads))
}
