package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/effitech/solar-api/internal/application/analytics"
	"github.com/effitech/solar-api/internal/application/auth"
	"github.com/effitech/solar-api/internal/application/usecase"
	"github.com/effitech/solar-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	PanelUC     *usecase.PanelUseCase
	ReportUC    *usecase.PanelReportUseCase
	DashboardUC *appanalytics.DashboardUseCase
	DB          Pinger
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	general := NewGeneralHandler(deps.DB)
	api.Get("/", general.Root)
	api.Get("/health", general.Health)

	// Autenticado: JWT + usuario recargado del almacenamiento
	authenticated := []fiber.Handler{AuthMiddleware(deps.JWTSecret), CurrentUser(deps.UserUC)}
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", append(authenticated, authHandler.Me)...)

	// Users (solo admin)
	users := api.Group("/users", append(authenticated, adminOnly)...)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.UpdateRole)
	users.Delete("/:id", userHandler.Delete)

	// Panels: lectura para cualquier usuario, escritura solo admin
	panels := api.Group("/panels", authenticated...)
	panelHandler := NewPanelHandler(deps.PanelUC, deps.ReportUC)
	panels.Get("/", panelHandler.List)
	panels.Post("/", adminOnly, panelHandler.Create)
	panels.Get("/summary", adminOnly, panelHandler.Summary)
	panels.Get("/report", adminOnly, panelHandler.Report)
	panels.Get("/:id", panelHandler.GetByID)
	panels.Put("/:id", adminOnly, panelHandler.Update)
	panels.Delete("/:id", adminOnly, panelHandler.Delete)
	panels.Post("/:id/assign/:userId", adminOnly, panelHandler.Assign)
	panels.Post("/:id/unassign", adminOnly, panelHandler.Unassign)

	// Dashboard (vistas de solo lectura)
	dashboard := api.Group("/dashboard", authenticated...)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/overview", dashboardHandler.Overview)
	dashboard.Get("/energy", dashboardHandler.Energy)
	dashboard.Get("/analytics", dashboardHandler.Analytics)
}
