package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentas-dashboard/internal/application/auth"
	"github.com/jhoicas/rentas-dashboard/internal/application/dashboard"
	"github.com/jhoicas/rentas-dashboard/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *dashboard.UseCase
	AuthUC      *auth.AuthUseCase
	PDF         ReportGenerator // opcional
	XLSX        ReportGenerator // opcional
	Tokens      *jwt.Signer     // nil = sin autenticación
}

// Router registra las rutas de la API y de la página.
func Router(app *fiber.App, deps RouterDeps) {
	authEnabled := deps.Tokens != nil
	pageHandler := NewPageHandler(deps.DashboardUC)

	api := app.Group("/api")

	// Auth (público)
	if authEnabled && deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		api.Post("/auth/login", authHandler.Login)
		app.Get("/login", pageHandler.Login)
		app.Get("/logout", authHandler.Logout)
	}

	// Dashboard JSON
	dashGroup := api.Group("/dashboard")
	if authEnabled {
		dashGroup.Use(AuthMiddleware(deps.Tokens), RequireRole(auth.RoleAdmin))
	}
	dashHandler := NewDashboardHandler(deps.DashboardUC, deps.PDF, deps.XLSX)
	dashGroup.Get("/", dashHandler.Get)
	dashGroup.Get("/charts/total", dashHandler.TotalChart)
	dashGroup.Get("/charts/malls", dashHandler.MallsChart)
	dashGroup.Get("/summaries", dashHandler.Summaries)
	dashGroup.Post("/refresh", dashHandler.Refresh)
	dashGroup.Get("/report.pdf", dashHandler.ReportPDF)
	dashGroup.Get("/report.xlsx", dashHandler.ReportXLSX)

	// Página HTML
	page := []fiber.Handler{pageHandler.Dashboard}
	if authEnabled {
		page = append([]fiber.Handler{PageAuthMiddleware(deps.Tokens)}, page...)
	}
	app.Get("/dashboard", page...)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard", fiber.StatusFound)
	})
}
