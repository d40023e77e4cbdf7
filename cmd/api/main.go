package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/rentas-dashboard/docs"
	"github.com/jhoicas/rentas-dashboard/internal/application/auth"
	"github.com/jhoicas/rentas-dashboard/internal/application/dashboard"
	infrapdf "github.com/jhoicas/rentas-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/source"
	infraxlsx "github.com/jhoicas/rentas-dashboard/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/rentas-dashboard/internal/interfaces/http"
	"github.com/jhoicas/rentas-dashboard/pkg/config"
	"github.com/jhoicas/rentas-dashboard/pkg/jwt"
	"github.com/jhoicas/rentas-dashboard/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		App:   cfg.App.Name,
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("data_source", cfg.Source.Kind).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	repo, closeRepo, err := source.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("fuente de datos")
	}
	defer closeRepo()

	// Snapshot: primera lectura en segundo plano; la página muestra "Loading..." mientras tanto.
	loader := dashboard.NewLoader(repo, dashboard.LoaderConfig{
		Timeout:  cfg.Source.FetchTimeout,
		Location: cfg.App.Location(),
	}, log.Named("loader"))
	loader.Start(ctx)

	if cfg.Source.RefreshSchedule != "" {
		c, err := loader.ScheduleRefresh(ctx, cfg.Source.RefreshSchedule)
		if err != nil {
			log.Fatal().Err(err).Msg("REFRESH_SCHEDULE")
		}
		defer c.Stop()
		log.Info().Str("schedule", cfg.Source.RefreshSchedule).Msg("refresco programado activo")
	}

	dashboardUC := dashboard.NewUseCase(loader, time.Now, cfg.App.CurrencySymbol)
	var tokens *jwt.Signer
	if cfg.JWT.Secret != "" {
		tokens, err = jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
		if err != nil {
			log.Fatal().Err(err).Msg("JWT")
		}
	} else {
		log.Warn().Msg("JWT_SECRET vacío: API y página sin autenticación")
	}
	authUC := auth.NewAuthUseCase(
		auth.AdminCredentials{Email: cfg.Admin.Email, PasswordHash: cfg.Admin.PasswordHash},
		tokens,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Source.FetchTimeout + 10*time.Second, // /refresh espera la lectura
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI: http://localhost:<port>/docs
	docs.Mount(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  cfg.App.Name,
			"snapshot": loader.State().Status,
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		PDF:         infrapdf.NewReportGenerator(cfg.App.CurrencySymbol, cfg.App.PublicURL),
		XLSX:        infraxlsx.NewWorkbookGenerator(),
		Tokens:      tokens,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
