package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/effitech/solar-api/docs"
	appanalytics "github.com/effitech/solar-api/internal/application/analytics"
	"github.com/effitech/solar-api/internal/application/auth"
	"github.com/effitech/solar-api/internal/application/usecase"
	"github.com/effitech/solar-api/internal/domain/repository"
	"github.com/effitech/solar-api/internal/infrastructure/memory"
	infrapdf "github.com/effitech/solar-api/internal/infrastructure/pdf"
	"github.com/effitech/solar-api/internal/infrastructure/postgres"
	httpRouter "github.com/effitech/solar-api/internal/interfaces/http"
	"github.com/effitech/solar-api/pkg/config"
	"github.com/effitech/solar-api/pkg/logger"
)

// @title                       EFFITECH API
// @version                     1.0.0
// @description                 Sistema de Gestión de Energía Solar: usuarios, paneles y métricas del dashboard.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		userRepo  repository.UserRepository
		panelRepo repository.PanelRepository
		txRunner  repository.TxRunner
		db        httpRouter.Pinger
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		userRepo = memory.NewUserRepository(store)
		panelRepo = memory.NewPanelRepository(store)
		txRunner = memory.NewTxRunner(store)
		db = store
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("crear esquema")
		}
		userRepo = postgres.NewUserRepository(pool)
		panelRepo = postgres.NewPanelRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
		db = pool
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	userUC := usecase.NewUserUseCase(userRepo, txRunner, log)
	panelUC := usecase.NewPanelUseCase(panelRepo, userRepo, log)

	// PDF: reporte imprimible del inventario de paneles
	reportUC := usecase.NewPanelReportUseCase(panelRepo, infrapdf.NewMarotoReportGenerator(), log)
	dashboardUC := appanalytics.NewDashboardUseCase()

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Log:         log,
	}, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		PanelUC:     panelUC,
		ReportUC:    reportUC,
		DashboardUC: dashboardUC,
		DB:          db,
		JWTSecret:   cfg.JWT.Secret,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EFFITECH API",
	}))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
