package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/pkg/logger"
)

// AppOptions configuración del servidor Fiber.
type AppOptions struct {
	Name        string
	CORSOrigins string
	Log         *logger.Logger
}

// NewApp construye la aplicación Fiber con middlewares comunes y las rutas de la API.
func NewApp(opts AppOptions, deps RouterDeps) *fiber.App {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	origins := opts.CORSOrigins
	if origins == "" {
		origins = "*"
	}

	// Immutable: params y body se copian; los repositorios en memoria guardan los strings.
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	Router(app, deps)
	return app
}

// errorHandler convierte los *fiber.Error (404 de ruta, 405, etc.) en ErrorResponse.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	detail := "Error interno del servidor"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		detail = fe.Message
	}
	return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Detail: detail})
}
