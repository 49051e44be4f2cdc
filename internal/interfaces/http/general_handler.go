package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/effitech/solar-api/internal/application/dto"
)

// Version versión publicada de la API.
const Version = "1.0.0"

// Pinger comprueba la conexión con el almacenamiento (pgxpool.Pool o memory.Store).
type Pinger interface {
	Ping(ctx context.Context) error
}

// GeneralHandler rutas informativas.
type GeneralHandler struct {
	db Pinger
}

// NewGeneralHandler construye el handler.
func NewGeneralHandler(db Pinger) *GeneralHandler {
	return &GeneralHandler{db: db}
}

// Root godoc
// @Summary      Información de la API
// @Tags         general
// @Produce      json
// @Success      200  {object}  dto.RootResponse
// @Router       /api/ [get]
func (h *GeneralHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.RootResponse{
		Message: "EFFITECH API - Sistema de Gestión de Energía Solar",
		Version: Version,
		Status:  "online",
	})
}

// Health godoc
// @Summary      Estado del servidor
// @Tags         general
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /api/health [get]
func (h *GeneralHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	database := "connected"
	if h.db == nil || h.db.Ping(ctx) != nil {
		database = "disconnected"
	}
	return c.JSON(dto.HealthResponse{
		Status:    "healthy",
		Database:  database,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
