package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/effitech/solar-api/internal/application/analytics"
)

// DashboardHandler sirve los datos de las vistas de solo lectura.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview godoc
// @Summary      KPIs, estado del sistema y actividad reciente
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OverviewResponse
// @Router       /api/dashboard/overview [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	return c.JSON(h.uc.Overview(c.Context()))
}

// Energy godoc
// @Summary      Fuentes de energía y producción del día
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EnergyResponse
// @Router       /api/dashboard/energy [get]
func (h *DashboardHandler) Energy(c *fiber.Ctx) error {
	return c.JSON(h.uc.Energy(c.Context()))
}

// Analytics godoc
// @Summary      Producción vs consumo mensual
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AnalyticsResponse
// @Router       /api/dashboard/analytics [get]
func (h *DashboardHandler) Analytics(c *fiber.Ctx) error {
	return c.JSON(h.uc.Analytics(c.Context()))
}
