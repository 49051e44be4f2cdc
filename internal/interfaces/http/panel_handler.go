package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/application/usecase"
)

// PanelHandler maneja las peticiones HTTP de paneles solares.
type PanelHandler struct {
	uc     *usecase.PanelUseCase
	report *usecase.PanelReportUseCase
}

// NewPanelHandler construye el handler.
func NewPanelHandler(uc *usecase.PanelUseCase, report *usecase.PanelReportUseCase) *PanelHandler {
	return &PanelHandler{uc: uc, report: report}
}

// List godoc
// @Summary      Listar paneles
// @Description  Un admin ve todos; un usuario solo los asignados a él.
// @Tags         panels
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PanelResponse
// @Router       /api/panels [get]
func (h *PanelHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), GetCurrentUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear panel
// @Tags         panels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePanelRequest  true  "model, location, capacity"
// @Success      201   {object}  dto.PanelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/panels [post]
func (h *PanelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePanelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener panel por ID
// @Tags         panels
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del panel"
// @Success      200  {object}  dto.PanelResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/panels/{id} [get]
func (h *PanelHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetCurrentUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar panel (parcial)
// @Tags         panels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del panel"
// @Param        body  body  dto.UpdatePanelRequest  true  "campos a modificar"
// @Success      200   {object}  dto.PanelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/panels/{id} [put]
func (h *PanelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePanelRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar panel
// @Tags         panels
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del panel"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/panels/{id} [delete]
func (h *PanelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Panel eliminado correctamente"})
}

// Assign godoc
// @Summary      Asignar panel a un usuario
// @Description  Si el panel ya tenía dueño, se reemplaza.
// @Tags         panels
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del panel"
// @Param        userId  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.PanelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/panels/{id}/assign/{userId} [post]
func (h *PanelHandler) Assign(c *fiber.Ctx) error {
	out, err := h.uc.Assign(c.Context(), c.Params("id"), c.Params("userId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Unassign godoc
// @Summary      Desasignar panel
// @Tags         panels
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del panel"
// @Success      200  {object}  dto.PanelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/panels/{id}/unassign [post]
func (h *PanelHandler) Unassign(c *fiber.Ctx) error {
	out, err := h.uc.Unassign(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totales de paneles
// @Tags         panels
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PanelSummaryResponse
// @Router       /api/panels/summary [get]
func (h *PanelHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF del inventario de paneles
// @Tags         panels
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/panels/report [get]
func (h *PanelHandler) Report(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.report.Download(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
