package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/domain"
)

// LocalError guarda el error interno para que RequestLogger lo registre.
const LocalError = "error"

// fail responde con el código y detalle indicados.
func fail(c *fiber.Ctx, status int, code, detail string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Detail: detail})
}

// writeError traduce errores de dominio a status HTTP + ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", ve.Message)
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusBadRequest, "EMAIL_EXISTS", "El correo electrónico ya está registrado")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "Correo o contraseña incorrectos")
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "USER_NOT_FOUND", "Usuario no encontrado")
	case errors.Is(err, domain.ErrPanelNotFound):
		return fail(c, fiber.StatusNotFound, "PANEL_NOT_FOUND", "Panel no encontrado")
	case errors.Is(err, domain.ErrNothingToUpdate):
		return fail(c, fiber.StatusBadRequest, "NOTHING_TO_UPDATE", "No hay datos para actualizar")
	case errors.Is(err, domain.ErrSelfDemotion):
		return fail(c, fiber.StatusBadRequest, "SELF_DEMOTION", "No puede quitarse el rol de administrador a sí mismo")
	case errors.Is(err, domain.ErrSelfDeletion):
		return fail(c, fiber.StatusBadRequest, "SELF_DELETION", "No puede eliminarse a sí mismo")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "No tiene acceso a este panel")
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "No se pudo validar las credenciales")
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
	default:
		c.Locals(LocalError, err)
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", "Error interno del servidor")
	}
}

func invalidBody(c *fiber.Ctx) error {
	return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido")
}
