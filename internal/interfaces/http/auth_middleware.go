package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/effitech/solar-api/internal/domain/entity"
	"github.com/effitech/solar-api/pkg/jwt"
)

// Locals keys para UserID, Role y el usuario cargado en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalUser   = "current_user"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "No autenticado")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", "token vacío")
		}
		userID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpired) {
				return fail(c, fiber.StatusUnauthorized, "TOKEN_EXPIRED", "La sesión ha expirado")
			}
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", "No se pudo validar las credenciales")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// userLoader es lo mínimo que CurrentUser necesita; lo implementa *usecase.UserUseCase.
type userLoader interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// CurrentUser recarga el usuario del token en cada petición, de modo que un cambio de rol
// o una eliminación aplican de inmediato. Debe usarse DESPUÉS de AuthMiddleware.
func CurrentUser(loader userLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "No autenticado")
		}
		user, err := loader.GetByID(c.Context(), userID)
		if err != nil {
			return writeError(c, err)
		}
		if user == nil {
			return fail(c, fiber.StatusUnauthorized, "USER_NOT_FOUND", "Usuario no encontrado")
		}
		c.Locals(LocalUser, user)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Sin rol en el contexto responde 401.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_ROLE", "el token no contiene rol")
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "No tiene permisos de administrador")
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol vigente (el del usuario recargado si CurrentUser corrió).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetCurrentUser devuelve el usuario cargado por CurrentUser.
func GetCurrentUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}
