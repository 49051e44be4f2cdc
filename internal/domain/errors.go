package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrPanelNotFound      = errors.New("panel no encontrado")
	ErrEmailAlreadyExists = errors.New("el correo electrónico ya está registrado")
	ErrInvalidCredentials = errors.New("correo o contraseña incorrectos")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrNothingToUpdate    = errors.New("no hay datos para actualizar")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrSelfDemotion       = errors.New("no puede quitarse el rol de administrador a sí mismo")
	ErrSelfDeletion       = errors.New("no puede eliminarse a sí mismo")
)

// ValidationError describe un dato de entrada inválido con un mensaje apto para el usuario.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite comparar contra ErrInvalidInput.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
