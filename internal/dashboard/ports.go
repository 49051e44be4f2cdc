// Package dashboard contiene el comportamiento del lado cliente del panel web de EFFITECH:
// sesión, guardas de ruta, formularios de autenticación y las pantallas de gestión de
// paneles y usuarios. La presentación queda fuera: las pantallas exponen su estado y
// notifican el resultado de cada acción a través de puertos.
package dashboard

import (
	"context"
	"errors"

	"github.com/effitech/solar-api/internal/application/dto"
)

// Errores devueltos por las acciones de pantalla. El mensaje al usuario ya se envió al Notifier.
var (
	ErrCancelled  = errors.New("dashboard: acción cancelada por el usuario")
	ErrInFlight   = errors.New("dashboard: ya hay una operación en curso para este elemento")
	ErrValidation = errors.New("dashboard: datos de formulario inválidos")
)

// Notifier muestra toasts de éxito o error.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer pide confirmación antes de una acción destructiva.
type Confirmer interface {
	Confirm(prompt string) bool
}

// TokenStore persiste el token de acceso entre ejecuciones.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// AuthAPI operaciones de autenticación del cliente HTTP.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*dto.TokenResponse, error)
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.TokenResponse, error)
	Me(ctx context.Context) (*dto.UserResponse, error)
	SetToken(token string)
}

// PanelAPI operaciones que usa la pantalla de paneles.
type PanelAPI interface {
	ListPanels(ctx context.Context) ([]dto.PanelResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	CreatePanel(ctx context.Context, in dto.CreatePanelRequest) (*dto.PanelResponse, error)
	UpdatePanel(ctx context.Context, id string, in dto.UpdatePanelRequest) (*dto.PanelResponse, error)
	DeletePanel(ctx context.Context, id string) error
	AssignPanel(ctx context.Context, id, userID string) (*dto.PanelResponse, error)
	UnassignPanel(ctx context.Context, id string) (*dto.PanelResponse, error)
}

// UserAPI operaciones que usa la pantalla de usuarios.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	UpdateUserRole(ctx context.Context, id, role string) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

// ViewAPI datos de las vistas de solo lectura.
type ViewAPI interface {
	Overview(ctx context.Context) (*dto.OverviewResponse, error)
	Energy(ctx context.Context) (*dto.EnergyResponse, error)
	Analytics(ctx context.Context) (*dto.AnalyticsResponse, error)
}
