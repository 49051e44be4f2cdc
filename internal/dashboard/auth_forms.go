package dashboard

import (
	"context"
	"unicode/utf8"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/client"
)

// MinPasswordLength longitud mínima de contraseña en registro y cambio de contraseña.
const MinPasswordLength = 6

// Mensajes de las pantallas de autenticación y configuración.
const (
	MsgWelcomeBack        = "¡Bienvenido de nuevo!"
	MsgLoginFailed        = "Error al iniciar sesión. Verifica tus credenciales."
	MsgPasswordsMismatch  = "Las contraseñas no coinciden"
	MsgPasswordTooShort   = "La contraseña debe tener al menos 6 caracteres"
	MsgAccountCreated     = "¡Cuenta creada exitosamente!"
	MsgRegisterFailed     = "Error al crear la cuenta"
	MsgProfileUpdated     = "Perfil actualizado exitosamente"
	MsgPasswordChanged    = "Contraseña cambiada exitosamente"
	MsgPreferencesUpdated = "Preferencias actualizadas"
)

// LoginForm campos de la pantalla de login.
type LoginForm struct {
	Email    string
	Password string
}

// RegisterForm campos de la pantalla de registro.
type RegisterForm struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthScreens pantallas de login y registro.
type AuthScreens struct {
	session *SessionStore
	notify  Notifier
}

// NewAuthScreens construye las pantallas.
func NewAuthScreens(session *SessionStore, notify Notifier) *AuthScreens {
	return &AuthScreens{session: session, notify: notify}
}

// Login devuelve la ruta a la que navegar. Si falla, se queda en /login.
func (a *AuthScreens) Login(ctx context.Context, form LoginForm) (string, error) {
	if err := a.session.Login(ctx, form.Email, form.Password); err != nil {
		a.notify.Error(MsgLoginFailed)
		return PathLogin, err
	}
	a.notify.Success(MsgWelcomeBack)
	return PathDashboard, nil
}

// Register valida el formulario, crea la cuenta y devuelve la ruta a la que navegar.
func (a *AuthScreens) Register(ctx context.Context, form RegisterForm) (string, error) {
	if msg := validateNewPassword(form.Password, form.ConfirmPassword); msg != "" {
		a.notify.Error(msg)
		return PathRegister, ErrValidation
	}
	err := a.session.Register(ctx, dto.RegisterRequest{
		Email:    form.Email,
		Password: form.Password,
		FullName: form.FullName,
	})
	if err != nil {
		a.notify.Error(client.DetailOr(err, MsgRegisterFailed))
		return PathRegister, err
	}
	a.notify.Success(MsgAccountCreated)
	return PathDashboard, nil
}

// validateNewPassword devuelve el mensaje de error o "" si la contraseña es aceptable.
func validateNewPassword(password, confirm string) string {
	if password != confirm {
		return MsgPasswordsMismatch
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return MsgPasswordTooShort
	}
	return ""
}

// Preferencias de notificación de la pantalla de configuración.
const (
	PrefEmailAlerts        = "email_alerts"
	PrefPerformanceReports = "performance_reports"
	PrefSystemUpdates      = "system_updates"
	PrefMaintenanceAlerts  = "maintenance_alerts"
)

// PasswordChangeForm formulario de cambio de contraseña.
type PasswordChangeForm struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// Settings pantalla de configuración. Los cambios son locales: la API no expone
// endpoints de perfil ni de preferencias.
type Settings struct {
	notify      Notifier
	preferences map[string]bool
}

// NewSettings construye la pantalla con las preferencias por defecto.
func NewSettings(notify Notifier) *Settings {
	return &Settings{
		notify: notify,
		preferences: map[string]bool{
			PrefEmailAlerts:        true,
			PrefPerformanceReports: true,
			PrefSystemUpdates:      false,
			PrefMaintenanceAlerts:  true,
		},
	}
}

// UpdateProfile confirma la actualización del perfil.
func (s *Settings) UpdateProfile() {
	s.notify.Success(MsgProfileUpdated)
}

// ChangePassword valida coincidencia y longitud.
func (s *Settings) ChangePassword(form PasswordChangeForm) error {
	if msg := validateNewPassword(form.NewPassword, form.ConfirmPassword); msg != "" {
		s.notify.Error(msg)
		return ErrValidation
	}
	s.notify.Success(MsgPasswordChanged)
	return nil
}

// TogglePreference invierte una preferencia y devuelve el nuevo valor.
func (s *Settings) TogglePreference(key string) bool {
	s.preferences[key] = !s.preferences[key]
	s.notify.Success(MsgPreferencesUpdated)
	return s.preferences[key]
}

// Preference valor actual de una preferencia.
func (s *Settings) Preference(key string) bool {
	return s.preferences[key]
}
