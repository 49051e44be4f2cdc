package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/client"
	"github.com/effitech/solar-api/pkg/logger"
)

// Mensajes de la pantalla de usuarios.
const (
	MsgLoadUsersFailed  = "Error al cargar usuarios"
	MsgRoleUpdateFailed = "Error al actualizar rol"
	MsgUserDeleted      = "Usuario eliminado correctamente"
	MsgUserDeleteFailed = "Error al eliminar usuario"
)

// roleLabels nombre visible de cada rol.
var roleLabels = map[string]string{
	"admin": "Administrador",
	"user":  "Usuario",
}

// RoleLabel nombre visible del rol.
func RoleLabel(role string) string {
	if l, ok := roleLabels[role]; ok {
		return l
	}
	return role
}

// UserStats tarjetas de resumen.
type UserStats struct {
	Total  int
	Admins int
	Users  int
}

// UserManager pantalla de gestión de usuarios (solo admin).
type UserManager struct {
	api     UserAPI
	notify  Notifier
	confirm Confirmer
	log     *logger.Logger
	busy    *inFlight

	mu      sync.RWMutex
	users   []dto.UserResponse
	loading bool
	search  string
}

// NewUserManager construye la pantalla.
func NewUserManager(api UserAPI, notify Notifier, confirm Confirmer, log *logger.Logger) *UserManager {
	if log == nil {
		log = logger.Nop()
	}
	return &UserManager{api: api, notify: notify, confirm: confirm, log: log, busy: newInFlight()}
}

// Load trae la lista de usuarios.
func (m *UserManager) Load(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	users, err := m.api.ListUsers(ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("no se pudieron cargar usuarios")
		m.notify.Error(MsgLoadUsersFailed)
		return err
	}
	m.mu.Lock()
	m.users = users
	m.mu.Unlock()
	return nil
}

// SetRole fija el rol de un usuario. Repetir el mismo rol no cambia nada.
func (m *UserManager) SetRole(ctx context.Context, id, role string) error {
	return m.mutate(ctx, id, "Rol actualizado a "+RoleLabel(role), MsgRoleUpdateFailed, func() error {
		_, err := m.api.UpdateUserRole(ctx, id, role)
		return err
	})
}

// ToggleRole alterna user ↔ admin a partir del rol actual.
func (m *UserManager) ToggleRole(ctx context.Context, u dto.UserResponse) error {
	next := "admin"
	if u.Role == "admin" {
		next = "user"
	}
	return m.SetRole(ctx, u.ID, next)
}

// Delete pide confirmación y elimina al usuario.
func (m *UserManager) Delete(ctx context.Context, id, name string) error {
	prompt := fmt.Sprintf("¿Está seguro de eliminar al usuario \"%s\"? Esta acción no se puede deshacer.", name)
	if !m.confirm.Confirm(prompt) {
		return ErrCancelled
	}
	return m.mutate(ctx, id, MsgUserDeleted, MsgUserDeleteFailed, func() error {
		return m.api.DeleteUser(ctx, id)
	})
}

func (m *UserManager) mutate(ctx context.Context, id, okMsg, failMsg string, call func() error) error {
	if !m.busy.begin(id) {
		return ErrInFlight
	}
	defer m.busy.end(id)

	if err := call(); err != nil {
		m.notify.Error(client.DetailOr(err, failMsg))
		return err
	}
	m.notify.Success(okMsg)
	_ = m.Load(ctx)
	return nil
}

func (m *UserManager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// SetSearch fija el término de búsqueda.
func (m *UserManager) SetSearch(q string) {
	m.mu.Lock()
	m.search = q
	m.mu.Unlock()
}

// Visible usuarios que coinciden con la búsqueda actual.
func (m *UserManager) Visible() []dto.UserResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return FilterUsers(m.users, m.search)
}

// Users copia de la lista completa.
func (m *UserManager) Users() []dto.UserResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]dto.UserResponse(nil), m.users...)
}

// Loading indica si hay una carga en curso.
func (m *UserManager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Processing indica si el usuario id tiene una mutación en curso.
func (m *UserManager) Processing(id string) bool {
	return m.busy.has(id)
}

// Stats total, administradores y usuarios.
func (m *UserManager) Stats() UserStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := UserStats{Total: len(m.users)}
	for _, u := range m.users {
		switch u.Role {
		case "admin":
			s.Admins++
		case "user":
			s.Users++
		}
	}
	return s
}
