package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/client"
	"github.com/effitech/solar-api/pkg/logger"
)

// Mensajes de la pantalla de paneles.
const (
	MsgLoadDataFailed      = "Error al cargar datos"
	MsgFieldsRequired      = "Todos los campos son requeridos"
	MsgCapacityPositive    = "La capacidad debe ser mayor que cero"
	MsgPanelCreated        = "Panel creado correctamente"
	MsgPanelCreateFailed   = "Error al crear panel"
	MsgPanelUpdated        = "Panel actualizado correctamente"
	MsgPanelUpdateFailed   = "Error al actualizar panel"
	MsgPanelDeleted        = "Panel eliminado correctamente"
	MsgPanelDeleteFailed   = "Error al eliminar panel"
	MsgPanelAssigned       = "Panel asignado correctamente"
	MsgPanelAssignFailed   = "Error al asignar panel"
	MsgPanelUnassigned     = "Panel desasignado correctamente"
	MsgPanelUnassignFailed = "Error al desasignar panel"
)

// PanelForm campos del formulario de creación y edición (tal como se escriben).
// Status solo aplica a la edición.
type PanelForm struct {
	Model    string
	Location string
	Capacity string
	Status   string
}

// PanelStats tarjetas de resumen de la pantalla.
type PanelStats struct {
	Total         int
	Active        int
	Assigned      int
	TotalCapacity decimal.Decimal
}

// PanelManager pantalla de gestión de paneles (solo admin). Toda mutación refresca
// paneles y usuarios desde el servidor; un fallo notifica y deja el estado previo intacto.
type PanelManager struct {
	api     PanelAPI
	notify  Notifier
	confirm Confirmer
	log     *logger.Logger
	busy    *inFlight

	mu      sync.RWMutex
	panels  []dto.PanelResponse
	users   []dto.UserResponse
	loading bool
	search  string
}

// NewPanelManager construye la pantalla.
func NewPanelManager(api PanelAPI, notify Notifier, confirm Confirmer, log *logger.Logger) *PanelManager {
	if log == nil {
		log = logger.Nop()
	}
	return &PanelManager{api: api, notify: notify, confirm: confirm, log: log, busy: newInFlight()}
}

// Load trae paneles y usuarios en paralelo. Si cualquiera falla, no se toca el estado.
func (m *PanelManager) Load(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	var (
		panels []dto.PanelResponse
		users  []dto.UserResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		panels, err = m.api.ListPanels(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = m.api.ListUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		m.log.Warn().Err(err).Msg("no se pudieron cargar paneles y usuarios")
		m.notify.Error(MsgLoadDataFailed)
		return err
	}

	m.mu.Lock()
	m.panels = panels
	m.users = users
	m.mu.Unlock()
	return nil
}

// Create valida el formulario y crea el panel.
func (m *PanelManager) Create(ctx context.Context, form PanelForm) error {
	model := strings.TrimSpace(form.Model)
	location := strings.TrimSpace(form.Location)
	if model == "" || location == "" || strings.TrimSpace(form.Capacity) == "" {
		m.notify.Error(MsgFieldsRequired)
		return ErrValidation
	}
	capacity, ok := m.parseCapacity(form.Capacity)
	if !ok {
		return ErrValidation
	}

	_, err := m.api.CreatePanel(ctx, dto.CreatePanelRequest{Model: model, Location: location, Capacity: capacity})
	if err != nil {
		m.notify.Error(client.DetailOr(err, MsgPanelCreateFailed))
		return err
	}
	m.notify.Success(MsgPanelCreated)
	m.refresh(ctx)
	return nil
}

// Update valida como Create y envía los cuatro campos editables del panel.
func (m *PanelManager) Update(ctx context.Context, id string, form PanelForm) error {
	model := strings.TrimSpace(form.Model)
	location := strings.TrimSpace(form.Location)
	if model == "" || location == "" || strings.TrimSpace(form.Capacity) == "" {
		m.notify.Error(MsgFieldsRequired)
		return ErrValidation
	}
	capacity, ok := m.parseCapacity(form.Capacity)
	if !ok {
		return ErrValidation
	}
	status := form.Status
	in := dto.UpdatePanelRequest{Model: &model, Location: &location, Capacity: &capacity}
	if status != "" {
		in.Status = &status
	}
	return m.mutate(ctx, id, MsgPanelUpdated, MsgPanelUpdateFailed, func() error {
		_, err := m.api.UpdatePanel(ctx, id, in)
		return err
	})
}

// Delete pide confirmación y elimina el panel.
func (m *PanelManager) Delete(ctx context.Context, id, model string) error {
	if !m.confirm.Confirm(fmt.Sprintf("¿Está seguro de eliminar el panel \"%s\"?", model)) {
		return ErrCancelled
	}
	return m.mutate(ctx, id, MsgPanelDeleted, MsgPanelDeleteFailed, func() error {
		return m.api.DeletePanel(ctx, id)
	})
}

// Assign asigna el panel a userID (reemplaza al dueño anterior si lo había).
func (m *PanelManager) Assign(ctx context.Context, id, userID string) error {
	return m.mutate(ctx, id, MsgPanelAssigned, MsgPanelAssignFailed, func() error {
		_, err := m.api.AssignPanel(ctx, id, userID)
		return err
	})
}

// Unassign deja el panel sin dueño.
func (m *PanelManager) Unassign(ctx context.Context, id string) error {
	return m.mutate(ctx, id, MsgPanelUnassigned, MsgPanelUnassignFailed, func() error {
		_, err := m.api.UnassignPanel(ctx, id)
		return err
	})
}

// mutate ejecuta call con id marcado como en curso, notifica y refresca.
func (m *PanelManager) mutate(ctx context.Context, id, okMsg, failMsg string, call func() error) error {
	if !m.busy.begin(id) {
		return ErrInFlight
	}
	defer m.busy.end(id)

	if err := call(); err != nil {
		m.notify.Error(client.DetailOr(err, failMsg))
		return err
	}
	m.notify.Success(okMsg)
	m.refresh(ctx)
	return nil
}

// refresh recarga ambas listas; un fallo ya se notificó en Load.
func (m *PanelManager) refresh(ctx context.Context) {
	_ = m.Load(ctx)
}

func (m *PanelManager) parseCapacity(raw string) (decimal.Decimal, bool) {
	capacity, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !capacity.IsPositive() {
		m.notify.Error(MsgCapacityPositive)
		return decimal.Zero, false
	}
	return capacity, true
}

func (m *PanelManager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}

// SetSearch fija el término de búsqueda.
func (m *PanelManager) SetSearch(q string) {
	m.mu.Lock()
	m.search = q
	m.mu.Unlock()
}

// Visible paneles que coinciden con la búsqueda actual.
func (m *PanelManager) Visible() []dto.PanelResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return FilterPanels(m.panels, m.search)
}

// Panels copia de la lista completa.
func (m *PanelManager) Panels() []dto.PanelResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]dto.PanelResponse(nil), m.panels...)
}

// Users usuarios disponibles para asignar.
func (m *PanelManager) Users() []dto.UserResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]dto.UserResponse(nil), m.users...)
}

// Loading indica si hay una carga en curso.
func (m *PanelManager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Processing indica si el panel id tiene una mutación en curso (botones deshabilitados).
func (m *PanelManager) Processing(id string) bool {
	return m.busy.has(id)
}

// Stats calcula las tarjetas de resumen sobre la lista completa.
func (m *PanelManager) Stats() PanelStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := PanelStats{Total: len(m.panels), TotalCapacity: decimal.Zero}
	for _, p := range m.panels {
		if p.Status == "activo" {
			s.Active++
		}
		if p.UserID != nil && *p.UserID != "" {
			s.Assigned++
		}
		s.TotalCapacity = s.TotalCapacity.Add(p.Capacity)
	}
	return s
}
