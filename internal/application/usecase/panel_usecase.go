package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/domain"
	"github.com/effitech/solar-api/internal/domain/entity"
	"github.com/effitech/solar-api/internal/domain/repository"
	"github.com/effitech/solar-api/pkg/logger"
)

// PanelUseCase casos de uso de paneles solares: CRUD, asignación y resumen.
type PanelUseCase struct {
	panels repository.PanelRepository
	users  repository.UserRepository
	log    *logger.Logger
}

// NewPanelUseCase construye el caso de uso.
func NewPanelUseCase(panels repository.PanelRepository, users repository.UserRepository, log *logger.Logger) *PanelUseCase {
	return &PanelUseCase{panels: panels, users: users, log: log}
}

// Create crea un panel en estado activo y sin asignar.
func (uc *PanelUseCase) Create(ctx context.Context, in dto.CreatePanelRequest) (*dto.PanelResponse, error) {
	model := strings.TrimSpace(in.Model)
	location := strings.TrimSpace(in.Location)
	if model == "" || location == "" {
		return nil, domain.Invalid("model", "Todos los campos son requeridos")
	}
	if err := validateCapacity(in.Capacity); err != nil {
		return nil, err
	}
	panel := &entity.Panel{
		ID:        uuid.New().String(),
		Model:     model,
		Location:  location,
		Capacity:  in.Capacity,
		Status:    entity.PanelStatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.panels.Create(ctx, panel); err != nil {
		return nil, err
	}
	uc.log.Info().Str("panel_id", panel.ID).Msg("nuevo panel creado")
	return toPanelResponse(&entity.PanelWithOwner{Panel: *panel}), nil
}

// List devuelve todos los paneles para un admin y solo los propios para un usuario.
func (uc *PanelUseCase) List(ctx context.Context, viewer *entity.User) ([]dto.PanelResponse, error) {
	var (
		list []*entity.PanelWithOwner
		err  error
	)
	if viewer.IsAdmin() {
		list, err = uc.panels.List(ctx)
	} else {
		list, err = uc.panels.ListByUser(ctx, viewer.ID)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.PanelResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPanelResponse(p))
	}
	return items, nil
}

// Get obtiene un panel. Un usuario normal solo puede ver los suyos.
func (uc *PanelUseCase) Get(ctx context.Context, viewer *entity.User, id string) (*dto.PanelResponse, error) {
	p, err := uc.panels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPanelNotFound
	}
	if !viewer.IsAdmin() && p.UserID != viewer.ID {
		return nil, domain.ErrForbidden
	}
	return toPanelResponse(p), nil
}

// Update aplica una actualización parcial. Sin campos devuelve ErrNothingToUpdate.
func (uc *PanelUseCase) Update(ctx context.Context, id string, in dto.UpdatePanelRequest) (*dto.PanelResponse, error) {
	if in.IsEmpty() {
		return nil, domain.ErrNothingToUpdate
	}
	current, err := uc.panels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrPanelNotFound
	}

	panel := current.Panel
	if in.Model != nil {
		if strings.TrimSpace(*in.Model) == "" {
			return nil, domain.Invalid("model", "El modelo no puede estar vacío")
		}
		panel.Model = strings.TrimSpace(*in.Model)
	}
	if in.Location != nil {
		if strings.TrimSpace(*in.Location) == "" {
			return nil, domain.Invalid("location", "La ubicación no puede estar vacía")
		}
		panel.Location = strings.TrimSpace(*in.Location)
	}
	if in.Capacity != nil {
		if err := validateCapacity(*in.Capacity); err != nil {
			return nil, err
		}
		panel.Capacity = *in.Capacity
	}
	if in.Status != nil {
		if !entity.ValidPanelStatus(*in.Status) {
			return nil, domain.Invalid("status", "Estado inválido: debe ser activo, inactivo o mantenimiento")
		}
		panel.Status = *in.Status
	}

	if err := uc.panels.Update(ctx, &panel); err != nil {
		return nil, err
	}
	uc.log.Info().Str("panel_id", id).Msg("panel actualizado")
	return toPanelResponse(&entity.PanelWithOwner{Panel: panel, UserName: current.UserName}), nil
}

// Delete elimina un panel.
func (uc *PanelUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.panels.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("panel_id", id).Msg("panel eliminado")
	return nil
}

// Assign asigna el panel a userID. Si ya tenía dueño, se reemplaza.
func (uc *PanelUseCase) Assign(ctx context.Context, id, userID string) (*dto.PanelResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.panels.SetOwner(ctx, id, userID); err != nil {
		return nil, err
	}
	p, err := uc.panels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPanelNotFound
	}
	uc.log.Info().Str("panel_id", id).Str("user_id", userID).Msg("panel asignado")
	return toPanelResponse(p), nil
}

// Unassign deja el panel sin dueño.
func (uc *PanelUseCase) Unassign(ctx context.Context, id string) (*dto.PanelResponse, error) {
	if err := uc.panels.SetOwner(ctx, id, ""); err != nil {
		return nil, err
	}
	p, err := uc.panels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrPanelNotFound
	}
	uc.log.Info().Str("panel_id", id).Msg("panel desasignado")
	return toPanelResponse(p), nil
}

// Summary calcula los totales de la pantalla de paneles.
func (uc *PanelUseCase) Summary(ctx context.Context) (*dto.PanelSummaryResponse, error) {
	list, err := uc.panels.List(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(list), nil
}

// Summarize cuenta paneles activos y asignados y suma la capacidad.
func Summarize(list []*entity.PanelWithOwner) *dto.PanelSummaryResponse {
	out := &dto.PanelSummaryResponse{Total: len(list), TotalCapacity: decimal.Zero}
	for _, p := range list {
		if p.Status == entity.PanelStatusActive {
			out.Active++
		}
		if p.IsAssigned() {
			out.Assigned++
		}
		out.TotalCapacity = out.TotalCapacity.Add(p.Capacity)
	}
	return out
}

func validateCapacity(c decimal.Decimal) error {
	if !c.IsPositive() {
		return domain.Invalid("capacity", "La capacidad debe ser mayor que cero")
	}
	return nil
}

func toPanelResponse(p *entity.PanelWithOwner) *dto.PanelResponse {
	if p == nil {
		return nil
	}
	out := &dto.PanelResponse{
		ID:        p.ID,
		Model:     p.Model,
		Location:  p.Location,
		Capacity:  p.Capacity,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
	if p.UserID != "" {
		userID := p.UserID
		out.UserID = &userID
		if p.UserName != "" {
			name := p.UserName
			out.UserName = &name
		}
	}
	return out
}
