package repository

import (
	"context"

	"github.com/effitech/solar-api/internal/domain/entity"
)

// PanelRepository define el puerto de persistencia para Panel.
// Las lecturas resuelven el nombre del usuario asignado (PanelWithOwner).
type PanelRepository interface {
	Create(ctx context.Context, panel *entity.Panel) error
	GetByID(ctx context.Context, id string) (*entity.PanelWithOwner, error)
	List(ctx context.Context) ([]*entity.PanelWithOwner, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.PanelWithOwner, error)
	// Update persiste todos los campos editables; domain.ErrPanelNotFound si no existe.
	Update(ctx context.Context, panel *entity.Panel) error
	// SetOwner asigna (userID != "") o desasigna (userID == "") el panel.
	SetOwner(ctx context.Context, id, userID string) error
	// UnassignAllFromUser desasigna todos los paneles de un usuario y devuelve cuántos cambió.
	UnassignAllFromUser(ctx context.Context, userID string) (int, error)
	// Delete devuelve domain.ErrPanelNotFound si el panel no existe.
	Delete(ctx context.Context, id string) error
}

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(users UserRepository, panels PanelRepository) error) error
}
