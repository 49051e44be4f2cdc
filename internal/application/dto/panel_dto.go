package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePanelRequest entrada para crear un panel. Capacity en kWh, debe ser > 0.
type CreatePanelRequest struct {
	Model    string          `json:"model" validate:"required"`
	Location string          `json:"location" validate:"required"`
	Capacity decimal.Decimal `json:"capacity" validate:"required,gt=0"`
}

// UpdatePanelRequest actualización parcial: solo se aplican los campos presentes.
type UpdatePanelRequest struct {
	Model    *string          `json:"model,omitempty"`
	Location *string          `json:"location,omitempty"`
	Capacity *decimal.Decimal `json:"capacity,omitempty"`
	Status   *string          `json:"status,omitempty" validate:"omitempty,oneof=activo inactivo mantenimiento"`
}

// IsEmpty indica que no hay ningún campo para actualizar.
func (r UpdatePanelRequest) IsEmpty() bool {
	return r.Model == nil && r.Location == nil && r.Capacity == nil && r.Status == nil
}

// PanelResponse salida de un panel con el nombre del usuario asignado.
type PanelResponse struct {
	ID        string          `json:"id"`
	Model     string          `json:"model"`
	Location  string          `json:"location"`
	Capacity  decimal.Decimal `json:"capacity"`
	Status    string          `json:"status"`
	UserID    *string         `json:"user_id"`
	UserName  *string         `json:"user_name"`
	CreatedAt time.Time       `json:"created_at"`
}

// PanelSummaryResponse totales de la pantalla de gestión de paneles.
type PanelSummaryResponse struct {
	Total         int             `json:"total"`
	Active        int             `json:"active"`
	Assigned      int             `json:"assigned"`
	TotalCapacity decimal.Decimal `json:"total_capacity"`
}
