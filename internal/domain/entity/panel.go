package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de un panel.
const (
	PanelStatusActive      = "activo"
	PanelStatusInactive    = "inactivo"
	PanelStatusMaintenance = "mantenimiento"
)

// Panel representa un panel solar. UserID vacío significa "sin asignar";
// un panel tiene como máximo un usuario asignado.
type Panel struct {
	ID        string
	Model     string
	Location  string
	Capacity  decimal.Decimal // kWh
	Status    string
	UserID    string
	CreatedAt time.Time
}

// IsAssigned indica si el panel tiene dueño.
func (p *Panel) IsAssigned() bool { return p.UserID != "" }

// ValidPanelStatus indica si status es uno de los estados conocidos.
func ValidPanelStatus(status string) bool {
	switch status {
	case PanelStatusActive, PanelStatusInactive, PanelStatusMaintenance:
		return true
	}
	return false
}

// PanelWithOwner es un panel junto al nombre de su usuario asignado (vacío si no tiene).
type PanelWithOwner struct {
	Panel
	UserName string
}
