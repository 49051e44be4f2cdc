package dashboard

import (
	"context"

	"github.com/effitech/solar-api/internal/application/dto"
)

// Views vistas de solo lectura: resumen, monitoreo de energía y análisis.
type Views struct {
	api    ViewAPI
	notify Notifier
}

// NewViews construye las vistas.
func NewViews(api ViewAPI, notify Notifier) *Views {
	return &Views{api: api, notify: notify}
}

// Overview datos de /dashboard.
func (v *Views) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	return load(ctx, v.notify, v.api.Overview)
}

// Energy datos de /dashboard/energy.
func (v *Views) Energy(ctx context.Context) (*dto.EnergyResponse, error) {
	return load(ctx, v.notify, v.api.Energy)
}

// Analytics datos de /dashboard/analytics.
func (v *Views) Analytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	return load(ctx, v.notify, v.api.Analytics)
}

func load[T any](ctx context.Context, notify Notifier, fetch func(context.Context) (T, error)) (T, error) {
	out, err := fetch(ctx)
	if err != nil {
		notify.Error(MsgLoadDataFailed)
	}
	return out, err
}
