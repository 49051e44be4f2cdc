// Package analytics contiene los casos de uso de las vistas de solo lectura del dashboard:
// resumen, monitoreo de energía y analítica mensual.
package analytics

import (
	"context"

	"github.com/effitech/solar-api/internal/application/dto"
)

// DashboardUseCase sirve los conjuntos de datos de muestra que renderizan las vistas
// de solo lectura. Los datos son fijos: todos los clientes ven los mismos números.
type DashboardUseCase struct{}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase() *DashboardUseCase {
	return &DashboardUseCase{}
}

// Overview KPIs, estado del sistema y actividad reciente.
func (uc *DashboardUseCase) Overview(_ context.Context) *dto.OverviewResponse {
	return &dto.OverviewResponse{
		Metrics: []dto.MetricCard{
			{Name: "Producción Total de Energía", Value: "4,832 kWh", Change: "+12.5%", Trend: "up"},
			{Name: "Proyectos Activos", Value: "24", Change: "+3", Trend: "up"},
			{Name: "Eficiencia del Sistema", Value: "94.2%", Change: "+2.1%", Trend: "up"},
			{Name: "Tiempo Activo", Value: "99.8%", Change: "Excelente", Trend: "neutral"},
		},
		SystemStatus: []dto.SystemStatus{
			{Name: "Panel Solar A", Status: "En Línea"},
			{Name: "Panel Solar B", Status: "En Línea"},
			{Name: "Almacenamiento de Batería", Status: "85% Capacidad"},
			{Name: "Conexión a Red", Status: "Activa"},
		},
		RecentActivity: []dto.Activity{
			{Title: "Producción máxima alcanzada", When: "Hace 2 horas"},
			{Title: "Nuevo proyecto agregado", When: "Hace 5 horas"},
			{Title: "Eficiencia mejorada", When: "Hace 1 día"},
			{Title: "Mantenimiento completado", When: "Hace 2 días"},
		},
	}
}

// Energy fuentes de energía y serie de producción del día.
func (uc *DashboardUseCase) Energy(_ context.Context) *dto.EnergyResponse {
	sources := []dto.EnergySource{
		{Name: "Panel Solar A", Current: 2450, Capacity: 3000, Status: "activo", Trend: "up", Change: "+5.2%"},
		{Name: "Panel Solar B", Current: 2382, Capacity: 3000, Status: "activo", Trend: "up", Change: "+3.8%"},
		{Name: "Almacenamiento de Batería", Current: 1700, Capacity: 2000, Status: "cargando", Trend: "up", Change: "+12.5%"},
	}
	for i := range sources {
		sources[i].Percentage = Percentage(sources[i].Current, sources[i].Capacity)
	}
	realtime := []dto.ProductionPoint{
		{Time: "00:00", Production: 120},
		{Time: "04:00", Production: 80},
		{Time: "08:00", Production: 450},
		{Time: "12:00", Production: 680},
		{Time: "16:00", Production: 520},
		{Time: "20:00", Production: 290},
		{Time: "23:59", Production: 150},
	}
	peak := 0
	for _, p := range realtime {
		if p.Production > peak {
			peak = p.Production
		}
	}
	return &dto.EnergyResponse{Sources: sources, Realtime: realtime, Peak: peak}
}

// Analytics producción vs consumo mensual e indicadores de rendimiento.
func (uc *DashboardUseCase) Analytics(_ context.Context) *dto.AnalyticsResponse {
	monthly := []dto.MonthlyEnergy{
		{Month: "Ene", Production: 4200, Consumption: 3800},
		{Month: "Feb", Production: 4500, Consumption: 4100},
		{Month: "Mar", Production: 5200, Consumption: 4300},
		{Month: "Abr", Production: 5800, Consumption: 4500},
		{Month: "May", Production: 6200, Consumption: 4700},
		{Month: "Jun", Production: 6500, Consumption: 4900},
	}
	total := 0
	for i := range monthly {
		monthly[i].Savings = monthly[i].Production - monthly[i].Consumption
		total += monthly[i].Savings
	}
	return &dto.AnalyticsResponse{
		Monthly: monthly,
		Performance: []dto.PerformanceMetric{
			{Label: "Producción Diaria Promedio", Value: "218 kWh", Change: "+12%", Trend: "up"},
			{Label: "Eficiencia Energética", Value: "94.2%", Change: "+2.1%", Trend: "up"},
			{Label: "Compensación de Carbono", Value: "4.8 tons CO₂", Change: "+15%", Trend: "up"},
			{Label: "Ahorro en Costos", Value: "$2,340", Change: "+18%", Trend: "up"},
		},
		TotalSaving: total,
	}
}

// Percentage porcentaje de current sobre capacity redondeado al entero más cercano
// (0 si capacity no es positiva).
func Percentage(current, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return (current*100 + capacity/2) / capacity
}
