package dto

// MetricCard tarjeta KPI del resumen (valor ya formateado para mostrar).
type MetricCard struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"` // up, down, neutral
}

// SystemStatus estado de un componente de la instalación.
type SystemStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Activity evento reciente mostrado en el resumen.
type Activity struct {
	Title string `json:"title"`
	When  string `json:"when"`
}

// OverviewResponse respuesta de GET /api/dashboard/overview.
type OverviewResponse struct {
	Metrics        []MetricCard   `json:"metrics"`
	SystemStatus   []SystemStatus `json:"system_status"`
	RecentActivity []Activity     `json:"recent_activity"`
}

// EnergySource fuente de energía monitoreada (kWh).
type EnergySource struct {
	Name       string `json:"name"`
	Current    int    `json:"current"`
	Capacity   int    `json:"capacity"`
	Percentage int    `json:"percentage"`
	Status     string `json:"status"`
	Trend      string `json:"trend"`
	Change     string `json:"change"`
}

// ProductionPoint producción en un instante del día (kWh).
type ProductionPoint struct {
	Time       string `json:"time"`
	Production int    `json:"production"`
}

// EnergyResponse respuesta de GET /api/dashboard/energy.
type EnergyResponse struct {
	Sources  []EnergySource    `json:"sources"`
	Realtime []ProductionPoint `json:"realtime"`
	Peak     int               `json:"peak"`
}

// MonthlyEnergy producción vs consumo de un mes (kWh).
type MonthlyEnergy struct {
	Month       string `json:"month"`
	Production  int    `json:"production"`
	Consumption int    `json:"consumption"`
	Savings     int    `json:"savings"`
}

// PerformanceMetric indicador de rendimiento de la analítica.
type PerformanceMetric struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
}

// AnalyticsResponse respuesta de GET /api/dashboard/analytics.
type AnalyticsResponse struct {
	Monthly     []MonthlyEnergy     `json:"monthly"`
	Performance []PerformanceMetric `json:"performance"`
	TotalSaving int                 `json:"total_savings"`
}
