package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergy_PorcentajesYPico(t *testing.T) {
	out := NewDashboardUseCase().Energy(context.Background())

	require.Len(t, out.Sources, 3)
	assert.Equal(t, 82, out.Sources[0].Percentage)
	assert.Equal(t, 79, out.Sources[1].Percentage)
	assert.Equal(t, 85, out.Sources[2].Percentage)
	assert.Equal(t, 680, out.Peak)
	assert.Len(t, out.Realtime, 7)
}

func TestAnalytics_AhorroEsProduccionMenosConsumo(t *testing.T) {
	out := NewDashboardUseCase().Analytics(context.Background())

	require.Len(t, out.Monthly, 6)
	expected := []int{400, 400, 900, 1300, 1500, 1600}
	for i, m := range out.Monthly {
		assert.Equal(t, expected[i], m.Savings, m.Month)
	}
	assert.Equal(t, 6100, out.TotalSaving)
	assert.Len(t, out.Performance, 4)
}

func TestOverview(t *testing.T) {
	out := NewDashboardUseCase().Overview(context.Background())
	assert.Len(t, out.Metrics, 4)
	assert.Len(t, out.SystemStatus, 4)
	assert.Len(t, out.RecentActivity, 4)
	assert.Equal(t, "neutral", out.Metrics[3].Trend)
}

func TestPercentage_CapacidadCero(t *testing.T) {
	assert.Equal(t, 0, Percentage(10, 0))
	assert.Equal(t, 100, Percentage(50, 50))
}
