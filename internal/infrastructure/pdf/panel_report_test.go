package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/domain/entity"
)

func TestGeneratePanelReport(t *testing.T) {
	g := NewMarotoReportGenerator()
	panels := []*entity.PanelWithOwner{
		{Panel: entity.Panel{ID: "p1", Model: "Solar Pro 400W", Location: "Edificio A", Capacity: decimal.NewFromInt(3000), Status: entity.PanelStatusActive, UserID: "u1", CreatedAt: time.Now()}, UserName: "Ana Gómez"},
		{Panel: entity.Panel{ID: "p2", Model: "EcoPanel 300", Location: "Edificio B", Capacity: decimal.NewFromInt(1500), Status: entity.PanelStatusMaintenance, CreatedAt: time.Now()}},
	}
	summary := &dto.PanelSummaryResponse{Total: 2, Active: 1, Assigned: 1, TotalCapacity: decimal.NewFromInt(4500)}

	out, err := g.GeneratePanelReport(context.Background(), panels, summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGeneratePanelReport_SinPaneles(t *testing.T) {
	out, err := NewMarotoReportGenerator().GeneratePanelReport(context.Background(), nil, &dto.PanelSummaryResponse{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"999":     "999",
		"4500":    "4.500",
		"1000000": "1.000.000",
		"-1500":   "-1.500",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}
