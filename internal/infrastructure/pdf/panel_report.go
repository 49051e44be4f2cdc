// Package pdf genera el reporte imprimible del inventario de paneles solares.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: EffiTech + título    │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Total | Activos | Asignados | Capacidad total      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Modelo | Ubicación | Capacidad | Estado | Asignado   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el resumen + leyenda                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 217, Green: 119, Blue: 6}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[string]string{
	entity.PanelStatusActive:      "Activo",
	entity.PanelStatusInactive:    "Inactivo",
	entity.PanelStatusMaintenance: "Mantenimiento",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator genera el reporte de paneles usando Maroto v2.
type MarotoReportGenerator struct {
	now func() time.Time
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{now: time.Now}
}

// GeneratePanelReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GeneratePanelReport(
	_ context.Context,
	panels []*entity.PanelWithOwner,
	summary *dto.PanelSummaryResponse,
) ([]byte, error) {
	generated := g.now()
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Paneles Solares", true).
		WithAuthor("EffiTech", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generated))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(panels) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay paneles registrados", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	m.AddRows(tableDetailRows(panels)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(summary, generated))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(generated time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("EffiTech", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Gestión de Paneles Solares", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generated.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: las cuatro tarjetas de resumen de la pantalla de paneles.
func summaryRow(s *dto.PanelSummaryResponse) core.Row {
	card := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6}),
		)
	}
	return row.New(16).Add(
		card("Total Paneles", fmt.Sprint(s.Total)),
		card("Activos", fmt.Sprint(s.Active)),
		card("Asignados", fmt.Sprint(s.Assigned)),
		card("Capacidad Total", formatMoney(s.TotalCapacity.StringFixed(0))+" kWh"),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Modelo", 3, align.Left),
		h("Ubicación", 3, align.Left),
		h("Capacidad", 2, align.Right),
		h("Estado", 2, align.Center),
		h("Asignado a", 2, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por panel.
func tableDetailRows(panels []*entity.PanelWithOwner) []core.Row {
	result := make([]core.Row, 0, len(panels))
	for _, p := range panels {
		owner := "Sin asignar"
		if p.IsAssigned() {
			owner = nonEmpty(p.UserName, p.UserID)
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(p.Model, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(p.Location, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(
				formatMoney(p.Capacity.StringFixed(0))+" kWh",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(statusLabels[p.Status], p.Status),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(owner, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return result
}

// footerRow: QR con el resumen para cotejar el reporte impreso.
func footerRow(s *dto.PanelSummaryResponse, generated time.Time) core.Row {
	qr := fmt.Sprintf("effitech-paneles|total=%d|activos=%d|asignados=%d|capacidad=%s|fecha=%s",
		s.Total, s.Active, s.Assigned, s.TotalCapacity.StringFixed(2), generated.UTC().Format(time.RFC3339))
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Reporte generado automáticamente por EffiTech.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("La capacidad se expresa en kWh.", props.Text{
				Size: 8, Top: 10, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1500" → "-1.500"
func formatMoney(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
