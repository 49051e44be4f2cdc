package dashboard_test

import (
	"math/rand"
	"strings"
	"testing"

	"golang.org/x/text/cases"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/dashboard"
)

func TestFilterPanels(t *testing.T) {
	ana := "Ana Gómez"
	panels := []dto.PanelResponse{
		{ID: "1", Model: "Solar Pro 400W", Location: "Edificio A, Techo Norte"},
		{ID: "2", Model: "EcoMax", Location: "Bodega Sur", UserName: &ana},
		{ID: "3", Model: "SunPower", Location: "Edificio B"},
	}

	cases := map[string][]string{
		"":          {"1", "2", "3"},
		"   ":       {},
		" solar":    {},
		"norte ":    {},
		"a, techo":  {"1"},
		"edificio":  {"1", "3"},
		"SOLAR":     {"1"},
		"gómez":     {"2"},
		"GÓMEZ":     {"2"},
		"no-existe": {},
	}
	for q, want := range cases {
		got := dashboard.FilterPanels(panels, q)
		ids := make([]string, 0, len(got))
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, want, ids, "búsqueda %q", q)
		assert.LessOrEqual(t, len(got), len(panels))
	}
}

func TestFilterUsers(t *testing.T) {
	users := []dto.UserResponse{
		{ID: "1", FullName: "Admin", Email: "admin@effitech.com"},
		{ID: "2", FullName: "Ana Gómez", Email: "ana@correo.com"},
	}
	assert.Len(t, dashboard.FilterUsers(users, "EFFITECH"), 1)
	assert.Len(t, dashboard.FilterUsers(users, "an"), 1)
	assert.Len(t, dashboard.FilterUsers(users, ""), 2)
	assert.Empty(t, dashboard.FilterUsers(users, "zzz"))
}

func TestFormatCapacity(t *testing.T) {
	assert.Equal(t, "12.500 kWh", dashboard.FormatCapacity(decimal.NewFromInt(12500)))
	assert.Equal(t, "2,5 kWh", dashboard.FormatCapacity(decimal.RequireFromString("2.5")))
	assert.Equal(t, "125.000", dashboard.FormatCount(125000))
}

func TestFilterPanels_ResultadoContieneElTermino(t *testing.T) {
	ana := "Ana Gómez"
	panels := []dto.PanelResponse{
		{ID: "1", Model: "Solar Pro 400W", Location: "Edificio A, Techo Norte"},
		{ID: "2", Model: "EcoMax", Location: "Bodega Sur", UserName: &ana},
		{ID: "3", Model: "SunPower", Location: "Edificio B"},
		{ID: "4", Model: "solar lite", Location: " Patio "},
	}
	fold := cases.Fold()
	contains := func(field, q string) bool {
		return strings.Contains(fold.String(field), fold.String(q))
	}

	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("aeiosSoLrNnT ó,")
	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(4)
		q := make([]rune, n)
		for j := range q {
			q[j] = alphabet[rng.Intn(len(alphabet))]
		}
		query := string(q)

		got := dashboard.FilterPanels(panels, query)
		next := 0
		for _, p := range got {
			name := ""
			if p.UserName != nil {
				name = *p.UserName
			}
			assert.True(t, contains(p.Model, query) || contains(p.Location, query) || contains(name, query),
				"panel %s no contiene %q", p.ID, query)
			// mismo orden que la lista original
			for next < len(panels) && panels[next].ID != p.ID {
				next++
			}
			assert.Less(t, next, len(panels), "búsqueda %q altera el orden", query)
			next++
		}
	}
}
