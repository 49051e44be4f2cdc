package dashboard

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/effitech/solar-api/internal/application/dto"
)

// matcher compara sin distinguir mayúsculas usando case folding Unicode.
// Un cases.Caser no se comparte entre goroutines, por eso se crea uno por búsqueda.
type matcher struct {
	fold  cases.Caser
	query string
}

func newMatcher(query string) *matcher {
	m := &matcher{fold: cases.Fold()}
	m.query = m.fold.String(query)
	return m
}

func (m *matcher) any(fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(m.fold.String(f), m.query) {
			return true
		}
	}
	return false
}

// FilterPanels filtra por modelo, ubicación o nombre del asignado. El término se usa tal
// cual, espacios incluidos: todo panel devuelto contiene query en algún campo. El resultado
// es un subconjunto de panels en el mismo orden; una búsqueda vacía devuelve todos.
func FilterPanels(panels []dto.PanelResponse, query string) []dto.PanelResponse {
	m := newMatcher(query)
	out := make([]dto.PanelResponse, 0, len(panels))
	for _, p := range panels {
		userName := ""
		if p.UserName != nil {
			userName = *p.UserName
		}
		if m.query == "" || m.any(p.Model, p.Location, userName) {
			out = append(out, p)
		}
	}
	return out
}

// FilterUsers filtra por nombre completo o email.
func FilterUsers(users []dto.UserResponse, query string) []dto.UserResponse {
	m := newMatcher(query)
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		if m.query == "" || m.any(u.FullName, u.Email) {
			out = append(out, u)
		}
	}
	return out
}
