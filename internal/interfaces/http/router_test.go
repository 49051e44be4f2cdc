package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/testserver"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type apiTester struct {
	t   *testing.T
	app *fiber.App
}

func newAPITester(t *testing.T) *apiTester {
	return &apiTester{t: t, app: testserver.NewApp()}
}

// call hace la petición y decodifica la respuesta JSON en out (si no es nil).
func (a *apiTester) call(method, path, token string, body any, out any) int {
	a.t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (a *apiTester) register(email, name string) dto.TokenResponse {
	a.t.Helper()
	var out dto.TokenResponse
	status := a.call(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "secreto123", "full_name": name,
	}, &out)
	require.Equal(a.t, http.StatusCreated, status)
	return out
}

func (a *apiTester) createPanel(token string, model string, capacity float64) dto.PanelResponse {
	a.t.Helper()
	var out dto.PanelResponse
	status := a.call(http.MethodPost, "/api/panels", token, map[string]any{
		"model": model, "location": "Edificio A, Techo Norte", "capacity": capacity,
	}, &out)
	require.Equal(a.t, http.StatusCreated, status)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas generales y auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRootYHealth(t *testing.T) {
	api := newAPITester(t)

	var root dto.RootResponse
	assert.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/", "", nil, &root))
	assert.Equal(t, "EFFITECH API - Sistema de Gestión de Energía Solar", root.Message)

	var health dto.HealthResponse
	assert.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/health", "", nil, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)
}

func TestAuthFlow(t *testing.T) {
	api := newAPITester(t)
	admin := api.register("admin@effitech.com", "Admin")
	assert.Equal(t, "admin", admin.User.Role)

	var dup dto.ErrorResponse
	status := api.call(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "admin@effitech.com", "password": "secreto123", "full_name": "Otro",
	}, &dup)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "El correo electrónico ya está registrado", dup.Detail)

	var login dto.TokenResponse
	status = api.call(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@effitech.com", "password": "secreto123",
	}, &login)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bearer", login.TokenType)

	var bad dto.ErrorResponse
	status = api.call(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@effitech.com", "password": "otra-clave",
	}, &bad)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Correo o contraseña incorrectos", bad.Detail)

	var me dto.UserResponse
	assert.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/auth/me", login.AccessToken, nil, &me))
	assert.Equal(t, admin.User.ID, me.ID)

	assert.Equal(t, http.StatusUnauthorized, api.call(http.MethodGet, "/api/auth/me", "", nil, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Paneles
// ──────────────────────────────────────────────────────────────────────────────

func TestPanels_CRUDyAsignacion(t *testing.T) {
	api := newAPITester(t)
	admin := api.register("admin@effitech.com", "Admin").AccessToken
	ana := api.register("ana@effitech.com", "Ana Gómez")

	p := api.createPanel(admin, "Solar Pro 400W", 3000)
	assert.Equal(t, "activo", p.Status)

	// El usuario normal no puede crear ni ver paneles ajenos.
	assert.Equal(t, http.StatusForbidden, api.call(http.MethodPost, "/api/panels", ana.AccessToken,
		map[string]any{"model": "X", "location": "Y", "capacity": 1}, nil))
	var forbidden dto.ErrorResponse
	assert.Equal(t, http.StatusForbidden, api.call(http.MethodGet, "/api/panels/"+p.ID, ana.AccessToken, nil, &forbidden))
	assert.Equal(t, "No tiene acceso a este panel", forbidden.Detail)

	var assigned dto.PanelResponse
	require.Equal(t, http.StatusOK, api.call(http.MethodPost,
		"/api/panels/"+p.ID+"/assign/"+ana.User.ID, admin, nil, &assigned))
	require.NotNil(t, assigned.UserName)
	assert.Equal(t, "Ana Gómez", *assigned.UserName)

	var mine []dto.PanelResponse
	require.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/panels", ana.AccessToken, nil, &mine))
	assert.Len(t, mine, 1)

	var updated dto.PanelResponse
	require.Equal(t, http.StatusOK, api.call(http.MethodPut, "/api/panels/"+p.ID, admin,
		map[string]any{"status": "mantenimiento"}, &updated))
	assert.Equal(t, "mantenimiento", updated.Status)
	assert.Equal(t, "Solar Pro 400W", updated.Model)

	var empty dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, api.call(http.MethodPut, "/api/panels/"+p.ID, admin,
		map[string]any{}, &empty))
	assert.Equal(t, "No hay datos para actualizar", empty.Detail)

	var unassigned dto.PanelResponse
	require.Equal(t, http.StatusOK, api.call(http.MethodPost, "/api/panels/"+p.ID+"/unassign", admin, nil, &unassigned))
	assert.Nil(t, unassigned.UserID)

	assert.Equal(t, http.StatusOK, api.call(http.MethodDelete, "/api/panels/"+p.ID, admin, nil, nil))
	var notFound dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, api.call(http.MethodDelete, "/api/panels/"+p.ID, admin, nil, &notFound))
	assert.Equal(t, "Panel no encontrado", notFound.Detail)
}

func TestPanels_CapacidadCeroRechazada(t *testing.T) {
	api := newAPITester(t)
	admin := api.register("admin@effitech.com", "Admin").AccessToken

	var out dto.ErrorResponse
	status := api.call(http.MethodPost, "/api/panels", admin,
		map[string]any{"model": "X", "location": "Y", "capacity": 0}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "La capacidad debe ser mayor que cero", out.Detail)
}

func TestPanels_SummaryYReporte(t *testing.T) {
	api := newAPITester(t)
	admin := api.register("admin@effitech.com", "Admin").AccessToken
	api.createPanel(admin, "A", 3000)
	api.createPanel(admin, "B", 1500.5)

	var summary map[string]any
	require.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/panels/summary", admin, nil, &summary))
	assert.EqualValues(t, 2, summary["total"])
	assert.EqualValues(t, 4500.5, summary["total_capacity"], "la capacidad viaja como número JSON")

	req := httptest.NewRequest(http.MethodGet, "/api/panels/report", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "paneles_")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUsers_RolYEliminacion(t *testing.T) {
	api := newAPITester(t)
	admin := api.register("admin@effitech.com", "Admin")
	ana := api.register("ana@effitech.com", "Ana Gómez")

	assert.Equal(t, http.StatusForbidden, api.call(http.MethodGet, "/api/users", ana.AccessToken, nil, nil))

	var list []dto.UserResponse
	require.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/users", admin.AccessToken, nil, &list))
	assert.Len(t, list, 2)

	var self dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, api.call(http.MethodPut, "/api/users/"+admin.User.ID+"/role",
		admin.AccessToken, map[string]string{"role": "user"}, &self))
	assert.Equal(t, "No puede quitarse el rol de administrador a sí mismo", self.Detail)

	var promoted dto.UserResponse
	require.Equal(t, http.StatusOK, api.call(http.MethodPut, "/api/users/"+ana.User.ID+"/role",
		admin.AccessToken, map[string]string{"role": "admin"}, &promoted))
	assert.Equal(t, "admin", promoted.Role)

	// El token viejo de Ana sigue diciendo "user", pero el rol se recarga en cada petición.
	assert.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/users", ana.AccessToken, nil, nil))

	assert.Equal(t, http.StatusOK, api.call(http.MethodDelete, "/api/users/"+ana.User.ID, admin.AccessToken, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, api.call(http.MethodGet, "/api/auth/me", ana.AccessToken, nil, nil),
		"un usuario eliminado pierde el acceso de inmediato")
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardDatasets(t *testing.T) {
	api := newAPITester(t)
	tok := api.register("admin@effitech.com", "Admin").AccessToken

	var energy dto.EnergyResponse
	require.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/dashboard/energy", tok, nil, &energy))
	assert.Len(t, energy.Sources, 3)
	assert.Equal(t, 680, energy.Peak)

	var overview dto.OverviewResponse
	require.Equal(t, http.StatusOK, api.call(http.MethodGet, "/api/dashboard/overview", tok, nil, &overview))
	assert.Len(t, overview.Metrics, 4)

	assert.Equal(t, http.StatusUnauthorized, api.call(http.MethodGet, "/api/dashboard/analytics", "", nil, nil))
}

func TestRutaDesconocida(t *testing.T) {
	api := newAPITester(t)
	var out dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, api.call(http.MethodGet, "/api/no-existe", "", nil, &out))
	assert.NotEmpty(t, out.Detail)
}
