// Package testserver arma la API completa sobre el almacenamiento en memoria para
// pruebas de extremo a extremo (handlers, cliente HTTP y pantallas del dashboard).
package testserver

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/effitech/solar-api/internal/application/analytics"
	"github.com/effitech/solar-api/internal/application/auth"
	"github.com/effitech/solar-api/internal/application/usecase"
	"github.com/effitech/solar-api/internal/infrastructure/memory"
	infrapdf "github.com/effitech/solar-api/internal/infrastructure/pdf"
	apphttp "github.com/effitech/solar-api/internal/interfaces/http"
	"github.com/effitech/solar-api/pkg/logger"
)

// JWTSecret secreto usado para firmar los tokens de prueba.
const JWTSecret = "test-secret-key-for-unit-tests"

// NewApp construye la aplicación Fiber con un almacenamiento en memoria vacío.
func NewApp() *fiber.App {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	panels := memory.NewPanelRepository(store)
	log := logger.Nop()

	return apphttp.NewApp(apphttp.AppOptions{Name: "effitech-test", Log: log}, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(users, auth.JWTConfig{
			Secret: JWTSecret, ExpMinutes: 60, Issuer: "effitech-test",
		}, log),
		UserUC:      usecase.NewUserUseCase(users, memory.NewTxRunner(store), log),
		PanelUC:     usecase.NewPanelUseCase(panels, users, log),
		ReportUC:    usecase.NewPanelReportUseCase(panels, infrapdf.NewMarotoReportGenerator(), log),
		DashboardUC: appanalytics.NewDashboardUseCase(),
		DB:          store,
		JWTSecret:   JWTSecret,
	})
}

// Start levanta la API en un servidor HTTP real y devuelve su URL base.
func Start(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(adaptor.FiberApp(NewApp()))
	t.Cleanup(srv.Close)
	return srv.URL
}
