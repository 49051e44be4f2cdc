package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/effitech/solar-api/internal/application/dto"
	"github.com/effitech/solar-api/internal/domain/entity"
	"github.com/effitech/solar-api/internal/domain/repository"
	"github.com/effitech/solar-api/pkg/logger"
)

// PanelReportGenerator puerto para renderizar el reporte de paneles (implementado en infrastructure/pdf).
type PanelReportGenerator interface {
	GeneratePanelReport(ctx context.Context, panels []*entity.PanelWithOwner, summary *dto.PanelSummaryResponse) ([]byte, error)
}

// PanelReportUseCase genera el reporte PDF del inventario completo de paneles.
type PanelReportUseCase struct {
	panels    repository.PanelRepository
	generator PanelReportGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewPanelReportUseCase construye el caso de uso.
func NewPanelReportUseCase(panels repository.PanelRepository, generator PanelReportGenerator, log *logger.Logger) *PanelReportUseCase {
	return &PanelReportUseCase{panels: panels, generator: generator, log: log, now: time.Now}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *PanelReportUseCase) Download(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	list, err := uc.panels.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: listar paneles: %w", err)
	}
	pdfBytes, err = uc.generator.GeneratePanelReport(ctx, list, Summarize(list))
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar pdf: %w", err)
	}
	filename = fmt.Sprintf("paneles_%s.pdf", uc.now().Format("20060102"))
	uc.log.Info().Int("paneles", len(list)).Int("bytes", len(pdfBytes)).Msg("reporte de paneles generado")
	return pdfBytes, filename, nil
}
