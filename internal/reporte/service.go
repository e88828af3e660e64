package reporte

import (
	"fmt"
	"log/slog"

	"github.com/dfquintero/plan-seguimiento/internal"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List() ([]*Reporte, error) {
	return s.repo.List()
}

// GetByEntidad groups the entity's rows into the shape the dashboard
// consumes. Rows with a missing indicador or criterio are skipped.
func (s *Service) GetByEntidad(entidad string) (*EntidadReportes, error) {
	rows, err := s.repo.ListByEntidad(entidad)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, internal.ErrReporteNotFound
	}

	out := &EntidadReportes{
		Entidad:     rows[0].Entidad,
		Indicadores: make([]IndicadorItem, 0, len(rows)),
	}
	for _, r := range rows {
		if r.Indicador == "" || r.Criterio == "" {
			continue
		}
		out.Indicadores = append(out.Indicadores, IndicadorItem{
			Indicador: r.Indicador,
			Criterio:  r.Criterio,
			Accion:    r.Accion,
			Insumo:    r.Insumo,
		})
	}
	return out, nil
}

func (s *Service) BulkLoad(dto BulkLoadDTO) (*BulkLoadResult, error) {
	if err := s.repo.BulkInsert(dto.Reportes); err != nil {
		s.logger.Error("failed to bulk insert reportes", "error", err, "count", len(dto.Reportes))
		return nil, err
	}
	s.logger.Info("reportes loaded", "count", len(dto.Reportes))
	return &BulkLoadResult{Insertados: len(dto.Reportes)}, nil
}

func (s *Service) DeleteAll() (*DeleteResult, error) {
	deleted, err := s.repo.DeleteAll()
	if err != nil {
		s.logger.Error("failed to clear reportes", "error", err)
		return nil, err
	}
	s.logger.Info("reportes cleared", "deleted", deleted)
	return &DeleteResult{Detail: fmt.Sprintf("%d registros eliminados", deleted)}, nil
}
