package pqrd

import (
	"log/slog"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List() ([]*PQRD, error) {
	return s.repo.List()
}

func (s *Service) Count() (int64, error) {
	return s.repo.Count()
}

func (s *Service) GetByLabel(label string) (*PQRD, error) {
	return s.repo.GetByLabel(label)
}

func (s *Service) BulkLoad(dto BulkLoadDTO) (*BulkLoadResult, error) {
	rows := make([]*PQRD, 0, len(dto.Pqrds))
	for _, e := range dto.Pqrds {
		fecha := e.FechaIngreso
		if fecha != nil && fecha.IsZero() {
			fecha = nil
		}
		rows = append(rows, &PQRD{
			Label:        e.Label,
			TipoGestion:  optional(e.TipoGestion),
			Dependencia:  optional(e.Dependencia),
			Entidad:      optional(e.Entidad),
			FechaIngreso: fecha,
			Periodo:      optional(e.Periodo),
		})
	}

	if err := s.repo.BulkInsert(rows); err != nil {
		s.logger.Error("failed to bulk insert pqrds", "error", err, "count", len(rows))
		return nil, err
	}
	s.logger.Info("pqrds loaded", "count", len(rows))
	return &BulkLoadResult{Insertados: len(rows)}, nil
}

// DeleteAll wipes the collection. Unlike the other flat collections this one
// is admin-gated: the load is the system of record for citizen petitions.
func (s *Service) DeleteAll(caller *auth.User) (*DeleteResult, error) {
	if !caller.IsAdmin() {
		return nil, internal.ErrAdminOnly
	}

	deleted, err := s.repo.DeleteAll()
	if err != nil {
		s.logger.Error("failed to clear pqrds", "error", err)
		return nil, err
	}
	s.logger.Info("pqrds cleared", "deleted", deleted, "user_id", caller.ID)
	return &DeleteResult{Eliminados: deleted}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
