package habilidad

import (
	"log/slog"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List() ([]*Habilidad, error) {
	return s.repo.List()
}

func (s *Service) BulkLoad(dto BulkLoadDTO) (*BulkLoadResult, error) {
	if err := s.repo.BulkInsert(dto.Habilidades); err != nil {
		s.logger.Error("failed to bulk insert habilidades", "error", err, "count", len(dto.Habilidades))
		return nil, err
	}
	s.logger.Info("habilidades loaded", "count", len(dto.Habilidades))
	return &BulkLoadResult{Insertados: len(dto.Habilidades)}, nil
}

func (s *Service) Delete(id int64) (*MessageResult, error) {
	if _, err := s.repo.GetByID(id); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete habilidad", "error", err, "habilidad_id", id)
		return nil, err
	}
	return &MessageResult{Message: "Habilidad eliminada exitosamente"}, nil
}

func (s *Service) DeleteAll() (*MessageResult, error) {
	if err := s.repo.DeleteAll(); err != nil {
		s.logger.Error("failed to clear habilidades", "error", err)
		return nil, err
	}
	s.logger.Info("habilidades cleared")
	return &MessageResult{Message: "Todas las habilidades han sido eliminadas exitosamente"}, nil
}
