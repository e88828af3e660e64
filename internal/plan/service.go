package plan

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Service implements the plan lifecycle and follow-up operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListPlans returns plans visible to the caller, newest first. q matches
// case-insensitively across the descriptive text columns.
func (s *Service) ListPlans(caller *auth.User, q string, skip, limit int) ([]*PlanAccion, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListPlans(auth.ScopeForUser(caller), strings.TrimSpace(q), skip, limit)
}

func (s *Service) GetPlan(id int64) (*PlanAccion, error) {
	return s.repo.GetPlan(id)
}

// CreatePlan registers a plan. Entidad callers cannot create plans for other
// entities: their own entidad overrides whatever the payload carried.
func (s *Service) CreatePlan(caller *auth.User, dto CreatePlanDTO) (*PlanAccion, error) {
	ownEntity := caller.Role == auth.RoleEntidad && strings.TrimSpace(caller.Entidad) != ""
	if err := dto.Validate(!ownEntity); err != nil {
		return nil, err
	}
	if ownEntity {
		dto.NombreEntidad = strings.TrimSpace(caller.Entidad)
	}

	estado := EstadoPendiente
	if dto.Estado != nil && strings.TrimSpace(*dto.Estado) != "" {
		estado = *dto.Estado
	}

	p := &PlanAccion{
		NumPlanMejora:             newPlanNumber(),
		NombreEntidad:             dto.NombreEntidad,
		InsumoMejora:              dto.InsumoMejora,
		TipoAccionMejora:          dto.TipoAccionMejora,
		AccionMejoraPlanteada:     dto.AccionMejoraPlanteada,
		ObservacionInformeCalidad: dto.ObservacionInformeCalidad,
		DescripcionActividades:    dto.DescripcionActividades,
		EvidenciaCumplimiento:     dto.EvidenciaCumplimiento,
		FechaInicio:               normalizeDate(dto.FechaInicio),
		FechaFinal:                normalizeDate(dto.FechaFinal),
		Seguimiento:               dto.Seguimiento,
		EnlaceEntidad:             dto.EnlaceEntidad,
		ObservacionCalidad:        dto.ObservacionCalidad,
		Estado:                    estado,
		Indicador:                 dto.Indicador,
		Criterio:                  dto.Criterio,
		AprobadoEvaluador:         dto.AprobadoEvaluador,
		CreatedBy:                 callerRef(caller),
	}

	if err := s.repo.CreatePlan(p); err != nil {
		s.logger.Error("failed to create plan", "error", err, "entidad", p.NombreEntidad)
		return nil, err
	}

	s.logger.Info("plan created", "plan_id", p.ID, "num_plan_mejora", p.NumPlanMejora, "entidad", p.NombreEntidad)
	return p, nil
}

// UpdatePlan applies a partial update. The owning entity never changes here.
func (s *Service) UpdatePlan(id int64, dto UpdatePlanDTO) (*PlanAccion, error) {
	p, err := s.repo.GetPlan(id)
	if err != nil {
		return nil, err
	}

	dto.apply(p)
	if err := s.repo.SavePlan(p); err != nil {
		s.logger.Error("failed to update plan", "error", err, "plan_id", id)
		return nil, err
	}
	return p, nil
}

// SubmitForReview moves the plan to "En revisión" so the quality team picks
// it up. Any caller who can see the plan may submit it.
func (s *Service) SubmitForReview(id int64) (*PlanAccion, error) {
	return s.setEstado(id, EstadoEnRevision, nil)
}

// AddObservation records auditor feedback and moves the plan to "Observado".
func (s *Service) AddObservation(id int64, dto ObservationDTO) (*PlanAccion, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.setEstado(id, EstadoObservado, &dto.Observacion)
}

// SetStatus stores the estado verbatim; the review flow deliberately allows
// free-text states after the initial cycle.
func (s *Service) SetStatus(id int64, dto StatusDTO) (*PlanAccion, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.setEstado(id, dto.Estado, nil)
}

func (s *Service) setEstado(id int64, estado string, observacion *string) (*PlanAccion, error) {
	p, err := s.repo.GetPlan(id)
	if err != nil {
		return nil, err
	}

	p.Estado = estado
	if observacion != nil {
		p.ObservacionCalidad = observacion
	}

	if err := s.repo.SavePlan(p); err != nil {
		s.logger.Error("failed to update plan estado", "error", err, "plan_id", id, "estado", estado)
		return nil, err
	}

	s.logger.Info("plan estado updated", "plan_id", id, "estado", estado)
	return p, nil
}

// DeletePlan removes a plan and all of its follow-ups.
func (s *Service) DeletePlan(id int64) error {
	if _, err := s.repo.GetPlan(id); err != nil {
		return err
	}
	if err := s.repo.DeletePlanCascade(id); err != nil {
		s.logger.Error("failed to delete plan", "error", err, "plan_id", id)
		return err
	}
	s.logger.Info("plan deleted", "plan_id", id)
	return nil
}

// UsedIndicators lists the distinct non-blank follow-up indicators over the
// caller's visible plans, for the reporting dropdowns.
func (s *Service) UsedIndicators(caller *auth.User) ([]string, error) {
	raw, err := s.repo.UsedIndicators(auth.ScopeForUser(caller))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

// ListFollowUps returns the follow-up history of a plan, oldest first, with
// the author's email and entity resolved.
func (s *Service) ListFollowUps(planID int64) ([]*Seguimiento, error) {
	if _, err := s.repo.GetPlan(planID); err != nil {
		return nil, err
	}
	return s.repo.ListFollowUps(planID)
}

// CreateFollowUp adds an entry under a plan. A non-blank indicador or
// criterio in the payload promotes to the parent plan; criterio is never
// stored on the entry itself.
func (s *Service) CreateFollowUp(caller *auth.User, planID int64, dto SeguimientoDTO) (*Seguimiento, error) {
	p, err := s.repo.GetPlan(planID)
	if err != nil {
		return nil, err
	}

	entry := &Seguimiento{
		PlanID:      planID,
		UpdatedByID: callerRef(caller),
	}
	dto.apply(entry)
	entry.FechaInicio = normalizeDate(entry.FechaInicio)
	entry.FechaFinal = normalizeDate(entry.FechaFinal)

	if err := s.repo.CreateFollowUp(entry); err != nil {
		s.logger.Error("failed to create follow-up", "error", err, "plan_id", planID)
		return nil, err
	}

	if err := s.promote(p, dto.Indicador, dto.Criterio, nil); err != nil {
		return nil, err
	}

	s.logger.Info("follow-up created", "plan_id", planID, "seguimiento_id", entry.ID, "user_id", caller.ID)
	return entry, nil
}

// UpdateFollowUp applies a partial update to one entry. Plain entidad users
// cannot write observacion_calidad; the field is dropped from their payload
// rather than rejected so legacy clients keep working. A set enlace_entidad
// also mirrors onto the parent plan.
func (s *Service) UpdateFollowUp(caller *auth.User, planID, segID int64, dto SeguimientoDTO) (*Seguimiento, error) {
	p, err := s.repo.GetPlan(planID)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.GetFollowUp(segID)
	if err != nil {
		return nil, err
	}
	if entry.PlanID != planID {
		return nil, internal.ErrSegNotFound
	}

	if !auth.CanWriteObservacion(caller) {
		dto.ObservacionCalidad = nil
	}

	dto.apply(entry)
	entry.UpdatedByID = callerRef(caller)

	if err := s.repo.SaveFollowUp(entry); err != nil {
		s.logger.Error("failed to update follow-up", "error", err, "seguimiento_id", segID)
		return nil, err
	}

	if err := s.promote(p, dto.Indicador, dto.Criterio, dto.EnlaceEntidad); err != nil {
		return nil, err
	}

	s.logger.Info("follow-up updated", "plan_id", planID, "seguimiento_id", segID, "user_id", caller.ID)
	return entry, nil
}

// DeleteFollowUp removes one entry after verifying it belongs to the plan.
func (s *Service) DeleteFollowUp(planID, segID int64) error {
	entry, err := s.repo.GetFollowUp(segID)
	if err != nil {
		return err
	}
	if entry.PlanID != planID {
		return internal.ErrSegNotFound
	}
	if err := s.repo.DeleteFollowUp(segID); err != nil {
		s.logger.Error("failed to delete follow-up", "error", err, "seguimiento_id", segID)
		return err
	}
	s.logger.Info("follow-up deleted", "plan_id", planID, "seguimiento_id", segID)
	return nil
}

// promote copies follow-up fields that canonically live on the plan:
// indicador and criterio when non-blank, enlace_entidad whenever set.
func (s *Service) promote(p *PlanAccion, indicador, criterio, enlace *string) error {
	changed := false
	if v := normalizeText(indicador); v != nil {
		p.Indicador = v
		changed = true
	}
	if v := normalizeText(criterio); v != nil {
		p.Criterio = v
		changed = true
	}
	if enlace != nil {
		p.EnlaceEntidad = enlace
		changed = true
	}
	if !changed {
		return nil
	}
	if err := s.repo.SavePlan(p); err != nil {
		s.logger.Error("failed to promote follow-up fields to plan", "error", err, "plan_id", p.ID)
		return err
	}
	return nil
}

// newPlanNumber is a short human-pasteable identifier, distinct from the row
// id so renumbering imports never collide.
func newPlanNumber() string {
	return uuid.NewString()[:8]
}

// callerRef returns the caller id for audit columns, or nil for the
// synthetic user injected when authentication is disabled.
func callerRef(caller *auth.User) *int64 {
	if caller == nil || caller.ID <= 0 {
		return nil
	}
	id := caller.ID
	return &id
}
