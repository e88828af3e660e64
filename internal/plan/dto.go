package plan

import (
	"strings"

	"github.com/dfquintero/plan-seguimiento/internal"
)

// CreatePlanDTO carries a new plan. nombre_entidad is required for admins
// and auditors; entidad callers have it overwritten with their own entity.
type CreatePlanDTO struct {
	NombreEntidad             string         `json:"nombre_entidad"`
	InsumoMejora              *string        `json:"insumo_mejora"`
	TipoAccionMejora          *string        `json:"tipo_accion_mejora"`
	AccionMejoraPlanteada     *string        `json:"accion_mejora_planteada"`
	ObservacionInformeCalidad *string        `json:"observacion_informe_calidad"`
	DescripcionActividades    *string        `json:"descripcion_actividades"`
	EvidenciaCumplimiento     *string        `json:"evidencia_cumplimiento"`
	FechaInicio               *internal.Date `json:"fecha_inicio"`
	FechaFinal                *internal.Date `json:"fecha_final"`
	Seguimiento               *string        `json:"seguimiento"`
	EnlaceEntidad             *string        `json:"enlace_entidad"`
	ObservacionCalidad        *string        `json:"observacion_calidad"`
	Estado                    *string        `json:"estado"`
	Indicador                 *string        `json:"indicador"`
	Criterio                  *string        `json:"criterio"`
	AprobadoEvaluador         *string        `json:"aprobado_evaluador"`
}

func (d *CreatePlanDTO) Validate(entidadRequired bool) error {
	d.NombreEntidad = strings.TrimSpace(d.NombreEntidad)
	if entidadRequired && d.NombreEntidad == "" {
		return internal.NewValidationError("El campo 'nombre_entidad' es obligatorio", internal.ErrCodeEntidadRequired)
	}
	return nil
}

// UpdatePlanDTO is a partial update: nil means "leave untouched".
// nombre_entidad is deliberately absent; the owning entity never changes
// through this endpoint.
type UpdatePlanDTO struct {
	InsumoMejora              *string        `json:"insumo_mejora"`
	TipoAccionMejora          *string        `json:"tipo_accion_mejora"`
	AccionMejoraPlanteada     *string        `json:"accion_mejora_planteada"`
	ObservacionInformeCalidad *string        `json:"observacion_informe_calidad"`
	DescripcionActividades    *string        `json:"descripcion_actividades"`
	EvidenciaCumplimiento     *string        `json:"evidencia_cumplimiento"`
	FechaInicio               *internal.Date `json:"fecha_inicio"`
	FechaFinal                *internal.Date `json:"fecha_final"`
	Seguimiento               *string        `json:"seguimiento"`
	EnlaceEntidad             *string        `json:"enlace_entidad"`
	ObservacionCalidad        *string        `json:"observacion_calidad"`
	Estado                    *string        `json:"estado"`
	Indicador                 *string        `json:"indicador"`
	Criterio                  *string        `json:"criterio"`
	AprobadoEvaluador         *string        `json:"aprobado_evaluador"`
}

func (d *UpdatePlanDTO) apply(p *PlanAccion) {
	if d.InsumoMejora != nil {
		p.InsumoMejora = d.InsumoMejora
	}
	if d.TipoAccionMejora != nil {
		p.TipoAccionMejora = d.TipoAccionMejora
	}
	if d.AccionMejoraPlanteada != nil {
		p.AccionMejoraPlanteada = d.AccionMejoraPlanteada
	}
	if d.ObservacionInformeCalidad != nil {
		p.ObservacionInformeCalidad = d.ObservacionInformeCalidad
	}
	if d.DescripcionActividades != nil {
		p.DescripcionActividades = d.DescripcionActividades
	}
	if d.EvidenciaCumplimiento != nil {
		p.EvidenciaCumplimiento = d.EvidenciaCumplimiento
	}
	if d.FechaInicio != nil {
		p.FechaInicio = normalizeDate(d.FechaInicio)
	}
	if d.FechaFinal != nil {
		p.FechaFinal = normalizeDate(d.FechaFinal)
	}
	if d.Seguimiento != nil {
		p.Seguimiento = d.Seguimiento
	}
	if d.EnlaceEntidad != nil {
		p.EnlaceEntidad = d.EnlaceEntidad
	}
	if d.ObservacionCalidad != nil {
		p.ObservacionCalidad = d.ObservacionCalidad
	}
	if d.Estado != nil {
		p.Estado = *d.Estado
	}
	if d.Indicador != nil {
		p.Indicador = d.Indicador
	}
	if d.Criterio != nil {
		p.Criterio = d.Criterio
	}
	if d.AprobadoEvaluador != nil {
		p.AprobadoEvaluador = d.AprobadoEvaluador
	}
}

// SeguimientoDTO serves both create and partial update of follow-ups.
// criterio is accepted but only promotes to the parent plan.
type SeguimientoDTO struct {
	AjusteDeID                *int64         `json:"ajuste_de_id"`
	Indicador                 *string        `json:"indicador"`
	ObservacionInformeCalidad *string        `json:"observacion_informe_calidad"`
	InsumoMejora              *string        `json:"insumo_mejora"`
	TipoAccionMejora          *string        `json:"tipo_accion_mejora"`
	AccionMejoraPlanteada     *string        `json:"accion_mejora_planteada"`
	DescripcionActividades    *string        `json:"descripcion_actividades"`
	EvidenciaCumplimiento     *string        `json:"evidencia_cumplimiento"`
	FechaInicio               *internal.Date `json:"fecha_inicio"`
	FechaFinal                *internal.Date `json:"fecha_final"`
	Seguimiento               *string        `json:"seguimiento"`
	EnlaceEntidad             *string        `json:"enlace_entidad"`
	ObservacionCalidad        *string        `json:"observacion_calidad"`
	Criterio                  *string        `json:"criterio"`
}

func (d *SeguimientoDTO) apply(s *Seguimiento) {
	if d.AjusteDeID != nil {
		s.AjusteDeID = d.AjusteDeID
	}
	if d.Indicador != nil {
		s.Indicador = d.Indicador
	}
	if d.ObservacionInformeCalidad != nil {
		s.ObservacionInformeCalidad = d.ObservacionInformeCalidad
	}
	if d.InsumoMejora != nil {
		s.InsumoMejora = d.InsumoMejora
	}
	if d.TipoAccionMejora != nil {
		s.TipoAccionMejora = d.TipoAccionMejora
	}
	if d.AccionMejoraPlanteada != nil {
		s.AccionMejoraPlanteada = d.AccionMejoraPlanteada
	}
	if d.DescripcionActividades != nil {
		s.DescripcionActividades = d.DescripcionActividades
	}
	if d.EvidenciaCumplimiento != nil {
		s.EvidenciaCumplimiento = d.EvidenciaCumplimiento
	}
	if d.FechaInicio != nil {
		s.FechaInicio = normalizeDate(d.FechaInicio)
	}
	if d.FechaFinal != nil {
		s.FechaFinal = normalizeDate(d.FechaFinal)
	}
	if d.Seguimiento != nil {
		s.Seguimiento = d.Seguimiento
	}
	if d.EnlaceEntidad != nil {
		s.EnlaceEntidad = d.EnlaceEntidad
	}
	if d.ObservacionCalidad != nil {
		s.ObservacionCalidad = d.ObservacionCalidad
	}
}

// ObservationDTO carries the auditor feedback that moves a plan to Observado.
type ObservationDTO struct {
	Observacion string `json:"observacion"`
}

func (d *ObservationDTO) Validate() error {
	d.Observacion = strings.TrimSpace(d.Observacion)
	if d.Observacion == "" {
		return internal.NewValidationError("La observación no puede estar vacía", internal.ErrCodeValidationFailed)
	}
	return nil
}

// StatusDTO sets the plan estado verbatim.
type StatusDTO struct {
	Estado string `json:"estado"`
}

func (d *StatusDTO) Validate() error {
	if strings.TrimSpace(d.Estado) == "" {
		return internal.NewValidationError("El campo 'estado' es obligatorio", internal.ErrCodeValidationFailed)
	}
	return nil
}

// normalizeDate maps the legacy "" payloads (which decode to a zero Date)
// back to SQL NULL.
func normalizeDate(d *internal.Date) *internal.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}

func normalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
