package plan

import (
	"time"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
)

// Lifecycle states a plan passes through. After an observation the entity may
// set any free-text estado, so only the first three are enforced values.
const (
	EstadoPendiente  = "Pendiente"
	EstadoEnRevision = "En revisión"
	EstadoObservado  = "Observado"
)

// PlanAccion is an improvement action plan owned by one public entity.
// Free-text fields are nullable to preserve the distinction between "never
// filled" and "filled with empty text" that the reporting views rely on.
type PlanAccion struct {
	ID                        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	NumPlanMejora             string         `json:"num_plan_mejora" gorm:"column:num_plan_mejora"`
	NombreEntidad             string         `json:"nombre_entidad" gorm:"column:nombre_entidad;not null;index"`
	InsumoMejora              *string        `json:"insumo_mejora" gorm:"column:insumo_mejora"`
	TipoAccionMejora          *string        `json:"tipo_accion_mejora" gorm:"column:tipo_accion_mejora"`
	AccionMejoraPlanteada     *string        `json:"accion_mejora_planteada" gorm:"column:accion_mejora_planteada"`
	ObservacionInformeCalidad *string        `json:"observacion_informe_calidad" gorm:"column:observacion_informe_calidad"`
	DescripcionActividades    *string        `json:"descripcion_actividades" gorm:"column:descripcion_actividades"`
	EvidenciaCumplimiento     *string        `json:"evidencia_cumplimiento" gorm:"column:evidencia_cumplimiento"`
	FechaInicio               *internal.Date `json:"fecha_inicio" gorm:"column:fecha_inicio;type:date"`
	FechaFinal                *internal.Date `json:"fecha_final" gorm:"column:fecha_final;type:date"`
	Seguimiento               *string        `json:"seguimiento" gorm:"column:seguimiento"`
	EnlaceEntidad             *string        `json:"enlace_entidad" gorm:"column:enlace_entidad"`
	ObservacionCalidad        *string        `json:"observacion_calidad" gorm:"column:observacion_calidad"`
	Estado                    string         `json:"estado" gorm:"column:estado;not null;default:Pendiente"`
	Indicador                 *string        `json:"indicador" gorm:"column:indicador"`
	Criterio                  *string        `json:"criterio" gorm:"column:criterio"`
	AprobadoEvaluador         *string        `json:"aprobado_evaluador" gorm:"column:aprobado_evaluador"`
	CreatedBy                 *int64         `json:"created_by" gorm:"column:created_by"`
	UpdatedAt                 time.Time      `json:"updated_at"`
}

func (PlanAccion) TableName() string {
	return "plan_accion"
}

// Seguimiento is one follow-up entry under a plan. It mirrors most plan
// fields so each entry is a self-contained snapshot of the reported progress.
// There is intentionally no criterio column: that value only promotes to the
// parent plan and is never stored per entry.
type Seguimiento struct {
	ID                        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	PlanID                    int64          `json:"plan_id" gorm:"column:plan_id;not null;index"`
	AjusteDeID                *int64         `json:"ajuste_de_id" gorm:"column:ajuste_de_id"`
	Indicador                 *string        `json:"indicador" gorm:"column:indicador"`
	ObservacionInformeCalidad *string        `json:"observacion_informe_calidad" gorm:"column:observacion_informe_calidad"`
	InsumoMejora              *string        `json:"insumo_mejora" gorm:"column:insumo_mejora"`
	TipoAccionMejora          *string        `json:"tipo_accion_mejora" gorm:"column:tipo_accion_mejora"`
	AccionMejoraPlanteada     *string        `json:"accion_mejora_planteada" gorm:"column:accion_mejora_planteada"`
	DescripcionActividades    *string        `json:"descripcion_actividades" gorm:"column:descripcion_actividades"`
	EvidenciaCumplimiento     *string        `json:"evidencia_cumplimiento" gorm:"column:evidencia_cumplimiento"`
	FechaInicio               *internal.Date `json:"fecha_inicio" gorm:"column:fecha_inicio;type:date"`
	FechaFinal                *internal.Date `json:"fecha_final" gorm:"column:fecha_final;type:date"`
	Seguimiento               *string        `json:"seguimiento" gorm:"column:seguimiento"`
	EnlaceEntidad             *string        `json:"enlace_entidad" gorm:"column:enlace_entidad"`
	ObservacionCalidad        *string        `json:"observacion_calidad" gorm:"column:observacion_calidad"`
	UpdatedByID               *int64         `json:"updated_by_id" gorm:"column:updated_by_id"`
	CreatedAt                 time.Time      `json:"created_at"`
	UpdatedAt                 time.Time      `json:"updated_at"`

	// Resolved from the users table on reads; never written.
	UpdatedByEmail   *string `json:"updated_by_email" gorm:"->;-:migration"`
	UpdatedByEntidad *string `json:"updated_by_entidad" gorm:"->;-:migration"`
}

func (Seguimiento) TableName() string {
	return "seguimiento"
}

// Repository is the persistence boundary for plans and their follow-ups.
type Repository interface {
	ListPlans(scope auth.Scope, q string, skip, limit int) ([]*PlanAccion, error)
	GetPlan(id int64) (*PlanAccion, error)
	CreatePlan(p *PlanAccion) error
	SavePlan(p *PlanAccion) error
	DeletePlanCascade(id int64) error
	UsedIndicators(scope auth.Scope) ([]string, error)

	ListFollowUps(planID int64) ([]*Seguimiento, error)
	GetFollowUp(id int64) (*Seguimiento, error)
	CreateFollowUp(s *Seguimiento) error
	SaveFollowUp(s *Seguimiento) error
	DeleteFollowUp(id int64) error
}
