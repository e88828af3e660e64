package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
	"github.com/dfquintero/plan-seguimiento/internal/plan"
)

// PlanRepository implements plan.Repository using GORM. LOWER(...) LIKE is
// used instead of ILIKE so the same queries run on sqlite in development.
type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) plan.Repository {
	return &PlanRepository{db: db}
}

func scoped(db *gorm.DB, scope auth.Scope) *gorm.DB {
	if scope.All {
		return db
	}
	return db.Where("LOWER(nombre_entidad) = LOWER(?)", scope.Entidad)
}

func (r *PlanRepository) ListPlans(scope auth.Scope, q string, skip, limit int) ([]*plan.PlanAccion, error) {
	query := scoped(r.db.Model(&plan.PlanAccion{}), scope)

	if q != "" {
		query = query.Where("LOWER(nombre_entidad) LIKE LOWER(?)", "%"+q+"%")
	}

	var plans []*plan.PlanAccion
	err := query.Order("id DESC").Offset(skip).Limit(limit).Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) GetPlan(id int64) (*plan.PlanAccion, error) {
	var p plan.PlanAccion
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrPlanNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PlanRepository) CreatePlan(p *plan.PlanAccion) error {
	return r.db.Create(p).Error
}

func (r *PlanRepository) SavePlan(p *plan.PlanAccion) error {
	return r.db.Save(p).Error
}

// DeletePlanCascade removes the follow-ups first so the delete also works on
// engines without ON DELETE CASCADE applied.
func (r *PlanRepository) DeletePlanCascade(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).Delete(&plan.Seguimiento{}).Error; err != nil {
			return err
		}
		return tx.Delete(&plan.PlanAccion{}, id).Error
	})
}

func (r *PlanRepository) UsedIndicators(scope auth.Scope) ([]string, error) {
	query := r.db.Model(&plan.Seguimiento{}).
		Joins("JOIN plan_accion ON plan_accion.id = seguimiento.plan_id").
		Where("seguimiento.indicador IS NOT NULL AND TRIM(seguimiento.indicador) <> ''")
	if !scope.All {
		query = query.Where("LOWER(plan_accion.nombre_entidad) = LOWER(?)", scope.Entidad)
	}

	var indicators []string
	err := query.
		Distinct("seguimiento.indicador").
		Order("seguimiento.indicador ASC").
		Pluck("seguimiento.indicador", &indicators).Error
	return indicators, err
}

func (r *PlanRepository) ListFollowUps(planID int64) ([]*plan.Seguimiento, error) {
	var entries []*plan.Seguimiento
	err := r.db.Model(&plan.Seguimiento{}).
		Select("seguimiento.*, users.email AS updated_by_email, users.entidad AS updated_by_entidad").
		Joins("LEFT JOIN users ON users.id = seguimiento.updated_by_id").
		Where("seguimiento.plan_id = ?", planID).
		Order("seguimiento.id ASC").
		Find(&entries).Error
	return entries, err
}

func (r *PlanRepository) GetFollowUp(id int64) (*plan.Seguimiento, error) {
	var entry plan.Seguimiento
	if err := r.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrSegNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *PlanRepository) CreateFollowUp(s *plan.Seguimiento) error {
	return r.db.Create(s).Error
}

func (r *PlanRepository) SaveFollowUp(s *plan.Seguimiento) error {
	return r.db.Save(s).Error
}

func (r *PlanRepository) DeleteFollowUp(id int64) error {
	return r.db.Delete(&plan.Seguimiento{}, id).Error
}
