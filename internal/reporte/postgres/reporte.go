package postgres

import (
	"gorm.io/gorm"

	"github.com/dfquintero/plan-seguimiento/internal/reporte"
)

type ReporteRepository struct {
	db *gorm.DB
}

func NewReporteRepository(db *gorm.DB) reporte.Repository {
	return &ReporteRepository{db: db}
}

func (r *ReporteRepository) List() ([]*reporte.Reporte, error) {
	var rows []*reporte.Reporte
	err := r.db.Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *ReporteRepository) ListByEntidad(entidad string) ([]*reporte.Reporte, error) {
	var rows []*reporte.Reporte
	err := r.db.Where("LOWER(entidad) = LOWER(?)", entidad).Find(&rows).Error
	return rows, err
}

func (r *ReporteRepository) BulkInsert(rows []reporte.Reporte) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

func (r *ReporteRepository) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&reporte.Reporte{})
	return result.RowsAffected, result.Error
}
