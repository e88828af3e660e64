package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/habilidad"
)

type HabilidadRepository struct {
	db *gorm.DB
}

func NewHabilidadRepository(db *gorm.DB) habilidad.Repository {
	return &HabilidadRepository{db: db}
}

func (r *HabilidadRepository) List() ([]*habilidad.Habilidad, error) {
	var rows []*habilidad.Habilidad
	err := r.db.Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *HabilidadRepository) GetByID(id int64) (*habilidad.Habilidad, error) {
	var row habilidad.Habilidad
	if err := r.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrHabilidadNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *HabilidadRepository) BulkInsert(rows []habilidad.Habilidad) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

func (r *HabilidadRepository) Delete(id int64) error {
	return r.db.Delete(&habilidad.Habilidad{}, id).Error
}

func (r *HabilidadRepository) DeleteAll() error {
	return r.db.Where("1 = 1").Delete(&habilidad.Habilidad{}).Error
}
