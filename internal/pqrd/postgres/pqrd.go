package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/pqrd"
)

type PqrdRepository struct {
	db *gorm.DB
}

func NewPqrdRepository(db *gorm.DB) pqrd.Repository {
	return &PqrdRepository{db: db}
}

func (r *PqrdRepository) List() ([]*pqrd.PQRD, error) {
	var rows []*pqrd.PQRD
	err := r.db.Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *PqrdRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&pqrd.PQRD{}).Count(&total).Error
	return total, err
}

func (r *PqrdRepository) GetByLabel(label string) (*pqrd.PQRD, error) {
	var row pqrd.PQRD
	if err := r.db.Where("label = ?", label).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrPqrdNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *PqrdRepository) BulkInsert(rows []*pqrd.PQRD) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.Create(&rows).Error
}

func (r *PqrdRepository) DeleteAll() (int64, error) {
	result := r.db.Where("1 = 1").Delete(&pqrd.PQRD{})
	return result.RowsAffected, result.Error
}
