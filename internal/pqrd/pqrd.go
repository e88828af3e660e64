package pqrd

import (
	"github.com/dfquintero/plan-seguimiento/internal"
)

// PQRD is one citizen petition/complaint record loaded from the external
// tracking sheet. label identifies the record within a load; everything else
// is optional and blank values are stored as NULL.
type PQRD struct {
	ID           int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Label        string         `json:"label" gorm:"size:255;not null;index"`
	TipoGestion  *string        `json:"tipo_gestion" gorm:"column:tipo_gestion;size:255"`
	Dependencia  *string        `json:"dependencia" gorm:"size:255"`
	Entidad      *string        `json:"entidad" gorm:"size:255"`
	FechaIngreso *internal.Date `json:"fecha_ingreso" gorm:"column:fecha_ingreso;type:date"`
	Periodo      *string        `json:"periodo" gorm:"size:50"`
}

func (PQRD) TableName() string {
	return "pqrds"
}

// entry is the wire shape of one loaded row; blank strings collapse to NULL.
type entry struct {
	Label        string         `json:"label"`
	TipoGestion  string         `json:"tipo_gestion"`
	Dependencia  string         `json:"dependencia"`
	Entidad      string         `json:"entidad"`
	FechaIngreso *internal.Date `json:"fecha_ingreso"`
	Periodo      string         `json:"periodo"`
}

type BulkLoadDTO struct {
	Pqrds []entry `json:"pqrds"`
}

type BulkLoadResult struct {
	Insertados int `json:"insertados"`
}

type DeleteResult struct {
	Eliminados int64 `json:"eliminados"`
}

type Repository interface {
	List() ([]*PQRD, error)
	Count() (int64, error)
	GetByLabel(label string) (*PQRD, error)
	BulkInsert(rows []*PQRD) error
	DeleteAll() (int64, error)
}
