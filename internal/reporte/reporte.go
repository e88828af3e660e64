package reporte

// Reporte is one row of the externally loaded indicator matrix. The table is
// replaced wholesale on each load, so rows carry no audit columns.
type Reporte struct {
	ID        int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Entidad   string  `json:"entidad" gorm:"not null"`
	Indicador string  `json:"indicador" gorm:"not null"`
	Criterio  string  `json:"criterio" gorm:"not null"`
	Accion    string  `json:"accion" gorm:"not null"`
	Insumo    *string `json:"insumo"`
}

func (Reporte) TableName() string {
	return "reportes"
}

type BulkLoadDTO struct {
	Reportes []Reporte `json:"reportes"`
}

type BulkLoadResult struct {
	Insertados int `json:"insertados"`
}

// IndicadorItem is one row of the grouped per-entity view.
type IndicadorItem struct {
	Indicador string  `json:"indicador"`
	Criterio  string  `json:"criterio"`
	Accion    string  `json:"accion"`
	Insumo    *string `json:"insumo"`
}

type EntidadReportes struct {
	Entidad     string          `json:"entidad"`
	Indicadores []IndicadorItem `json:"indicadores"`
}

type DeleteResult struct {
	Detail string `json:"detail"`
}

type Repository interface {
	List() ([]*Reporte, error)
	ListByEntidad(entidad string) ([]*Reporte, error)
	BulkInsert(rows []Reporte) error
	DeleteAll() (int64, error)
}
