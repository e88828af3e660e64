package habilidad

// Habilidad is one monthly training-coverage measurement per entity.
type Habilidad struct {
	ID                             int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Anio                           int     `json:"anio" gorm:"not null"`
	Mes                            int     `json:"mes" gorm:"not null"`
	IDEntidad                      int     `json:"id_entidad" gorm:"column:id_entidad;not null"`
	Entidad                        *string `json:"entidad" gorm:"size:255"`
	PctHabilidadesTecnicas         *int    `json:"pct_habilidades_tecnicas" gorm:"column:pct_habilidades_tecnicas"`
	NumCapacitadosTecnicas         *int    `json:"num_capacitados_tecnicas" gorm:"column:num_capacitados_tecnicas"`
	PctHabilidadesSocioemocionales *int    `json:"pct_habilidades_socioemocionales" gorm:"column:pct_habilidades_socioemocionales"`
	NumCapacitadosSocioemocionales *int    `json:"num_capacitados_socioemocionales" gorm:"column:num_capacitados_socioemocionales"`
}

func (Habilidad) TableName() string {
	return "habilidades"
}

type BulkLoadDTO struct {
	Habilidades []Habilidad `json:"habilidades"`
}

type BulkLoadResult struct {
	Insertados int `json:"insertados"`
}

type MessageResult struct {
	Message string `json:"message"`
}

type Repository interface {
	List() ([]*Habilidad, error)
	GetByID(id int64) (*Habilidad, error)
	BulkInsert(rows []Habilidad) error
	Delete(id int64) error
	DeleteAll() error
}
