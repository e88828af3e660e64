package user

// User is the stored identity record. Role and the entity-scoped permission
// fields drive the Access Control Engine; HashedPassword never leaves the
// service layer.
type User struct {
	ID             int64   `json:"id" gorm:"primaryKey"`
	Email          string  `json:"email" gorm:"column:email;uniqueIndex;not null"`
	HashedPassword string  `json:"-" gorm:"column:hashed_password;not null"`
	Role           string  `json:"role" gorm:"column:role;not null;default:entidad"`
	Entidad        string  `json:"entidad" gorm:"column:entidad;not null"`
	EntidadPerm    *string `json:"entidad_perm" gorm:"column:entidad_perm"`
	EntidadAuditor bool    `json:"entidad_auditor" gorm:"column:entidad_auditor;not null;default:false"`
}

func (User) TableName() string {
	return "users"
}

// Repository is the data access contract for identities. Implementations
// must translate uniqueness violations to internal.ErrEmailExists and missing
// rows to internal.ErrUserNotFound.
type Repository interface {
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	List() ([]*User, error)
	Create(u *User) error
	Update(u *User) error
	UpdatePassword(id int64, digest string) error
	CountAdmins() (int64, error)
	// DeleteWithRelink nulls every plan_accion.created_by and
	// seguimiento.updated_by_id pointing at the user, then deletes the row,
	// all inside one transaction. Any failure rolls the whole thing back.
	DeleteWithRelink(id int64) error
}
