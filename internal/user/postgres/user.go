package postgres

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
	"github.com/dfquintero/plan-seguimiento/internal/user"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var u user.User
	if err := r.db.Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) Create(u *user.User) error {
	err := r.db.Create(u).Error
	if err != nil && isUniqueViolation(err) {
		return internal.ErrEmailExists
	}
	return err
}

func (r *UserRepository) Update(u *user.User) error {
	// Save with explicit column selection so clearing entidad_perm to NULL
	// and entidad_auditor to false actually persists.
	return r.db.Model(u).
		Select("role", "entidad", "entidad_perm", "entidad_auditor").
		Updates(map[string]interface{}{
			"role":            u.Role,
			"entidad":         u.Entidad,
			"entidad_perm":    u.EntidadPerm,
			"entidad_auditor": u.EntidadAuditor,
		}).Error
}

func (r *UserRepository) UpdatePassword(id int64, digest string) error {
	return r.db.Model(&user.User{}).
		Where("id = ?", id).
		Update("hashed_password", digest).Error
}

func (r *UserRepository) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&user.User{}).Where("role = ?", auth.RoleAdmin).Count(&count).Error
	return count, err
}

// DeleteWithRelink detaches weak references before the delete so engines with
// strict FK enforcement accept it. Everything runs in one transaction; any
// failure rolls back and surfaces as a conflict.
func (r *UserRepository) DeleteWithRelink(id int64) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("plan_accion").
			Where("created_by = ?", id).
			Update("created_by", nil).Error; err != nil {
			return err
		}
		if err := tx.Table("seguimiento").
			Where("updated_by_id = ?", id).
			Update("updated_by_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user.User{}, id).Error
	})
	if err != nil {
		return internal.ErrUserReferenced.WithCause(err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
