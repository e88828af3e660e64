package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
)

// userRecord maps the slice of the users table the verifier needs.
type userRecord struct {
	ID             int64   `gorm:"primaryKey"`
	Email          string  `gorm:"column:email"`
	HashedPassword string  `gorm:"column:hashed_password"`
	Role           string  `gorm:"column:role"`
	Entidad        string  `gorm:"column:entidad"`
	EntidadPerm    *string `gorm:"column:entidad_perm"`
	EntidadAuditor bool    `gorm:"column:entidad_auditor"`
}

func (userRecord) TableName() string {
	return "users"
}

func (r *userRecord) toUser() *auth.User {
	return &auth.User{
		ID:             r.ID,
		Email:          r.Email,
		Role:           r.Role,
		Entidad:        r.Entidad,
		EntidadPerm:    r.EntidadPerm,
		EntidadAuditor: r.EntidadAuditor,
	}
}

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.UserRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetByID(id int64) (*auth.User, error) {
	var rec userRecord
	if err := r.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return rec.toUser(), nil
}

func (r *AuthRepository) GetByEmail(email string) (*auth.User, error) {
	var rec userRecord
	if err := r.db.Where("email = ?", email).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return rec.toUser(), nil
}

func (r *AuthRepository) GetCredentials(email string) (*auth.User, string, error) {
	var rec userRecord
	if err := r.db.Where("email = ?", email).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", internal.ErrUserNotFound
		}
		return nil, "", err
	}
	return rec.toUser(), rec.HashedPassword, nil
}
