package user

import (
	"net/mail"
	"strings"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
)

const minPasswordLength = 8

// Roles assignable through the admin API. "ciudadano" exists only as a
// legacy stored value and cannot be assigned here.
func assignableRole(role string) bool {
	switch role {
	case auth.RoleAdmin, auth.RoleEntidad, auth.RoleAuditor:
		return true
	}
	return false
}

type CreateUserDTO struct {
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Role           string  `json:"role"`
	Entidad        string  `json:"entidad"`
	EntidadPerm    *string `json:"entidad_perm"`
	EntidadAuditor *bool   `json:"entidad_auditor"`
}

func (d *CreateUserDTO) Validate() error {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	if _, err := mail.ParseAddress(d.Email); err != nil {
		return internal.NewValidationError("Invalid email address", internal.ErrCodeInvalidEmail)
	}
	if len(d.Password) < minPasswordLength {
		return internal.NewValidationError("Password too short (min 8)", internal.ErrCodePasswordTooShort)
	}
	if !assignableRole(d.Role) {
		return internal.NewValidationError("Invalid role", internal.ErrCodeInvalidRole)
	}
	d.Entidad = strings.TrimSpace(d.Entidad)
	if d.Entidad == "" {
		return internal.NewValidationError("El campo 'entidad' es obligatorio", internal.ErrCodeEntidadRequired)
	}
	if d.EntidadPerm != nil && !auth.ValidEntidadPerm(*d.EntidadPerm) {
		return internal.NewValidationError("Invalid entidad_perm", internal.ErrCodeValidationFailed)
	}
	return nil
}

type PasswordResetDTO struct {
	NewPassword string `json:"new_password"`
}

func (d PasswordResetDTO) Validate() error {
	if len(d.NewPassword) < minPasswordLength {
		return internal.NewValidationError("Password too short (min 8)", internal.ErrCodePasswordTooShort)
	}
	return nil
}

type RoleUpdateDTO struct {
	Role string `json:"role"`
}

func (d RoleUpdateDTO) Validate() error {
	if !assignableRole(d.Role) {
		return internal.NewValidationError("Invalid role", internal.ErrCodeInvalidRole)
	}
	return nil
}

type PermUpdateDTO struct {
	EntidadPerm string `json:"entidad_perm"`
}

func (d PermUpdateDTO) Validate() error {
	if !auth.ValidEntidadPerm(d.EntidadPerm) {
		return internal.NewValidationError("Invalid entidad_perm", internal.ErrCodeValidationFailed)
	}
	return nil
}

type AuditorUpdateDTO struct {
	EntidadAuditor bool `json:"entidad_auditor"`
}
