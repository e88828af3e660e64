package user

import (
	"log/slog"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
)

// PasswordHasher is satisfied by the auth service.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Service implements the identity lifecycle. Route-level middleware already
// gates these operations to admins; the service re-checks only the policies
// that depend on the caller's identity (self-demotion, self-deletion).
type Service struct {
	repo   Repository
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) List() ([]*User, error) {
	return s.repo.List()
}

func (s *Service) GetByID(userID int64) (*User, error) {
	return s.repo.GetByID(userID)
}

// Create registers a new identity. The entity-scoped fields are honored only
// for entidad-role users; for everyone else they are forced to their zero
// state regardless of what the payload carried.
func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	digest, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	var perm *string
	auditor := false
	if dto.Role == auth.RoleEntidad {
		perm = dto.EntidadPerm
		if dto.EntidadAuditor != nil {
			auditor = *dto.EntidadAuditor
		}
	}

	u := &User{
		Email:          dto.Email,
		HashedPassword: digest,
		Role:           dto.Role,
		Entidad:        dto.Entidad,
		EntidadPerm:    perm,
		EntidadAuditor: auditor,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, err
	}

	s.logger.Info("user created", "user_id", u.ID, "role", u.Role, "entidad", u.Entidad)
	return u, nil
}

func (s *Service) ResetPassword(userID int64, dto PasswordResetDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(userID); err != nil {
		return err
	}

	digest, err := s.hasher.HashPassword(dto.NewPassword)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}

	if err := s.repo.UpdatePassword(userID, digest); err != nil {
		s.logger.Error("failed to reset password", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("password reset", "user_id", userID)
	return nil
}

// UpdateRole changes a user's role and keeps the entity-scoped fields
// consistent: leaving entidad clears them, entering entidad defaults the
// permission to captura_reportes.
func (s *Service) UpdateRole(caller *auth.User, userID int64, dto RoleUpdateDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	target, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if target.ID == caller.ID && dto.Role != auth.RoleAdmin {
		return nil, internal.ErrSelfDemote
	}

	if target.Role == auth.RoleAdmin && dto.Role != auth.RoleAdmin {
		admins, err := s.repo.CountAdmins()
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, internal.ErrLastAdmin
		}
	}

	target.Role = dto.Role
	if dto.Role != auth.RoleEntidad {
		target.EntidadPerm = nil
		target.EntidadAuditor = false
	} else if target.EntidadPerm == nil {
		perm := auth.PermCapturaReportes
		target.EntidadPerm = &perm
	}

	if err := s.repo.Update(target); err != nil {
		s.logger.Error("failed to update role", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("role updated", "user_id", userID, "role", dto.Role)
	return target, nil
}

func (s *Service) UpdatePerm(userID int64, dto PermUpdateDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	target, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if target.Role != auth.RoleEntidad {
		return nil, internal.ErrPermForEntidadOnly
	}

	perm := dto.EntidadPerm
	target.EntidadPerm = &perm
	if err := s.repo.Update(target); err != nil {
		return nil, err
	}
	return target, nil
}

func (s *Service) UpdateAuditorFlag(userID int64, dto AuditorUpdateDTO) (*User, error) {
	target, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if target.Role != auth.RoleEntidad {
		return nil, internal.ErrPermForEntidadOnly
	}

	target.EntidadAuditor = dto.EntidadAuditor
	if err := s.repo.Update(target); err != nil {
		return nil, err
	}

	s.logger.Info("entidad auditor flag updated", "user_id", userID, "entidad_auditor", dto.EntidadAuditor)
	return target, nil
}

// Delete removes a user. Self-deletion and removing the sole remaining admin
// are refused; the relink of weak references and the row delete happen in one
// transaction so the user is never left partially deleted.
func (s *Service) Delete(caller *auth.User, userID int64) error {
	target, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}

	if target.ID == caller.ID {
		return internal.ErrSelfDelete
	}

	if target.Role == auth.RoleAdmin {
		admins, err := s.repo.CountAdmins()
		if err != nil {
			return err
		}
		if admins <= 1 {
			return internal.NewPolicyError("Cannot delete the last admin", internal.ErrCodeLastAdmin)
		}
	}

	if err := s.repo.DeleteWithRelink(userID); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", userID)
		return err
	}

	s.logger.Info("user deleted", "user_id", userID, "deleted_by", caller.ID)
	return nil
}
