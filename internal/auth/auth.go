package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Roles form a closed set. Auditor capability for entidad users is NOT a
// role: it is the EntidadAuditor flag layered on top of RoleEntidad.
const (
	RoleAdmin     = "admin"
	RoleEntidad   = "entidad"
	RoleAuditor   = "auditor"
	RoleCiudadano = "ciudadano"
)

const (
	PermCapturaReportes     = "captura_reportes"
	PermReportesSeguimiento = "reportes_seguimiento"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEntidad, RoleAuditor, RoleCiudadano:
		return true
	}
	return false
}

func ValidEntidadPerm(perm string) bool {
	return perm == PermCapturaReportes || perm == PermReportesSeguimiento
}

// User is the authenticated principal resolved from a bearer token.
type User struct {
	ID             int64   `json:"id"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	Entidad        string  `json:"entidad"`
	EntidadPerm    *string `json:"entidad_perm"`
	EntidadAuditor bool    `json:"entidad_auditor"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsEntidadAuditor reports whether this is an entidad user carrying the
// cross-entity auditor capability flag.
func (u *User) IsEntidadAuditor() bool {
	return u.Role == RoleEntidad && u.EntidadAuditor
}

// HasAnyRole checks role membership with the single capability exception of
// this permission model: an entidad user flagged as auditor passes any check
// that admits "auditor".
func (u *User) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if u.Role == role {
			return true
		}
		if role == RoleAuditor && u.IsEntidadAuditor() {
			return true
		}
	}
	return false
}

// Claims are the signed session payload: subject email plus the identity
// and entity-scope context the Access Control Engine needs.
type Claims struct {
	UserID         int64   `json:"uid"`
	Role           string  `json:"role"`
	Entidad        string  `json:"entidad"`
	EntidadPerm    *string `json:"entidad_perm"`
	EntidadAuditor bool    `json:"entidad_auditor"`
	jwt.RegisteredClaims
}

type TokenGeneratorAPI interface {
	Generate(user *User) (string, error)
	Validate(tokenString string) (*Claims, error)
}

// UserRepository is the minimal identity lookup the verifier needs.
type UserRepository interface {
	GetByID(id int64) (*User, error)
	GetByEmail(email string) (*User, error)
	// GetCredentials returns the stored principal and password digest for login.
	GetCredentials(email string) (*User, string, error)
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (TokenResponse, error)
	ResolveToken(tokenString string) (*User, error)
	HashPassword(password string) (string, error)
}

type ctxKey string

const ContextUserKey ctxKey = "authUser"

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(ContextUserKey).(*User)
	return user, ok && user != nil
}

func VerifyPassword(digest, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
}

// SyntheticAdmin is the implicit identity every request resolves to when
// authentication is disabled for local development.
func SyntheticAdmin() *User {
	return &User{
		ID:    0,
		Email: "guest@demo.com",
		Role:  RoleAdmin,
	}
}
