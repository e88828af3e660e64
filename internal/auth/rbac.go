package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dfquintero/plan-seguimiento/internal"
)

// Scope is the data-visibility filter a handler applies to plan-like queries.
// A zero Entidad with All=false would hide everything, so ScopeForUser never
// produces that combination.
type Scope struct {
	// All grants unfiltered cross-entity visibility.
	All bool
	// Entidad restricts results to plans whose nombre_entidad matches
	// case-insensitively. Only meaningful when All is false.
	Entidad string
}

// ScopeForUser computes the caller's visibility:
// admin and auditor see everything; an entidad user flagged as auditor also
// sees everything despite the entidad role; a plain entidad user is pinned
// to their own entity. Ciudadano callers are currently unfiltered.
func ScopeForUser(user *User) Scope {
	if user.Role == RoleEntidad && !user.EntidadAuditor {
		if entidad := strings.TrimSpace(user.Entidad); entidad != "" {
			return Scope{Entidad: entidad}
		}
	}
	return Scope{All: true}
}

// CanWriteObservacion gates the auditor-feedback field on follow-ups:
// auditors, admins and entidad users with the auditor flag may write it.
func CanWriteObservacion(user *User) bool {
	return user.HasAnyRole(RoleAuditor, RoleAdmin)
}

// RBACAuthorization provides role-check middleware around protected routes.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{logger: logger}
}

// RequireRoles rejects callers whose role is outside the allowed set,
// honoring the entidad+auditor capability exception of HasAnyRole.
func (ra *RBACAuthorization) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.HasAnyRole(roles...) {
				ra.logger.Warn("access denied: insufficient role",
					"user_id", user.ID,
					"role", user.Role,
					"entidad_auditor", user.EntidadAuditor,
					"required_roles", roles)
				status, body := internal.ErrForbidden.ToHTTPResponse()
				writeJSONError(w, status, body)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is shorthand for the admin-only surfaces (user management).
func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.IsAdmin() {
				ra.logger.Warn("access denied: admin required", "user_id", user.ID, "role", user.Role)
				status, body := internal.ErrAdminOnly.ToHTTPResponse()
				writeJSONError(w, status, body)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
