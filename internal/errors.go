package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypePolicy       ErrorType = "POLICY_ERROR"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodePasswordTooShort ErrorCode = "PASSWORD_TOO_SHORT"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	ErrCodeEntidadRequired  ErrorCode = "ENTIDAD_REQUIRED"
	ErrCodeInvalidRole      ErrorCode = "INVALID_ROLE"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeInsufficientRole   ErrorCode = "INSUFFICIENT_ROLE"

	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	ErrCodeEmailExists       ErrorCode = "EMAIL_EXISTS"
	ErrCodeSelfDelete        ErrorCode = "SELF_DELETE"
	ErrCodeSelfDemote        ErrorCode = "SELF_DEMOTE"
	ErrCodeLastAdmin         ErrorCode = "LAST_ADMIN"
	ErrCodePermNotApplicable ErrorCode = "PERM_NOT_APPLICABLE"
	ErrCodeUserReferenced    ErrorCode = "USER_REFERENCED"

	ErrCodePlanNotFound        ErrorCode = "PLAN_NOT_FOUND"
	ErrCodeSeguimientoNotFound ErrorCode = "SEGUIMIENTO_NOT_FOUND"
	ErrCodePqrdNotFound        ErrorCode = "PQRD_NOT_FOUND"
	ErrCodeHabilidadNotFound   ErrorCode = "HABILIDAD_NOT_FOUND"
	ErrCodeReporteNotFound     ErrorCode = "REPORTE_NOT_FOUND"

	ErrCodeUnsupportedMedia ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
	ErrCodeFileTooLarge     ErrorCode = "FILE_TOO_LARGE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewPolicyError covers protected invariants (last admin, self deletion).
// This API surfaces them as 400, not 403.
func NewPolicyError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypePolicy,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	// Login failure is 400 on this API, kept from the legacy frontend contract.
	ErrInvalidCredentials = &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeInvalidCredentials,
		Message:    "Credenciales inválidas",
		StatusCode: http.StatusBadRequest,
	}
	ErrInvalidToken = NewUnauthorizedError("Token inválido", ErrCodeInvalidToken)
	ErrTokenExpired = NewUnauthorizedError("Token expirado", ErrCodeTokenExpired)
	ErrForbidden    = NewForbiddenError("Sin permisos", ErrCodeInsufficientRole)
	ErrAdminOnly    = NewForbiddenError("Admin only", ErrCodeInsufficientRole)

	ErrUserNotFound = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrEmailExists  = NewConflictError("Email already exists", ErrCodeEmailExists)
	ErrSelfDelete   = NewPolicyError("You cannot delete your own account", ErrCodeSelfDelete)
	ErrSelfDemote   = NewPolicyError("You cannot remove your own admin access", ErrCodeSelfDemote)
	ErrLastAdmin    = NewPolicyError("Cannot remove the last admin", ErrCodeLastAdmin)

	ErrPermForEntidadOnly = NewPolicyError("Solo aplica para usuarios con rol 'entidad'", ErrCodePermNotApplicable)
	ErrUserReferenced     = NewConflictError("No se pudo eliminar porque existen referencias activas a este usuario", ErrCodeUserReferenced)

	ErrPlanNotFound = NewNotFoundError("Plan no encontrado", ErrCodePlanNotFound)
	ErrSegNotFound  = NewNotFoundError("Seguimiento no encontrado", ErrCodeSeguimientoNotFound)

	ErrReporteNotFound   = NewNotFoundError("No records found for that entity", ErrCodeReporteNotFound)
	ErrPqrdNotFound      = NewNotFoundError("PQRD not found", ErrCodePqrdNotFound)
	ErrHabilidadNotFound = NewNotFoundError("Habilidad no encontrada", ErrCodeHabilidadNotFound)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
