package auth

// LoginDTO carries the form-encoded credentials of POST /auth/token.
// The field is named username on the wire but holds the user's email.
type LoginDTO struct {
	Username string
	Password string
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MeResponse echoes the resolved identity for GET /auth/me.
type MeResponse struct {
	ID             int64   `json:"id"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	Entidad        string  `json:"entidad"`
	EntidadPerm    *string `json:"entidad_perm"`
	EntidadAuditor bool    `json:"entidad_auditor"`
}
