package dto

// LoginRequest entrada para login del administrador.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginResponse token JWT emitido.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
	Email     string `json:"email"`
	Role      string `json:"role"`
}
