package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
	"github.com/jhoicas/rentas-dashboard/internal/domain"
	"github.com/jhoicas/rentas-dashboard/pkg/jwt"
)

// RoleAdmin único rol con acceso al dashboard.
const RoleAdmin = "admin"

// AdminCredentials credenciales configuradas del administrador (password como hash bcrypt).
type AdminCredentials struct {
	Email        string
	PasswordHash string
}

// AuthUseCase login del administrador del dashboard. No hay tabla de usuarios:
// la única cuenta viene de la configuración.
type AuthUseCase struct {
	admin  AdminCredentials
	tokens *jwt.Signer
}

// NewAuthUseCase construye el caso de uso de auth. tokens nil deja la auth deshabilitada.
func NewAuthUseCase(admin AdminCredentials, tokens *jwt.Signer) *AuthUseCase {
	return &AuthUseCase{admin: admin, tokens: tokens}
}

// Enabled indica si la API exige token.
func (uc *AuthUseCase) Enabled() bool {
	return uc.tokens != nil
}

// Login verifica email/password y emite un JWT con rol admin.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.tokens == nil || uc.admin.PasswordHash == "" {
		return nil, domain.ErrForbidden // login deshabilitado
	}
	if !strings.EqualFold(strings.TrimSpace(in.Email), uc.admin.Email) {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := uc.tokens.Sign(uc.admin.Email, RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int(uc.tokens.TTL().Seconds()),
		Email:     uc.admin.Email,
		Role:      RoleAdmin,
	}, nil
}
