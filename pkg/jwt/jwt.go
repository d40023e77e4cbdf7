// Package jwt firma y verifica los tokens de sesión del dashboard (HS256).
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrEmptySecret sin secreto no se firman tokens (auth deshabilitada).
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Claims claims registrados más email y rol del administrador.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Signer emite y valida tokens con un secreto y un issuer fijos.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewSigner construye el firmador. ttl <= 0 usa una hora.
func NewSigner(secret, issuer string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	s := &Signer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	s.parser = jwt.NewParser(opts...)
	return s, nil
}

// TTL vigencia de los tokens emitidos.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Sign emite un token para email/role. Cada token lleva un jti propio.
func (s *Signer) Sign(email, role string) (string, error) {
	return s.SignWithTTL(email, role, s.ttl)
}

// SignWithTTL como Sign pero con vigencia explícita (negativa = ya expirado).
func (s *Signer) SignWithTTL(email, role string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
		Role:  role,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwt.Sign: %w", err)
	}
	return tok, nil
}

// Verify valida firma, algoritmo, expiración e issuer y devuelve los claims.
func (s *Signer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwt.Verify: %w", err)
	}
	if !tok.Valid {
		return nil, errors.New("jwt.Verify: token inválido")
	}
	return claims, nil
}
