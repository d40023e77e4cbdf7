package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/rentas-dashboard/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testEmail  = "admin@malls.test"
	testIssuer = "rentas-dashboard-test"
)

func newSigner(t *testing.T, secret, issuer string) *pkgjwt.Signer {
	t.Helper()
	s, err := pkgjwt.NewSigner(secret, issuer, time.Hour)
	require.NoError(t, err)
	return s
}

func TestSignAndVerify(t *testing.T) {
	s := newSigner(t, testSecret, testIssuer)
	tok, err := s.Sign(testEmail, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, testEmail, claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestNewSigner_SecretVacio(t *testing.T) {
	_, err := pkgjwt.NewSigner("", testIssuer, time.Hour)
	assert.ErrorIs(t, err, pkgjwt.ErrEmptySecret)
}

func TestNewSigner_TTLPorDefecto(t *testing.T) {
	s, err := pkgjwt.NewSigner(testSecret, "", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, s.TTL())
}

func TestVerify_TokenExpirado(t *testing.T) {
	s := newSigner(t, testSecret, testIssuer)
	tok, err := s.SignWithTTL(testEmail, "admin", -time.Minute)
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestVerify_SecretIncorrecto(t *testing.T) {
	tok, err := newSigner(t, testSecret, testIssuer).Sign(testEmail, "admin")
	require.NoError(t, err)

	_, err = newSigner(t, "otro-secret-completamente-distinto", testIssuer).Verify(tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestVerify_IssuerDistinto(t *testing.T) {
	tok, err := newSigner(t, testSecret, "otro-issuer").Sign(testEmail, "admin")
	require.NoError(t, err)

	_, err = newSigner(t, testSecret, testIssuer).Verify(tok)
	assert.Error(t, err)
}

func TestVerify_Basura(t *testing.T) {
	_, err := newSigner(t, testSecret, testIssuer).Verify("no.es.jwt")
	assert.Error(t, err)
}

func TestSign_TokensDistintos(t *testing.T) {
	s := newSigner(t, testSecret, testIssuer)
	a, err := s.Sign(testEmail, "admin")
	require.NoError(t, err)
	b, err := s.Sign(testEmail, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "cada token lleva su propio jti")
}
