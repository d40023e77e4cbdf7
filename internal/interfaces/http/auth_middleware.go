package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rentas-dashboard/internal/application/dto"
	"github.com/jhoicas/rentas-dashboard/pkg/jwt"
)

// Locals keys para email y rol en Fiber.
const (
	LocalEmail = "email"
	LocalRole  = "role"
)

// CookieToken cookie donde el login deja el JWT para la página HTML.
const CookieToken = "dashboard_token"

// TokenVerifier valida un token y devuelve sus claims (implementado por *jwt.Signer).
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// AuthMiddleware valida el JWT (Bearer Token o cookie dashboard_token) y carga email y rol en c.Locals.
func AuthMiddleware(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, msg := authenticate(c, tokens)
		if code != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		return c.Next()
	}
}

// PageAuthMiddleware igual que AuthMiddleware pero redirige a /login en vez de responder JSON.
func PageAuthMiddleware(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if code, _ := authenticate(c, tokens); code != "" {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// authenticate devuelve code vacío si el token es válido.
func authenticate(c *fiber.Ctx, tokens TokenVerifier) (code, msg string) {
	tokenString := ""
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "INVALID_TOKEN", "formato: Bearer <token>"
		}
		tokenString = strings.TrimSpace(parts[1])
	} else {
		tokenString = c.Cookies(CookieToken)
	}
	if tokenString == "" {
		return "MISSING_TOKEN", "Authorization header o cookie " + CookieToken + " requerido"
	}
	claims, err := tokens.Verify(tokenString)
	if err != nil {
		return "INVALID_TOKEN", "token inválido o expirado"
	}
	c.Locals(LocalEmail, claims.Email)
	c.Locals(LocalRole, claims.Role)
	return "", ""
}

// RequireRole deja pasar solo si el rol del token está en roles. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "rol sin permiso para este recurso",
		})
	}
}

// GetEmail devuelve el email del contexto (después del middleware de auth).
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
