package middleware

import (
	"errors"

	"github.com/MalenaSein/anime-tracker/internal/config"
	"github.com/MalenaSein/anime-tracker/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Machine-readable 401 codes: clients distinguish an expired session
// (re-login) from a corrupt or missing token.
const (
	CodeTokenMissing = "token_missing"
	CodeTokenExpired = "token_expired"
	CodeTokenInvalid = "token_invalid"
)

// JWTProtected gates a route behind a valid Bearer token.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			switch {
			case errors.Is(err, jwtware.ErrJWTMissingOrMalformed):
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: "No se proporcionó token de autenticación", Code: CodeTokenMissing,
				})
			case errors.Is(err, jwt.ErrTokenExpired):
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: "Token expirado, por favor inicia sesión nuevamente", Code: CodeTokenExpired,
				})
			default:
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: "Token inválido", Code: CodeTokenInvalid,
				})
			}
		},
	})
}

// UserID extracts the authenticated user's id from the JWT claims the
// middleware stored in context.
func UserID(c *fiber.Ctx) (uint, error) {
	claims, err := tokenClaims(c)
	if err != nil {
		return 0, err
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return 0, errors.New("missing id claim")
	}
	return uint(id), nil
}

// Username extracts the authenticated user's name from the JWT claims.
func Username(c *fiber.Ctx) (string, error) {
	claims, err := tokenClaims(c)
	if err != nil {
		return "", err
	}

	username, ok := claims["username"].(string)
	if !ok {
		return "", errors.New("missing username claim")
	}
	return username, nil
}

func tokenClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
