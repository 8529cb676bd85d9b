package middleware

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims embute jwt.RegisteredClaims e adiciona os campos emitidos pelo
// serviço de autenticação do portal.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// ValidateJWT valida assinatura e expiração de um token HS256.
func ValidateJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	return claims, nil
}

func bearerToken(c *fiber.Ctx) string {
	tokenString := c.Get("Authorization")
	if len(tokenString) > 7 && strings.EqualFold(tokenString[:7], "Bearer ") {
		return tokenString[7:]
	}
	return tokenString
}

// AuthRequired protege as rotas de dashboard. Sem token válido, 401.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: No token provided",
			})
		}

		claims, err := ValidateJWT(tokenString)
		if err != nil {
			log.Printf("⚠️ AuthRequired: token inválido: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: Invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_role", claims.Role)
		return c.Next()
	}
}

// OptionalIdentity extrai a identidade do token quando presente, sem
// exigir autenticação. Tokens inválidos são ignorados: tracking nunca
// rejeita por credencial.
func OptionalIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Next()
		}

		if claims, err := ValidateJWT(tokenString); err == nil && claims.UserID != "" {
			c.Locals("user_id", claims.UserID)
		}
		return c.Next()
	}
}
