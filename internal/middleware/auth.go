package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"fastlm/internal/auth"
)

// AuthMiddleware는 Bearer 토큰을 검증하고 로그인 정보를 c.Locals에 싣습니다.
func AuthMiddleware(authService *auth.Service) fiber.Handler {

	return func(c *fiber.Ctx) error {
		session, err := authService.Verify(auth.BearerToken(c))
		if err != nil {
			log.Printf("[WARN] 미들웨어: 인증되지 않은 접근 (%s)", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "로그인이 필요합니다."})
		}

		c.Locals("user_id", session.UserID)
		c.Locals("user_role", session.Role)
		return c.Next()
	}
}
