package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"fastlm/internal/auth"
)

// AdminOnlyMiddleware는 AuthMiddleware 다음에 실행되어야 하며,
// c.Locals의 'user_role'이 ADMIN인지 확인합니다.
func AdminOnlyMiddleware() fiber.Handler {

	return func(c *fiber.Ctx) error {
		role := c.Locals("user_role")
		if role == nil || role.(string) != auth.RoleAdmin {
			log.Printf("[WARN] [Admin] 권한 없는 접근 (Role: %v, Path: %s)", role, c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "관리자 권한이 필요합니다."})
		}
		return c.Next()
	}
}
