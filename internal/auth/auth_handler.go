package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// AuthHandler는 인증 관련 핸들러입니다.
type AuthHandler struct {
	service *Service
}

// NewAuthHandler는 새 핸들러를 생성합니다.
func NewAuthHandler(service *Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// HandleLogin은 'POST /api/auth/login' 요청을 처리합니다.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}
	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "이메일과 비밀번호를 입력해주세요."})
	}

	token, user, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// HandleVerify는 'GET /api/auth/verify' 요청을 처리합니다. (토큰 유효성 확인)
func (h *AuthHandler) HandleVerify(c *fiber.Ctx) error {
	session, err := h.service.Verify(BearerToken(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(session)
}

// HandleLogout은 'POST /api/auth/logout' 요청을 처리합니다.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.service.Logout(BearerToken(c)); err != nil {
		log.Warnf("토큰 폐기 실패: %v", err)
	}
	return c.JSON(fiber.Map{"message": "로그아웃되었습니다."})
}

// BearerToken은 Authorization 헤더에서 토큰을 꺼냅니다. 없으면 빈 문자열입니다.
func BearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
