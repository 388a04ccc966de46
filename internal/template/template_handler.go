package template

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// TemplateHandler는 템플릿 관련 핸들러입니다.
type TemplateHandler struct {
	service *Service
}

// NewTemplateHandler는 새 핸들러를 생성합니다.
func NewTemplateHandler(service *Service) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// HandleGetTemplates는 'GET /api/notice-templates?workspaceId=&categoryId=' 요청을 처리합니다.
func (h *TemplateHandler) HandleGetTemplates(c *fiber.Ctx) error {
	var workspaceID *uint64
	if raw := c.Query("workspaceId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "유효하지 않은 workspaceId입니다."})
		}
		workspaceID = &id
	}

	templates, err := h.service.GetTemplates(workspaceID, c.Query("categoryId"))
	if err != nil {
		log.Errorf("템플릿 목록 조회 실패: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "템플릿을 불러오는데 실패했습니다."})
	}
	return c.JSON(templates)
}

// HandleCreateTemplate는 'POST /api/notice-templates' 요청을 처리합니다.
func (h *TemplateHandler) HandleCreateTemplate(c *fiber.Ctx) error {
	var req CreateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warnf("템플릿 생성 바디 파싱 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}

	createdID := c.Locals("user_id").(uint64)

	tmpl, err := h.service.CreateTemplate(req, createdID)
	if err != nil {
		log.Errorf("템플릿 생성 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(tmpl)
}

// HandleUpdateTemplate는 'PUT /api/notice-templates/:id' 요청을 처리합니다.
func (h *TemplateHandler) HandleUpdateTemplate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "유효하지 않은 ID입니다."})
	}

	var req UpdateTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}

	tmpl, err := h.service.UpdateTemplate(id, req)
	if err != nil {
		log.Errorf("템플릿 수정 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(tmpl)
}

// HandleDeleteTemplate는 'DELETE /api/notice-templates/:id' 요청을 처리합니다.
func (h *TemplateHandler) HandleDeleteTemplate(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "유효하지 않은 ID입니다."})
	}

	if err := h.service.DeleteTemplate(id); err != nil {
		log.Errorf("템플릿 삭제 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
