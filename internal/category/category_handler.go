package category

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// CategoryHandler는 카테고리 관련 핸들러입니다.
type CategoryHandler struct {
	store *Store
}

// NewCategoryHandler는 새 핸들러를 생성합니다.
func NewCategoryHandler(store *Store) *CategoryHandler {
	return &CategoryHandler{store: store}
}

// HandleGetCategories는 'GET /api/template-categories?workspaceId=' 요청을 처리합니다.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	var workspaceID *uint64
	if raw := c.Query("workspaceId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "유효하지 않은 workspaceId입니다."})
		}
		workspaceID = &id
	}

	categories, err := h.store.GetCategories(workspaceID)
	if err != nil {
		log.Errorf("카테고리 목록 조회 실패: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "카테고리를 불러오는데 실패했습니다."})
	}
	return c.JSON(categories)
}

// CreateCategoryRequest는 카테고리 생성 요청 바디입니다.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	WorkspaceID *uint64 `json:"workspaceId"`
}

// HandleCreateCategory는 'POST /api/template-categories' 요청을 처리합니다.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warnf("카테고리 생성 바디 파싱 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "카테고리 이름을 입력해주세요."})
	}

	category := &NoticeCategory{
		Name:        req.Name,
		Type:        "custom",
		Description: req.Description,
		WorkspaceID: req.WorkspaceID,
		IsActive:    true,
	}
	if err := h.store.CreateCategory(category); err != nil {
		log.Errorf("카테고리 생성 실패: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "카테고리 생성에 실패했습니다."})
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}
