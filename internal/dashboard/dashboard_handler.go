package dashboard

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// DashboardHandler는 대시보드 관련 핸들러입니다.
type DashboardHandler struct {
	service *Service
}

// NewDashboardHandler는 새 핸들러를 생성합니다.
func NewDashboardHandler(service *Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// HandleGetSummary는 'GET /api/dashboard?workspaceId=' 요청을 처리합니다.
func (h *DashboardHandler) HandleGetSummary(c *fiber.Ctx) error {
	workspaceID, err := strconv.ParseUint(c.Query("workspaceId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "유효하지 않은 workspaceId입니다."})
	}

	summary, err := h.service.GetSummary(workspaceID)
	if err != nil {
		log.Errorf("대시보드 집계 실패: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "대시보드를 불러오는데 실패했습니다."})
	}
	return c.JSON(summary)
}

// HandleGetCalendar는 'GET /api/notices/calendar?workspaceId=&month=' 요청을
// 처리합니다. month는 "YYYY-MM" 형식입니다.
func (h *DashboardHandler) HandleGetCalendar(c *fiber.Ctx) error {
	workspaceID, err := strconv.ParseUint(c.Query("workspaceId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "유효하지 않은 workspaceId입니다."})
	}

	cells, err := h.service.GetCalendar(workspaceID, c.Query("month"))
	if err != nil {
		log.Errorf("달력 조회 실패: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "달력을 불러오는데 실패했습니다."})
	}
	return c.JSON(cells)
}
