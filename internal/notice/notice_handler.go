package notice

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// NoticeHandler는 공지 관련 핸들러입니다.
type NoticeHandler struct {
	service *Service
}

// NewNoticeHandler는 새 핸들러를 생성합니다.
func NewNoticeHandler(service *Service) *NoticeHandler {
	return &NoticeHandler{service: service}
}

// HandleGetNotices는 'GET /api/notices?date=&status=' 요청을 처리합니다.
// 파라미터가 없으면 전체를 반환합니다. (기본 status=scheduled 필터는 관리 화면의 몫)
func (h *NoticeHandler) HandleGetNotices(c *fiber.Ctx) error {
	notices, err := h.service.GetAllNotices()
	if err != nil {
		log.Errorf("공지 목록 조회 실패: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "공지를 불러오는데 실패했습니다."})
	}
	return c.JSON(FilterNotices(notices, c.Query("date"), c.Query("status")))
}

// HandleCreateNotice는 'POST /api/notices' 요청을 처리합니다. (단건 생성)
func (h *NoticeHandler) HandleCreateNotice(c *fiber.Ctx) error {
	var req CreateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warnf("공지 생성 바디 파싱 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}

	createdID := c.Locals("user_id").(uint64)

	n, err := h.service.CreateNotice(req, createdID)
	if err != nil {
		log.Errorf("공지 생성 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

// HandleScheduleNotices는 'POST /api/notices/batch' 요청을 처리합니다.
// 선택한 날짜마다 독립된 공지를 만듭니다.
func (h *NoticeHandler) HandleScheduleNotices(c *fiber.Ctx) error {
	var form BuildForm
	if err := c.BodyParser(&form); err != nil {
		log.Warnf("공지 예약 바디 파싱 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}

	createdID := c.Locals("user_id").(uint64)

	notices, err := h.service.ScheduleFromForm(form, createdID)
	if err != nil {
		log.Errorf("공지 예약 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"count":   len(notices),
		"notices": notices,
	})
}

// HandlePreviewNotice는 'POST /api/notices/preview' 요청을 처리합니다.
func (h *NoticeHandler) HandlePreviewNotice(c *fiber.Ctx) error {
	var req PreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}

	result, err := h.service.Preview(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(result)
}

// HandleUpdateNotice는 'PUT /api/notices/:id' 요청을 처리합니다.
func (h *NoticeHandler) HandleUpdateNotice(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "유효하지 않은 ID입니다."})
	}

	var req UpdateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}

	n, err := h.service.UpdateNotice(id, req)
	if err != nil {
		log.Errorf("공지 수정 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(n)
}

// HandleDeleteNotice는 'DELETE /api/notices/:id' 요청을 처리합니다.
func (h *NoticeHandler) HandleDeleteNotice(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "유효하지 않은 ID입니다."})
	}

	if err := h.service.DeleteNotice(id); err != nil {
		log.Errorf("공지 삭제 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleBulkDeleteNotices는 'DELETE /api/notices/bulk-delete' 요청을 처리합니다.
func (h *NoticeHandler) HandleBulkDeleteNotices(c *fiber.Ctx) error {
	var req struct {
		NoticeIDs []string `json:"noticeIds"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}

	deleted, err := h.service.BulkDeleteNotices(req.NoticeIDs)
	if err != nil {
		log.Errorf("공지 일괄 삭제 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}

// HandleSendNotice는 'POST /api/notices/:id/send' 즉시 발송 요청을 처리합니다.
func (h *NoticeHandler) HandleSendNotice(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "유효하지 않은 ID입니다."})
	}

	if err := h.service.SendNow(id); err != nil {
		log.Errorf("공지 즉시 발송 실패: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "공지 발송에 실패했습니다."})
	}
	return c.JSON(fiber.Map{"message": "공지가 발송되었습니다."})
}
