package workspace

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"fastlm/internal/aws"
)

// WorkspaceHandler는 워크스페이스 관련 핸들러입니다.
type WorkspaceHandler struct {
	service  *Service
	uploader *aws.Uploader
}

// NewWorkspaceHandler는 새 핸들러를 생성합니다.
func NewWorkspaceHandler(service *Service, uploader *aws.Uploader) *WorkspaceHandler {
	return &WorkspaceHandler{service: service, uploader: uploader}
}

// HandleGetWorkspaces는 'GET /api/workspaces' 요청을 처리합니다.
func (h *WorkspaceHandler) HandleGetWorkspaces(c *fiber.Ctx) error {
	workspaces, err := h.service.GetAllWorkspaces()
	if err != nil {
		log.Errorf("워크스페이스 목록 조회 실패: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "워크스페이스를 불러오는데 실패했습니다."})
	}
	return c.JSON(workspaces)
}

// HandleGetWorkspace는 'GET /api/workspaces/:id' 요청을 처리합니다.
func (h *WorkspaceHandler) HandleGetWorkspace(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ws, err := h.service.GetWorkspaceByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("워크스페이스(ID: %d)를 찾을 수 없습니다.", id)})
	}
	return c.JSON(ws)
}

// HandleGetWebhooks는 'GET /api/workspaces/:id/webhooks' 요청을 처리합니다.
// 공지 작성 화면의 웹훅 선택지 목록입니다.
func (h *WorkspaceHandler) HandleGetWebhooks(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ws, err := h.service.GetWorkspaceByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("워크스페이스(ID: %d)를 찾을 수 없습니다.", id)})
	}
	return c.JSON(AvailableWebhooks(ws))
}

// HandleCreateWorkspace는 'POST /api/admin/workspaces' 요청을 처리합니다.
func (h *WorkspaceHandler) HandleCreateWorkspace(c *fiber.Ctx) error {
	var req CreateWorkspaceRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warnf("워크스페이스 생성 바디 파싱 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}

	createdID := c.Locals("user_id").(uint64)

	ws, err := h.service.CreateWorkspace(req, createdID)
	if err != nil {
		log.Errorf("워크스페이스 생성 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(ws)
}

// HandleUpdateWorkspace는 'PUT /api/admin/workspaces/:id' 요청을 처리합니다.
func (h *WorkspaceHandler) HandleUpdateWorkspace(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req CreateWorkspaceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}

	ws, err := h.service.UpdateWorkspace(id, req)
	if err != nil {
		log.Errorf("워크스페이스 수정 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(ws)
}

// HandleDeleteWorkspace는 'DELETE /api/admin/workspaces/:id' 요청을 처리합니다.
func (h *WorkspaceHandler) HandleDeleteWorkspace(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.DeleteWorkspace(id); err != nil {
		log.Errorf("워크스페이스 삭제 실패: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleUploadQR은 'POST /api/admin/workspaces/:id/qr' 요청을 처리합니다.
// multipart 'qrImage' 필드로 받은 이미지를 저장하고 URL을 워크스페이스에 기록합니다.
func (h *WorkspaceHandler) HandleUploadQR(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if _, err := h.service.GetWorkspaceByID(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("워크스페이스(ID: %d)를 찾을 수 없습니다.", id)})
	}

	fileHeader, err := c.FormFile("qrImage")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "qrImage 파일이 필요합니다."})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "업로드 파일을 열 수 없습니다."})
	}
	defer file.Close()

	key := fmt.Sprintf("qr/%d-%s.png", id, uuid.NewString())
	url, err := h.uploader.Upload(key, file, "image/png")
	if err != nil {
		log.Errorf("QR 이미지 업로드 실패: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "QR 이미지 업로드에 실패했습니다."})
	}

	if err := h.service.SetQRImageURL(id, url); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "QR 이미지 URL 저장에 실패했습니다."})
	}
	return c.JSON(fiber.Map{"qrImageUrl": url})
}

// HandleGenerateQR은 'POST /api/admin/workspaces/:id/qr/generate' 요청을 처리합니다.
// 요청 바디의 content를 QR 코드 PNG로 만들어 업로드까지 수행합니다.
func (h *WorkspaceHandler) HandleGenerateQR(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if _, err := h.service.GetWorkspaceByID(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": fmt.Sprintf("워크스페이스(ID: %d)를 찾을 수 없습니다.", id)})
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "요청 형식이 잘못되었습니다."})
	}

	image, err := GenerateQRPNG(req.Content)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	key := fmt.Sprintf("qr/%d-%s.png", id, uuid.NewString())
	url, err := h.uploader.Upload(key, bytes.NewReader(image), "image/png")
	if err != nil {
		log.Errorf("QR 이미지 업로드 실패: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "QR 이미지 업로드에 실패했습니다."})
	}

	if err := h.service.SetQRImageURL(id, url); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "QR 이미지 URL 저장에 실패했습니다."})
	}
	return c.JSON(fiber.Map{"qrImageUrl": url})
}

func parseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("유효하지 않은 ID입니다.")
	}
	return id, nil
}
