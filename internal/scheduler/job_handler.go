package scheduler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// JobHandler는 디스패치 작업 기록 조회 핸들러입니다.
type JobHandler struct {
	store *JobStore
}

// NewJobHandler는 새 핸들러를 생성합니다.
func NewJobHandler(store *JobStore) *JobHandler {
	return &JobHandler{store: store}
}

// HandleGetJobs는 'GET /api/admin/scheduler/jobs?limit=' 요청을 처리합니다.
func (h *JobHandler) HandleGetJobs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	jobs, err := h.store.GetRecentJobs(limit)
	if err != nil {
		log.Errorf("작업 기록 조회 실패: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "작업 기록을 불러오는데 실패했습니다."})
	}
	return c.JSON(jobs)
}
