package scheduler

import "time"

// 디스패치 작업 상태 값입니다.
const (
	JobStatusPending   = "pending"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// ScheduledJob은 'scheduled_jobs' 테이블의 스키마입니다.
// 디스패치 1회 시도의 기록이며, 공지(notices)와 1:N 관계입니다.
type ScheduledJob struct {
	ID          string     `json:"id" db:"id"`
	NoticeID    string     `json:"noticeId" db:"notice_id"`
	Status      string     `json:"status" db:"status"`
	ScheduledAt time.Time  `json:"scheduledAt" db:"scheduled_at"`
	ExecutedAt  *time.Time `json:"executedAt" db:"executed_at"`
	Error       *string    `json:"error" db:"error"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
