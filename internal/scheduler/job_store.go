package scheduler

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"
)

// JobStore는 디스패치 작업 기록의 DB 로직을 관리합니다.
type JobStore struct {
	db *sqlx.DB
}

// NewJobStore는 새 JobStore를 생성합니다.
func NewJobStore(db *sqlx.DB) *JobStore {
	return &JobStore{db: db}
}

// CreateJob은 새 작업 기록을 INSERT합니다. (pending 상태)
func (s *JobStore) CreateJob(job *ScheduledJob) error {
	query := `
		INSERT INTO scheduled_jobs (id, notice_id, status, scheduled_at)
		VALUES (:id, :notice_id, :status, :scheduled_at)
	`
	_, err := s.db.NamedExec(query, job)
	if err != nil {
		log.Printf("[ERROR] [Scheduler] CreateJob DB 에러: %v", err)
		return err
	}
	return nil
}

// CompleteJob은 작업을 완료 상태로 기록합니다.
func (s *JobStore) CompleteJob(id string) error {
	query := "UPDATE scheduled_jobs SET status = ?, executed_at = ? WHERE id = ?"
	_, err := s.db.Exec(query, JobStatusCompleted, time.Now(), id)
	if err != nil {
		log.Printf("[ERROR] [Scheduler] CompleteJob DB 에러: %v", err)
		return err
	}
	return nil
}

// FailJob은 작업을 실패 상태로 기록하고 에러 메시지를 남깁니다.
func (s *JobStore) FailJob(id string, cause string) error {
	query := "UPDATE scheduled_jobs SET status = ?, executed_at = ?, error = ? WHERE id = ?"
	_, err := s.db.Exec(query, JobStatusFailed, time.Now(), cause, id)
	if err != nil {
		log.Printf("[ERROR] [Scheduler] FailJob DB 에러: %v", err)
		return err
	}
	return nil
}

// GetRecentJobs는 최근 작업 기록을 반환합니다. (관리자 조회용)
func (s *JobStore) GetRecentJobs(limit int) ([]ScheduledJob, error) {
	if limit <= 0 {
		limit = 50
	}
	var jobs []ScheduledJob
	query := `
		SELECT id, notice_id, status, scheduled_at, executed_at, error, created_at
		FROM scheduled_jobs
		ORDER BY created_at DESC
		LIMIT ?
	`
	err := s.db.Select(&jobs, query, limit)
	if err != nil {
		log.Printf("[ERROR] [Scheduler] GetRecentJobs DB 에러: %v", err)
		return nil, err
	}
	return jobs, nil
}
