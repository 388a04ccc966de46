package scheduler

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"fastlm/internal/notice"
)

// Scheduler는 1분마다 발송 시각이 지난 공지를 찾아 디스패치합니다.
type Scheduler struct {
	cron          *cron.Cron
	noticeStore   *notice.Store
	noticeService *notice.Service
	jobStore      *JobStore
}

// NewScheduler는 새 Scheduler를 생성합니다.
func NewScheduler(ns *notice.Store, nSvc *notice.Service, js *JobStore) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		noticeStore:   ns,
		noticeService: nSvc,
		jobStore:      js,
	}
}

// Start는 스케줄러를 기동합니다.
func (s *Scheduler) Start() {
	log.Println("[INFO] -----------------------------------------")
	log.Println("[INFO] 🔔 FastLM 스케줄러가 시작됩니다...")
	s.cron.AddFunc("@every 1m", s.checkAndSendNotices)
	s.cron.Start()
	log.Println("[INFO] -----------------------------------------")
}

// Stop은 스케줄러를 중지합니다.
func (s *Scheduler) Stop() {
	log.Println("[INFO] FastLM 스케줄러가 중지됩니다...")
	s.cron.Stop()
}

// checkAndSendNotices는 틱마다 발송 대상을 조회하고, 건마다 goroutine으로
// 디스패치한 뒤 작업 기록(scheduled_jobs)에 결과를 남깁니다.
func (s *Scheduler) checkAndSendNotices() {
	log.Println("[Scheduler] 1분마다 공지 대상을 확인합니다...")

	notices, err := s.noticeStore.GetNoticesToSendNow()
	if err != nil {
		log.Printf("[ERROR] [Scheduler] 공지 목록 조회 실패: %v", err)
		return
	}

	if len(notices) == 0 {
		log.Println("[Scheduler] 발송할 공지가 없습니다.")
		return
	}

	log.Printf("[Scheduler] %d 건의 공지 발송을 시작합니다.", len(notices))

	var wg sync.WaitGroup
	for _, n := range notices {
		wg.Add(1)

		go func(n notice.Notice) {
			defer wg.Done()
			s.dispatch(&n)
		}(n)
	}
	wg.Wait()
	log.Printf("[Scheduler] %d 건의 공지 발송 작업이 완료되었습니다.", len(notices))
}

// dispatch는 공지 1건을 발송하고 작업 기록을 남깁니다.
// 작업 기록 실패는 발송 결과에 영향을 주지 않습니다. (로그만 남김)
func (s *Scheduler) dispatch(n *notice.Notice) {
	job := &ScheduledJob{
		ID:          uuid.NewString(),
		NoticeID:    n.ID,
		Status:      JobStatusPending,
		ScheduledAt: n.ScheduledAt,
	}
	if err := s.jobStore.CreateJob(job); err != nil {
		log.Printf("[ERROR] [Scheduler] 공지(ID: %s) 작업 기록 생성 실패", n.ID)
	}

	if err := s.noticeService.DispatchNotice(n); err != nil {
		log.Printf("[ERROR] [Scheduler] 공지(ID: %s) 처리 중 에러 발생", n.ID)
		if jobErr := s.jobStore.FailJob(job.ID, err.Error()); jobErr != nil {
			log.Printf("[ERROR] [Scheduler] 작업(ID: %s) 실패 기록 실패", job.ID)
		}
		return
	}

	if err := s.jobStore.CompleteJob(job.ID); err != nil {
		log.Printf("[ERROR] [Scheduler] 작업(ID: %s) 완료 기록 실패", job.ID)
	}
}
