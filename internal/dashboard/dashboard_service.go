package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"fastlm/internal/notice"
	"fastlm/internal/template"
	"fastlm/internal/workspace"
)

// 달력 한 칸에 그리는 최대 공지 칩 수입니다. 넘치면 "+N"으로 접습니다.
const maxChipsPerDay = 3

// Service는 대시보드 집계를 담당합니다.
type Service struct {
	noticeStore    *notice.Store
	templateStore  *template.Store
	workspaceStore *workspace.Store
}

// NewService는 새 Service를 생성합니다.
func NewService(ns *notice.Store, ts *template.Store, ws *workspace.Store) *Service {
	return &Service{
		noticeStore:    ns,
		templateStore:  ts,
		workspaceStore: ws,
	}
}

// Summary는 'GET /api/dashboard' 응답입니다.
type Summary struct {
	ScheduledCount int `json:"scheduledCount"`
	SentCount      int `json:"sentCount"`
	FailedCount    int `json:"failedCount"`
	TemplateCount  int `json:"templateCount"`
	WorkspaceCount int `json:"workspaceCount"`
}

// GetSummary는 상태별 공지 수와 템플릿/워크스페이스 수를 집계합니다.
// 세 집계는 서로 독립이라 병렬로 조회합니다.
func (s *Service) GetSummary(workspaceID uint64) (*Summary, error) {
	var (
		statusCounts   map[string]int
		templateCount  int
		workspaceCount int
	)

	var eg errgroup.Group
	eg.Go(func() error {
		counts, err := s.noticeStore.CountByStatus(workspaceID)
		if err != nil {
			return fmt.Errorf("공지 집계 실패: %w", err)
		}
		statusCounts = counts
		return nil
	})
	eg.Go(func() error {
		count, err := s.templateStore.CountTemplates()
		if err != nil {
			return fmt.Errorf("템플릿 집계 실패: %w", err)
		}
		templateCount = count
		return nil
	})
	eg.Go(func() error {
		count, err := s.workspaceStore.CountWorkspaces()
		if err != nil {
			return fmt.Errorf("워크스페이스 집계 실패: %w", err)
		}
		workspaceCount = count
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &Summary{
		ScheduledCount: statusCounts[notice.StatusScheduled],
		SentCount:      statusCounts[notice.StatusSent],
		FailedCount:    statusCounts[notice.StatusFailed],
		TemplateCount:  templateCount,
		WorkspaceCount: workspaceCount,
	}, nil
}

// Chip은 달력 한 칸에 표시되는 공지 요약입니다.
type Chip struct {
	NoticeID string `json:"noticeId"`
	Title    string `json:"title"`
	Time     string `json:"time"` // "HH:MM"
	Status   string `json:"status"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
}

// DayCell은 달력 하루치입니다. more는 접힌 공지 수입니다.
type DayCell struct {
	Date  string `json:"date"` // "YYYY-MM-DD"
	Chips []Chip `json:"chips"`
	More  int    `json:"more"`
}

// GetCalendar는 'GET /api/notices/calendar?workspaceId=&month=YYYY-MM' 응답을
// 만듭니다.
func (s *Service) GetCalendar(workspaceID uint64, month string) ([]DayCell, error) {
	notices, err := s.noticeStore.GetAllNotices()
	if err != nil {
		return nil, err
	}
	return ProjectCalendar(notices, workspaceID, month), nil
}

// ProjectCalendar는 공지 목록을 달력 셀로 투영합니다.
// 월 접두사로 날짜별 버킷을 만들고, 칸마다 최대 3건 + 접힘 수를 계산합니다.
func ProjectCalendar(notices []notice.Notice, workspaceID uint64, month string) []DayCell {
	buckets := make(map[string][]notice.Notice)
	for _, n := range notices {
		if n.WorkspaceID != workspaceID {
			continue
		}
		date := n.ScheduledAt.Format("2006-01-02")
		if month != "" && !strings.HasPrefix(date, month) {
			continue
		}
		buckets[date] = append(buckets[date], n)
	}

	dates := make([]string, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	cells := make([]DayCell, 0, len(dates))
	for _, date := range dates {
		dayNotices := buckets[date]
		cell := DayCell{Date: date}

		for i, n := range dayNotices {
			if i >= maxChipsPerDay {
				cell.More = len(dayNotices) - maxChipsPerDay
				break
			}
			cell.Chips = append(cell.Chips, Chip{
				NoticeID: n.ID,
				Title:    n.Title,
				Time:     n.ScheduledAt.Format("15:04"),
				Status:   n.Status,
				Color:    statusColor(n.Status),
				Icon:     typeIcon(n.Type),
			})
		}
		cells = append(cells, cell)
	}
	return cells
}

func statusColor(status string) string {
	switch status {
	case notice.StatusSent:
		return "#10b981"
	case notice.StatusFailed:
		return "#ef4444"
	default:
		return "#3b82f6"
	}
}

func typeIcon(noticeType string) string {
	switch noticeType {
	case notice.TypeAttendance:
		return "🕐"
	case notice.TypeSatisfaction:
		return "📊"
	case notice.TypeThread:
		return "💬"
	default:
		return "📢"
	}
}
