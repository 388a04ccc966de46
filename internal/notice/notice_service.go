package notice

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"

	"fastlm/internal/markdown"
	"fastlm/internal/render"
	"fastlm/internal/template"
	"fastlm/internal/workspace"
)

// 관리 화면 목록의 기본 상태 필터입니다. (클라이언트 계약)
const DefaultStatusFilter = StatusScheduled

// Service는 'notice' 기능의 비즈니스 로직을 담당합니다.
type Service struct {
	store          *Store
	workspaceStore *workspace.Store
	templateStore  *template.Store
}

// NewService는 새 Service를 생성합니다.
func NewService(store *Store, ws *workspace.Store, ts *template.Store) *Service {
	return &Service{
		store:          store,
		workspaceStore: ws,
		templateStore:  ts,
	}
}

// CreateNoticeRequest는 공지 1건 생성 요청입니다. ('POST /api/notices' 바디)
type CreateNoticeRequest struct {
	Type         string            `json:"type"`
	CategoryID   string            `json:"categoryId"`
	TemplateID   string            `json:"templateId"`
	Title        string            `json:"title"`
	Message      string            `json:"message"`
	WorkspaceID  uint64            `json:"workspaceId"`
	ScheduledAt  time.Time         `json:"scheduledAt"`
	NoImage      bool              `json:"noImage"`
	FormData     map[string]string `json:"formData"`
	VariableData map[string]string `json:"variableData"`
	WebhookURL   string            `json:"webhookUrl"`
	WebhookName  string            `json:"webhookName"`
}

// BuildForm은 "템플릿 + 날짜 여러 개 + 시간 + 웹훅" 예약 폼입니다.
// ('POST /api/notices/batch' 바디. 날짜 1개당 독립된 공지 1건이 생성됩니다)
type BuildForm struct {
	Type          string            `json:"type"`
	CategoryID    string            `json:"categoryId"`
	TemplateID    string            `json:"templateId"`
	WorkspaceID   uint64            `json:"workspaceId"`
	SelectedDates []string          `json:"selectedDates"` // "YYYY-MM-DD"
	NoticeTime    string            `json:"noticeTime"`    // "HH:MM"
	WebhookID     string            `json:"webhookId"`     // ID 또는 (구버전) 표시 이름
	IncludeImage  bool              `json:"includeImage"`
	Variables     map[string]string `json:"variables"`
}

// BuildRequests는 폼을 날짜별 생성 요청으로 전개합니다.
// 날짜마다 그 날짜를 기준으로 변수를 다시 해석/렌더링하므로
// current_date 계열 변수가 각 공지에서 올바른 값을 갖습니다.
func BuildRequests(ws *workspace.Workspace, tmpl *template.NoticeTemplate, form BuildForm) ([]CreateNoticeRequest, error) {
	if ws == nil {
		return nil, fmt.Errorf("워크스페이스를 먼저 선택해주세요.")
	}
	if tmpl == nil {
		return nil, fmt.Errorf("템플릿을 선택해주세요.")
	}
	if len(form.SelectedDates) == 0 {
		return nil, fmt.Errorf("발송할 날짜를 선택해주세요.")
	}

	webhook, err := workspace.ResolveWebhook(ws, form.WebhookID)
	if err != nil {
		return nil, err
	}

	noticeTime := form.NoticeTime
	if noticeTime == "" {
		noticeTime = render.DefaultCheckinTime
	}
	timeOfDay, err := time.Parse("15:04", noticeTime)
	if err != nil {
		return nil, fmt.Errorf("시간 형식이 잘못되었습니다 (HH:MM).")
	}

	noticeType := form.Type
	if noticeType == "" {
		noticeType = TypeCustom
	}

	// 날짜 집합은 중복 제거 + 정렬. (달력에서 토글로 고르는 집합 의미)
	dates := dedupeDates(form.SelectedDates)

	requests := make([]CreateNoticeRequest, 0, len(dates))
	for _, raw := range dates {
		day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, fmt.Errorf("날짜 형식이 잘못되었습니다 (YYYY-MM-DD): %s", raw)
		}

		vars := render.Resolve(ws, form.Variables, day)
		title, message := render.Render(tmpl.Title, tmpl.Content, vars)

		scheduledAt := time.Date(
			day.Year(), day.Month(), day.Day(),
			timeOfDay.Hour(), timeOfDay.Minute(), 0, 0, time.Local,
		)

		requests = append(requests, CreateNoticeRequest{
			Type:         noticeType,
			CategoryID:   form.CategoryID,
			TemplateID:   tmpl.ID,
			Title:        title,
			Message:      message,
			WorkspaceID:  ws.ID,
			ScheduledAt:  scheduledAt,
			NoImage:      !form.IncludeImage,
			FormData:     map[string]string{"date": raw, "time": noticeTime},
			VariableData: form.Variables,
			WebhookURL:   webhook.URL,
			WebhookName:  webhook.Name,
		})
	}
	return requests, nil
}

// ScheduleFromForm은 폼을 전개한 뒤 N건을 병렬로 INSERT합니다.
// 부분 실패는 사용자에게 합산 실패 1건으로만 보입니다. (관측된 동작 유지)
func (s *Service) ScheduleFromForm(form BuildForm, createdID uint64) ([]Notice, error) {
	ws, err := s.workspaceStore.GetWorkspaceByID(form.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("워크스페이스를 먼저 선택해주세요.")
	}

	var tmpl *template.NoticeTemplate
	if form.TemplateID != "" {
		tmpl, err = s.templateStore.GetTemplateByID(form.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("템플릿을 선택해주세요.")
		}
	}

	requests, err := BuildRequests(ws, tmpl, form)
	if err != nil {
		return nil, err
	}

	notices := make([]Notice, len(requests))
	var eg errgroup.Group
	for i := range requests {
		i := i
		eg.Go(func() error {
			n, err := s.CreateNotice(requests[i], createdID)
			if err != nil {
				return err
			}
			notices[i] = *n
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Printf("[ERROR] ScheduleFromForm 전개 생성 실패: %v", err)
		return nil, fmt.Errorf("공지 예약에 실패했습니다.")
	}
	return notices, nil
}

// CreateNotice는 공지 1건을 저장합니다.
func (s *Service) CreateNotice(req CreateNoticeRequest, createdID uint64) (*Notice, error) {
	if req.WorkspaceID == 0 {
		return nil, fmt.Errorf("워크스페이스를 먼저 선택해주세요.")
	}
	if req.Title == "" && req.Message == "" {
		return nil, fmt.Errorf("공지 내용을 입력해주세요.")
	}

	noticeType := req.Type
	if noticeType == "" {
		noticeType = TypeCustom
	}

	n := &Notice{
		ID:           uuid.NewString(),
		Type:         noticeType,
		CategoryID:   nilIfEmpty(req.CategoryID),
		TemplateID:   nilIfEmpty(req.TemplateID),
		Title:        req.Title,
		Message:      req.Message,
		WorkspaceID:  req.WorkspaceID,
		ScheduledAt:  req.ScheduledAt,
		Status:       StatusScheduled,
		CreatedID:    createdID,
		NoImage:      req.NoImage,
		FormData:     JSONMap(req.FormData),
		VariableData: JSONMap(req.VariableData),
		WebhookURL:   nilIfEmpty(req.WebhookURL),
		WebhookName:  nilIfEmpty(req.WebhookName),
	}

	if err := s.store.CreateNotice(n); err != nil {
		log.Printf("[ERROR] CreateNotice 서비스 에러: %v", err)
		return nil, err
	}
	return n, nil
}

// GetAllNotices는 공지 목록 조회를 담당합니다.
func (s *Service) GetAllNotices() ([]Notice, error) {
	return s.store.GetAllNotices()
}

// GetNoticeByID는 스토어를 호출하여 공지를 조회합니다.
func (s *Service) GetNoticeByID(id string) (*Notice, error) {
	return s.store.GetNoticeByID(id)
}

// UpdateNoticeRequest는 공지 수정 요청 바디입니다. (예약 상태에서만 허용)
type UpdateNoticeRequest struct {
	Title       *string    `json:"title"`
	Message     *string    `json:"message"`
	ScheduledAt *time.Time `json:"scheduledAt"`
	NoImage     *bool      `json:"noImage"`
	WebhookID   *string    `json:"webhookId"`
}

// UpdateNotice는 공지 수정을 처리합니다.
// 종료 상태(sent/failed)의 공지는 수정할 수 없으며, 상태는 바뀌지 않습니다.
func (s *Service) UpdateNotice(id string, req UpdateNoticeRequest) (*Notice, error) {
	n, err := s.store.GetNoticeByID(id)
	if err != nil {
		return nil, fmt.Errorf("수정할 공지(ID: %s)를 찾을 수 없습니다.", id)
	}
	if !n.CanEdit() {
		return nil, fmt.Errorf("이미 발송 처리된 공지는 수정할 수 없습니다. (상태: %s)", n.Status)
	}

	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Message != nil {
		n.Message = *req.Message
	}
	if req.ScheduledAt != nil {
		n.ScheduledAt = *req.ScheduledAt
	}
	if req.NoImage != nil {
		n.NoImage = *req.NoImage
	}
	if req.WebhookID != nil {
		ws, err := s.workspaceStore.GetWorkspaceByID(n.WorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("워크스페이스(ID: %d) 조회에 실패했습니다.", n.WorkspaceID)
		}
		webhook, err := workspace.ResolveWebhook(ws, *req.WebhookID)
		if err != nil {
			return nil, err
		}
		n.WebhookURL = &webhook.URL
		n.WebhookName = &webhook.Name
	}

	if err := s.store.UpdateNotice(n); err != nil {
		log.Printf("[ERROR] UpdateNotice 서비스 에러: %v", err)
		return nil, err
	}
	return n, nil
}

// DeleteNotice는 상태와 무관하게 공지 1건을 삭제합니다.
func (s *Service) DeleteNotice(id string) error {
	if _, err := s.store.GetNoticeByID(id); err != nil {
		return fmt.Errorf("삭제할 공지(ID: %s)를 찾을 수 없습니다.", id)
	}
	return s.store.DeleteNotice(id)
}

// BulkDeleteNotices는 선택된 공지들을 일괄 삭제합니다.
func (s *Service) BulkDeleteNotices(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("삭제할 공지를 선택해주세요.")
	}
	return s.store.DeleteNotices(ids)
}

// SendNow는 'POST /api/notices/:id/send' 즉시 발송입니다.
// 상태를 낙관적으로 바꾸지 않고, 발송 결과가 상태에 반영됩니다.
func (s *Service) SendNow(id string) error {
	n, err := s.store.GetNoticeByID(id)
	if err != nil {
		return fmt.Errorf("발송할 공지(ID: %s)를 찾을 수 없습니다.", id)
	}
	return s.DispatchNotice(n)
}

// DispatchNotice는 공지 1건을 Slack 웹훅으로 발송하고 결과를 상태에 기록합니다.
// (스케줄러와 즉시 발송이 같은 경로를 사용합니다)
func (s *Service) DispatchNotice(n *Notice) error {
	ws, err := s.workspaceStore.GetWorkspaceByID(n.WorkspaceID)
	if err != nil {
		return fmt.Errorf("공지(ID: %s)의 워크스페이스(ID: %d) 조회 실패: %v", n.ID, n.WorkspaceID, err)
	}

	webhookURL := ""
	if n.WebhookURL != nil && *n.WebhookURL != "" {
		webhookURL = *n.WebhookURL
	} else if ws.SlackWebhookURL != nil {
		// 웹훅 미지정 공지는 워크스페이스 기본 웹훅으로 발송합니다.
		webhookURL = *ws.SlackWebhookURL
	}
	if webhookURL == "" {
		_ = s.store.UpdateStatus(n.ID, StatusFailed)
		return fmt.Errorf("공지(ID: %s)에 발송 가능한 웹훅이 없습니다.", n.ID)
	}

	if err := postToWebhook(webhookURL, n, ws); err != nil {
		log.Printf("[ERROR] 공지(ID: %s) 발송 실패: %v", n.ID, err)
		if updateErr := s.store.UpdateStatus(n.ID, StatusFailed); updateErr != nil {
			log.Printf("[ERROR] 공지(ID: %s) 실패 상태 기록 실패: %v", n.ID, updateErr)
		}
		return err
	}

	if err := s.store.UpdateStatus(n.ID, StatusSent); err != nil {
		log.Printf("[ERROR] 공지(ID: %s) 발송 상태 기록 실패: %v", n.ID, err)
		return err
	}
	log.Printf("[SUCCESS] 공지(ID: %s) 발송 성공 (워크스페이스: %s)", n.ID, ws.Name)
	return nil
}

// postToWebhook은 메시지를 조립해 Slack 인커밍 웹훅으로 전송합니다.
// noImage가 아닐 때만 워크스페이스 QR 이미지를 붙입니다.
func postToWebhook(webhookURL string, n *Notice, ws *workspace.Workspace) error {
	text := n.Message
	if n.Title != "" {
		text = n.Title + "\n\n" + n.Message
	}

	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, strings.TrimSpace(text), false, false),
			nil, nil,
		),
	}
	if !n.NoImage && ws.QRImageURL != nil && *ws.QRImageURL != "" {
		blocks = append(blocks, slack.NewImageBlock(*ws.QRImageURL, "QR 체크인 이미지", "", nil))
	}

	msg := &slack.WebhookMessage{
		Text:   n.Title,
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
	return slack.PostWebhook(webhookURL, msg)
}

// PreviewRequest는 'POST /api/notices/preview' 요청 바디입니다.
// 템플릿 ID 또는 직접 입력한 title/content 중 하나를 사용합니다.
type PreviewRequest struct {
	WorkspaceID uint64            `json:"workspaceId"`
	TemplateID  string            `json:"templateId"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Date        string            `json:"date"` // "YYYY-MM-DD", 없으면 오늘
	Variables   map[string]string `json:"variables"`
}

// PreviewResult는 미리보기 결과입니다. html은 표시용 마크업입니다.
type PreviewResult struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	HTML    string `json:"html"`
}

// Preview는 발송 없이 렌더링 결과만 돌려줍니다.
func (s *Service) Preview(req PreviewRequest) (*PreviewResult, error) {
	ws, err := s.workspaceStore.GetWorkspaceByID(req.WorkspaceID)
	if err != nil {
		return nil, fmt.Errorf("워크스페이스를 먼저 선택해주세요.")
	}

	title, content := req.Title, req.Content
	if req.TemplateID != "" {
		tmpl, err := s.templateStore.GetTemplateByID(req.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("템플릿(ID: %s)을 찾을 수 없습니다.", req.TemplateID)
		}
		title, content = tmpl.Title, tmpl.Content
	}

	day := time.Now()
	if req.Date != "" {
		day, err = time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("날짜 형식이 잘못되었습니다 (YYYY-MM-DD): %s", req.Date)
		}
	}

	vars := render.Resolve(ws, req.Variables, day)
	renderedTitle, renderedMessage := render.Render(title, content, vars)

	return &PreviewResult{
		Title:   renderedTitle,
		Message: renderedMessage,
		HTML:    markdown.ToDisplayMarkup(renderedMessage),
	}, nil
}

// FilterNotices는 관리 화면의 필터 계약입니다.
// 날짜는 scheduledAt의 ISO 접두사 일치, 상태는 정확 일치입니다.
func FilterNotices(notices []Notice, date string, status string) []Notice {
	filtered := make([]Notice, 0, len(notices))
	for _, n := range notices {
		if date != "" && !strings.HasPrefix(n.ScheduledAt.Format("2006-01-02"), date) {
			continue
		}
		if status != "" && n.Status != status {
			continue
		}
		filtered = append(filtered, n)
	}
	return filtered
}

func dedupeDates(dates []string) []string {
	seen := make(map[string]bool, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
