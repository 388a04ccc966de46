package workspace

import (
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
)

// (MySQL 'Duplicate entry' / FK 에러 코드)
const (
	ErrMySQLDuplicateEntry = 1062
	ErrMySQLForeignKey     = 1451
)

// 기본 웹훅의 표시 이름 폴백값입니다.
const DefaultWebhookName = "기본 슬랙"

// Service는 'workspace' 기능의 비즈니스 로직을 담당합니다.
type Service struct {
	store *Store
}

// NewService는 새 Service를 생성합니다.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// WebhookOption은 공지 작성 화면에 노출되는 선택지 1건입니다.
// (기본 웹훅이 맨 앞, 그 뒤로 추가 웹훅이 등록 순서대로 옵니다)
type WebhookOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AvailableWebhooks는 워크스페이스에서 선택 가능한 웹훅 목록을 순서대로 반환합니다.
// 이름이 비어 있는 구버전 항목은 "웹훅 N" 자리 이름을 받습니다.
func AvailableWebhooks(ws *Workspace) []WebhookOption {
	var options []WebhookOption

	if ws.SlackWebhookURL != nil && *ws.SlackWebhookURL != "" {
		name := DefaultWebhookName
		if ws.SlackWebhookName != nil && *ws.SlackWebhookName != "" {
			name = *ws.SlackWebhookName
		}
		options = append(options, WebhookOption{ID: "default", Name: name, URL: *ws.SlackWebhookURL})
	}

	for i, wh := range ws.WebhookURLs {
		name := wh.Name
		if name == "" {
			name = fmt.Sprintf("웹훅 %d", i+1)
		}
		options = append(options, WebhookOption{ID: wh.ID, Name: name, URL: wh.URL})
	}
	return options
}

// ResolveWebhook은 선택값을 실제 웹훅으로 되돌립니다.
// ID 일치를 먼저 보고, 구버전 호환으로 표시 이름 일치를 폴백으로 허용합니다.
func ResolveWebhook(ws *Workspace, selection string) (*WebhookOption, error) {
	if selection == "" {
		return nil, fmt.Errorf("웹훅을 선택해주세요.")
	}
	options := AvailableWebhooks(ws)
	for i := range options {
		if options[i].ID == selection {
			return &options[i], nil
		}
	}
	for i := range options {
		if options[i].Name == selection {
			return &options[i], nil
		}
	}
	return nil, fmt.Errorf("선택한 웹훅(%s)을 워크스페이스에서 찾을 수 없습니다.", selection)
}

// GetAllWorkspaces는 워크스페이스 목록 조회를 담당합니다.
func (s *Service) GetAllWorkspaces() ([]Workspace, error) {
	return s.store.GetAllWorkspaces()
}

// GetWorkspaceByID는 스토어를 호출하여 워크스페이스를 조회합니다.
func (s *Service) GetWorkspaceByID(id uint64) (*Workspace, error) {
	return s.store.GetWorkspaceByID(id)
}

// CreateWorkspaceRequest는 워크스페이스 등록 요청 바디입니다.
type CreateWorkspaceRequest struct {
	Name             string    `json:"name"`
	Description      *string   `json:"description"`
	SlackWebhookURL  *string   `json:"slackWebhookUrl"`
	SlackWebhookName *string   `json:"slackWebhookName"`
	WebhookURLs      []Webhook `json:"webhookUrls"`
	CheckinTime      *string   `json:"checkinTime"`
	MiddleTime       *string   `json:"middleTime"`
	CheckoutTime     *string   `json:"checkoutTime"`
	ZoomURL          *string   `json:"zoomUrl"`
	ZoomID           *string   `json:"zoomId"`
	ZoomPassword     *string   `json:"zoomPassword"`
}

// CreateWorkspace는 요청을 모델로 변환해 INSERT합니다.
// 추가 웹훅에는 이 시점에 불변 ID(uuid)를 부여합니다.
func (s *Service) CreateWorkspace(req CreateWorkspaceRequest, createdID uint64) (*Workspace, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("워크스페이스 이름을 입력해주세요.")
	}

	ws := &Workspace{
		Name:             req.Name,
		Description:      req.Description,
		SlackWebhookURL:  req.SlackWebhookURL,
		SlackWebhookName: req.SlackWebhookName,
		WebhookURLs:      assignWebhookIDs(req.WebhookURLs),
		CheckinTime:      req.CheckinTime,
		MiddleTime:       req.MiddleTime,
		CheckoutTime:     req.CheckoutTime,
		ZoomURL:          req.ZoomURL,
		ZoomID:           req.ZoomID,
		ZoomPassword:     req.ZoomPassword,
		Status:           "pending",
		CreatedID:        createdID,
	}

	err := s.store.CreateWorkspace(ws)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok {
			if mysqlErr.Number == ErrMySQLDuplicateEntry {
				return nil, fmt.Errorf("이미 존재하는 워크스페이스 이름입니다: %s", req.Name)
			}
		}
		log.Printf("[ERROR] CreateWorkspace 서비스 에러: %v", err)
		return nil, err
	}
	return ws, nil
}

// UpdateWorkspace는 워크스페이스 수정을 처리합니다.
func (s *Service) UpdateWorkspace(id uint64, req CreateWorkspaceRequest) (*Workspace, error) {
	original, err := s.store.GetWorkspaceByID(id)
	if err != nil {
		return nil, fmt.Errorf("수정할 워크스페이스(ID: %d)를 찾을 수 없습니다.", id)
	}

	original.Name = req.Name
	original.Description = req.Description
	original.SlackWebhookURL = req.SlackWebhookURL
	original.SlackWebhookName = req.SlackWebhookName
	original.WebhookURLs = assignWebhookIDs(req.WebhookURLs)
	original.CheckinTime = req.CheckinTime
	original.MiddleTime = req.MiddleTime
	original.CheckoutTime = req.CheckoutTime
	original.ZoomURL = req.ZoomURL
	original.ZoomID = req.ZoomID
	original.ZoomPassword = req.ZoomPassword

	if err := s.store.UpdateWorkspace(original); err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok {
			if mysqlErr.Number == ErrMySQLDuplicateEntry {
				return nil, fmt.Errorf("이미 존재하는 워크스페이스 이름입니다: %s", req.Name)
			}
		}
		log.Printf("[ERROR] UpdateWorkspace 서비스 에러: %v", err)
		return nil, err
	}
	return original, nil
}

// SetQRImageURL은 QR 이미지 URL만 갱신합니다.
func (s *Service) SetQRImageURL(id uint64, url string) error {
	return s.store.UpdateQRImageURL(id, url)
}

// DeleteWorkspace는 워크스페이스 삭제를 처리합니다.
func (s *Service) DeleteWorkspace(id uint64) error {
	err := s.store.DeleteWorkspace(id)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok {
			if mysqlErr.Number == ErrMySQLForeignKey {
				return fmt.Errorf("삭제 실패: 이 워크스페이스를 사용 중인 '공지'가 있습니다.")
			}
		}
		return err
	}
	return nil
}

// assignWebhookIDs는 아직 ID가 없는 웹훅 항목에 uuid를 채웁니다.
// 기존 ID는 유지해야 예약된 공지의 웹훅 선택이 깨지지 않습니다.
func assignWebhookIDs(webhooks []Webhook) WebhookList {
	list := make(WebhookList, 0, len(webhooks))
	for _, wh := range webhooks {
		if wh.URL == "" {
			continue
		}
		if wh.ID == "" {
			wh.ID = uuid.NewString()
		}
		list = append(list, wh)
	}
	return list
}
