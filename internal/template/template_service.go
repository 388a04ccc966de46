package template

import (
	"fmt"
	"log"
	"regexp"

	"github.com/go-sql-driver/mysql"

	"fastlm/internal/render"
)

// (MySQL 'Duplicate entry' 에러 코드)
const (
	ErrMySQLDuplicateEntry = 1062
	ErrMySQLForeignKey     = 1451
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Service는 'template' 기능의 비즈니스 로직을 담당합니다.
type Service struct {
	store *Store
}

// NewService는 새 Service를 생성합니다.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// GetTemplates는 템플릿 목록 조회를 담당합니다.
func (s *Service) GetTemplates(workspaceID *uint64, categoryID string) ([]NoticeTemplate, error) {
	return s.store.GetTemplates(workspaceID, categoryID)
}

// GetTemplateByID는 스토어를 호출하여 템플릿을 조회합니다.
func (s *Service) GetTemplateByID(id string) (*NoticeTemplate, error) {
	return s.store.GetTemplateByID(id)
}

// CreateTemplateRequest는 새 템플릿 생성 요청 바디입니다.
type CreateTemplateRequest struct {
	CategoryID  string             `json:"categoryId"`
	WorkspaceID uint64             `json:"workspaceId"`
	Name        string             `json:"name"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	Variables   []TemplateVariable `json:"variables"`
	IsDefault   bool               `json:"isDefault"`
}

// CreateTemplate는 요청을 모델로 변환해 저장합니다.
// 저장 전에 미선언 플레이스홀더를 검사하되, 에러가 아닌 경고로만 남깁니다.
// (미해석 플레이스홀더는 렌더링 시 원문 그대로 남는 것이 계약)
func (s *Service) CreateTemplate(req CreateTemplateRequest, createdID uint64) (*NoticeTemplate, error) {
	if req.CategoryID == "" {
		return nil, fmt.Errorf("카테고리를 선택해주세요.")
	}
	if req.Name == "" {
		return nil, fmt.Errorf("템플릿 이름을 입력해주세요.")
	}

	warnUndeclaredPlaceholders(req.Name, req.Title, req.Content, req.Variables)

	tmpl := &NoticeTemplate{
		CategoryID:  req.CategoryID,
		WorkspaceID: req.WorkspaceID,
		Name:        req.Name,
		Title:       req.Title,
		Content:     req.Content,
		Variables:   VariableList(req.Variables),
		IsDefault:   req.IsDefault,
		CreatedID:   createdID,
	}

	err := s.store.CreateTemplate(tmpl)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok {
			if mysqlErr.Number == ErrMySQLDuplicateEntry {
				return nil, fmt.Errorf("이미 존재하는 템플릿명입니다: %s", req.Name)
			}
		}
		log.Printf("[ERROR] CreateTemplate 서비스 에러: %v", err)
		return nil, err
	}
	return tmpl, nil
}

// UpdateTemplateRequest는 템플릿 수정 요청 바디입니다. (부분 수정 허용)
type UpdateTemplateRequest struct {
	Name      *string             `json:"name"`
	Title     *string             `json:"title"`
	Content   *string             `json:"content"`
	Variables *[]TemplateVariable `json:"variables"`
	IsDefault *bool               `json:"isDefault"`
}

// UpdateTemplate는 템플릿 수정을 처리합니다.
func (s *Service) UpdateTemplate(id string, req UpdateTemplateRequest) (*NoticeTemplate, error) {
	tmpl, err := s.store.GetTemplateByID(id)
	if err != nil {
		return nil, fmt.Errorf("수정할 템플릿(ID: %s)을 찾을 수 없습니다.", id)
	}

	if req.Name != nil {
		tmpl.Name = *req.Name
	}
	if req.Title != nil {
		tmpl.Title = *req.Title
	}
	if req.Content != nil {
		tmpl.Content = *req.Content
	}
	if req.Variables != nil {
		tmpl.Variables = VariableList(*req.Variables)
	}
	if req.IsDefault != nil {
		tmpl.IsDefault = *req.IsDefault
	}

	warnUndeclaredPlaceholders(tmpl.Name, tmpl.Title, tmpl.Content, tmpl.Variables)

	if err := s.store.UpdateTemplate(tmpl); err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok {
			if mysqlErr.Number == ErrMySQLDuplicateEntry {
				return nil, fmt.Errorf("이미 존재하는 템플릿명입니다: %s", tmpl.Name)
			}
		}
		log.Printf("[ERROR] UpdateTemplate 서비스 에러: %v", err)
		return nil, err
	}
	return tmpl, nil
}

// DeleteTemplate는 템플릿 삭제를 처리합니다.
func (s *Service) DeleteTemplate(id string) error {
	if _, err := s.store.GetTemplateByID(id); err != nil {
		return fmt.Errorf("삭제할 템플릿(ID: %s)을 찾을 수 없습니다.", id)
	}

	err := s.store.DeleteTemplate(id)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok {
			if mysqlErr.Number == ErrMySQLForeignKey {
				return fmt.Errorf("삭제 실패: 이 템플릿을 사용 중인 '공지'가 있습니다.")
			}
		}
		return err
	}
	return nil
}

// UndeclaredPlaceholders는 title/content에 쓰였지만 선언되지도 않았고
// 파생 변수도 아닌 키 목록을 반환합니다.
func UndeclaredPlaceholders(title, content string, variables []TemplateVariable) []string {
	known := make(map[string]bool)
	for _, key := range render.DerivedKeys() {
		known[key] = true
	}
	for _, v := range variables {
		known[v.Key] = true
	}

	seen := make(map[string]bool)
	var unknown []string
	for _, m := range placeholderRe.FindAllStringSubmatch(title+"\n"+content, -1) {
		key := m[1]
		if !known[key] && !seen[key] {
			seen[key] = true
			unknown = append(unknown, key)
		}
	}
	return unknown
}

func warnUndeclaredPlaceholders(name, title, content string, variables []TemplateVariable) {
	if unknown := UndeclaredPlaceholders(title, content, variables); len(unknown) > 0 {
		log.Printf("[WARN] 템플릿(%s)에 선언되지 않은 변수가 있습니다: %v", name, unknown)
	}
}
