package template

import (
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Store는 'template' 기능의 DB 로직을 관리합니다.
type Store struct {
	db *sqlx.DB
}

// NewStore는 새 Store를 생성합니다.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// CountTemplates는 'notice_templates' 테이블의 총 개수를 반환합니다. (대시보드용)
func (s *Store) CountTemplates() (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM notice_templates"

	err := s.db.Get(&count, query)
	if err != nil {
		log.Printf("[ERROR] CountTemplates DB 에러: %v", err)
		return 0, err
	}
	return count, nil
}

// GetTemplates는 워크스페이스/카테고리로 필터링한 템플릿 목록을 반환합니다.
func (s *Store) GetTemplates(workspaceID *uint64, categoryID string) ([]NoticeTemplate, error) {
	var templates []NoticeTemplate
	var args []interface{}

	query := `
		SELECT id, category_id, workspace_id, name, title, content, variables,
		       is_default, created_id, created_at, updated_at
		FROM notice_templates
		WHERE 1 = 1
	`
	if workspaceID != nil {
		query += " AND workspace_id = ? "
		args = append(args, *workspaceID)
	}
	if categoryID != "" {
		query += " AND category_id = ? "
		args = append(args, categoryID)
	}
	query += " ORDER BY name ASC "

	err := s.db.Select(&templates, query, args...)
	if err != nil {
		log.Printf("[ERROR] GetTemplates DB 에러: %v", err)
		return nil, err
	}
	return templates, nil
}

// GetTemplateByID는 ID로 템플릿 1개를 (변수 선언 포함) 조회합니다.
func (s *Store) GetTemplateByID(id string) (*NoticeTemplate, error) {
	var tmpl NoticeTemplate
	query := `
		SELECT id, category_id, workspace_id, name, title, content, variables,
		       is_default, created_id, created_at, updated_at
		FROM notice_templates
		WHERE id = ?
	`
	err := s.db.Get(&tmpl, query, id)
	if err != nil {
		log.Printf("[ERROR] GetTemplateByID(ID: %s) DB 에러: %v", id, err)
		return nil, err // (ErrNoRows 포함)
	}
	return &tmpl, nil
}

// CreateTemplate는 새 템플릿을 INSERT합니다.
func (s *Store) CreateTemplate(tmpl *NoticeTemplate) error {
	if tmpl.ID == "" {
		tmpl.ID = uuid.NewString()
	}
	query := `
		INSERT INTO notice_templates (
			id, category_id, workspace_id, name, title, content, variables, is_default, created_id
		) VALUES (
			:id, :category_id, :workspace_id, :name, :title, :content, :variables, :is_default, :created_id
		)
	`
	_, err := s.db.NamedExec(query, tmpl)
	if err != nil {
		log.Printf("[ERROR] CreateTemplate DB 에러: %v", err)
		return err
	}
	return nil
}

// UpdateTemplate는 템플릿 내용을 수정합니다.
func (s *Store) UpdateTemplate(tmpl *NoticeTemplate) error {
	query := `
		UPDATE notice_templates
		SET
			name = :name,
			title = :title,
			content = :content,
			variables = :variables,
			is_default = :is_default
		WHERE
			id = :id
	`
	_, err := s.db.NamedExec(query, tmpl)
	if err != nil {
		log.Printf("[ERROR] UpdateTemplate DB 에러: %v", err)
		return err
	}
	return nil
}

// DeleteTemplate는 ID로 템플릿을 삭제합니다.
func (s *Store) DeleteTemplate(id string) error {
	query := "DELETE FROM notice_templates WHERE id = ?"
	_, err := s.db.Exec(query, id)
	if err != nil {
		log.Printf("[ERROR] DeleteTemplate DB 에러: %v", err)
		return err
	}
	return nil
}
