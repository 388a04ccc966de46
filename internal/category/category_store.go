package category

import (
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Store는 'category' 기능의 DB 로직을 관리합니다.
type Store struct {
	db *sqlx.DB
}

// NewStore는 새 Store를 생성합니다.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// GetCategories는 활성 카테고리 목록을 반환합니다.
// (전역 predefined + 해당 워크스페이스의 custom)
func (s *Store) GetCategories(workspaceID *uint64) ([]NoticeCategory, error) {
	var categories []NoticeCategory
	var args []interface{}

	query := `
		SELECT id, name, category_type, description, workspace_id, is_active, created_at, updated_at
		FROM notice_categories
		WHERE is_active = 1
	`
	if workspaceID != nil {
		query += " AND (workspace_id IS NULL OR workspace_id = ?) "
		args = append(args, *workspaceID)
	} else {
		query += " AND workspace_id IS NULL "
	}
	query += " ORDER BY category_type DESC, name ASC "

	err := s.db.Select(&categories, query, args...)
	if err != nil {
		log.Printf("[ERROR] GetCategories DB 에러: %v", err)
		return nil, err
	}
	return categories, nil
}

// GetCategoryByID는 ID로 카테고리 1개를 조회합니다.
func (s *Store) GetCategoryByID(id string) (*NoticeCategory, error) {
	var c NoticeCategory
	query := `
		SELECT id, name, category_type, description, workspace_id, is_active, created_at, updated_at
		FROM notice_categories
		WHERE id = ?
	`
	err := s.db.Get(&c, query, id)
	if err != nil {
		log.Printf("[ERROR] GetCategoryByID(ID: %s) DB 에러: %v", id, err)
		return nil, err
	}
	return &c, nil
}

// CreateCategory는 새 카테고리를 INSERT합니다.
func (s *Store) CreateCategory(c *NoticeCategory) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	query := `
		INSERT INTO notice_categories (id, name, category_type, description, workspace_id, is_active)
		VALUES (:id, :name, :category_type, :description, :workspace_id, :is_active)
	`
	_, err := s.db.NamedExec(query, c)
	if err != nil {
		log.Printf("[ERROR] CreateCategory DB 에러: %v", err)
		return err
	}
	return nil
}

// SeedDefaults는 기본 카테고리 4종을 1회 채웁니다. (이미 있으면 건너뜀)
func (s *Store) SeedDefaults() error {
	defaults := []NoticeCategory{
		{Name: "출결 공지", Type: "predefined", Description: strPtr("입실, 중간, 퇴실 관련 출결 공지"), IsActive: true},
		{Name: "만족도 공지", Type: "predefined", Description: strPtr("강의 및 모듈 만족도 조사 공지"), IsActive: true},
		{Name: "운영 질문 스레드", Type: "predefined", Description: strPtr("운영 관련 질문 스레드 공지"), IsActive: true},
		{Name: "기타 공지", Type: "custom", Description: strPtr("커스텀 공지 템플릿"), IsActive: true},
	}

	var count int
	if err := s.db.Get(&count, "SELECT COUNT(*) FROM notice_categories WHERE workspace_id IS NULL"); err != nil {
		log.Printf("[ERROR] SeedDefaults 카운트 조회 에러: %v", err)
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range defaults {
		if err := s.CreateCategory(&defaults[i]); err != nil {
			return err
		}
	}
	log.Printf("[INFO] 기본 공지 카테고리 %d건을 생성했습니다.", len(defaults))
	return nil
}

func strPtr(s string) *string { return &s }
