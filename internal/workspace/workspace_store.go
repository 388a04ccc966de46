package workspace

import (
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Store는 'workspace' 기능의 DB 로직을 관리합니다.
type Store struct {
	db *sqlx.DB
}

// NewStore는 새 Store를 생성합니다.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// CountWorkspaces는 'workspaces' 테이블의 총 개수를 반환합니다. (대시보드용)
func (s *Store) CountWorkspaces() (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM workspaces"

	err := s.db.Get(&count, query)
	if err != nil {
		log.Printf("[ERROR] CountWorkspaces DB 에러: %v", err)
		return 0, err
	}
	return count, nil
}

// GetAllWorkspaces는 모든 워크스페이스 목록을 반환합니다.
func (s *Store) GetAllWorkspaces() ([]Workspace, error) {
	var workspaces []Workspace
	query := `
		SELECT
			id, name, description, slack_webhook_url, slack_webhook_name,
			webhook_urls, checkin_time, middle_time, checkout_time,
			qr_image_url, zoom_url, zoom_id, zoom_password,
			status, created_id, created_at, updated_at
		FROM workspaces
		ORDER BY name ASC
	`
	err := s.db.Select(&workspaces, query)
	if err != nil {
		log.Printf("[ERROR] GetAllWorkspaces DB 에러: %v", err)
		return nil, err
	}
	return workspaces, nil
}

// GetWorkspaceByID는 ID로 워크스페이스 1개를 조회합니다.
func (s *Store) GetWorkspaceByID(id uint64) (*Workspace, error) {
	var ws Workspace
	query := `
		SELECT
			id, name, description, slack_webhook_url, slack_webhook_name,
			webhook_urls, checkin_time, middle_time, checkout_time,
			qr_image_url, zoom_url, zoom_id, zoom_password,
			status, created_id, created_at, updated_at
		FROM workspaces
		WHERE id = ?
	`
	err := s.db.Get(&ws, query, id)
	if err != nil {
		log.Printf("[ERROR] GetWorkspaceByID(ID: %d) DB 에러: %v", id, err)
		return nil, err // (ErrNoRows 포함)
	}
	return &ws, nil
}

// CreateWorkspace는 새 워크스페이스를 INSERT하고 생성된 ID를 채웁니다.
func (s *Store) CreateWorkspace(ws *Workspace) error {
	query := `
		INSERT INTO workspaces (
			name, description, slack_webhook_url, slack_webhook_name,
			webhook_urls, checkin_time, middle_time, checkout_time,
			qr_image_url, zoom_url, zoom_id, zoom_password,
			status, created_id
		) VALUES (
			:name, :description, :slack_webhook_url, :slack_webhook_name,
			:webhook_urls, :checkin_time, :middle_time, :checkout_time,
			:qr_image_url, :zoom_url, :zoom_id, :zoom_password,
			:status, :created_id
		)
	`
	res, err := s.db.NamedExec(query, ws)
	if err != nil {
		log.Printf("[ERROR] CreateWorkspace DB 에러: %v", err)
		return err
	}
	if id, err := res.LastInsertId(); err == nil {
		ws.ID = uint64(id)
	}
	return nil
}

// UpdateWorkspace는 워크스페이스 내용을 수정합니다.
func (s *Store) UpdateWorkspace(ws *Workspace) error {
	query := `
		UPDATE workspaces
		SET
			name = :name,
			description = :description,
			slack_webhook_url = :slack_webhook_url,
			slack_webhook_name = :slack_webhook_name,
			webhook_urls = :webhook_urls,
			checkin_time = :checkin_time,
			middle_time = :middle_time,
			checkout_time = :checkout_time,
			qr_image_url = :qr_image_url,
			zoom_url = :zoom_url,
			zoom_id = :zoom_id,
			zoom_password = :zoom_password,
			status = :status
		WHERE
			id = :id
	`
	_, err := s.db.NamedExec(query, ws)
	if err != nil {
		log.Printf("[ERROR] UpdateWorkspace DB 에러: %v", err)
		return err
	}
	return nil
}

// UpdateQRImageURL은 QR 이미지 경로만 갱신합니다. (업로드/생성 핸들러용)
func (s *Store) UpdateQRImageURL(id uint64, url string) error {
	query := "UPDATE workspaces SET qr_image_url = ? WHERE id = ?"
	_, err := s.db.Exec(query, url, id)
	if err != nil {
		log.Printf("[ERROR] UpdateQRImageURL DB 에러: %v", err)
		return err
	}
	return nil
}

// DeleteWorkspace는 ID로 워크스페이스를 삭제합니다.
func (s *Store) DeleteWorkspace(id uint64) error {
	query := "DELETE FROM workspaces WHERE id = ?"
	_, err := s.db.Exec(query, id)
	if err != nil {
		// ('notices'가 workspace_id를 FK로 참조하면 1451 에러가 반환됩니다)
		log.Printf("[ERROR] DeleteWorkspace DB 에러: %v", err)
		return err
	}
	return nil
}
