package notice

import (
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// Store는 'notice' 기능의 DB 로직을 관리합니다.
type Store struct {
	db *sqlx.DB
}

// NewStore는 새 Store를 생성합니다.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

const noticeColumns = `
	id, notice_type, category_id, template_id, title, message,
	workspace_id, scheduled_at, status, created_id, no_image,
	form_data, variable_data, webhook_url, webhook_name,
	created_at, updated_at
`

// GetAllNotices는 전체 공지 목록을 반환합니다.
// (날짜/상태 필터는 관측된 클라이언트 동작대로 조회 후에 적용합니다 - FilterNotices)
func (s *Store) GetAllNotices() ([]Notice, error) {
	var notices []Notice
	query := "SELECT " + noticeColumns + " FROM notices ORDER BY scheduled_at ASC"

	err := s.db.Select(&notices, query)
	if err != nil {
		log.Printf("[ERROR] GetAllNotices DB 에러: %v", err)
		return nil, err
	}
	return notices, nil
}

// GetNoticeByID는 ID로 공지 1건을 조회합니다.
func (s *Store) GetNoticeByID(id string) (*Notice, error) {
	var n Notice
	query := "SELECT " + noticeColumns + " FROM notices WHERE id = ?"

	err := s.db.Get(&n, query, id)
	if err != nil {
		log.Printf("[ERROR] GetNoticeByID(ID: %s) DB 에러: %v", id, err)
		return nil, err // (ErrNoRows 포함)
	}
	return &n, nil
}

// CountByStatus는 워크스페이스의 상태별 공지 수를 반환합니다. (대시보드용)
func (s *Store) CountByStatus(workspaceID uint64) (map[string]int, error) {
	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"cnt"`
	}{}
	query := `
		SELECT status, COUNT(*) AS cnt
		FROM notices
		WHERE workspace_id = ?
		GROUP BY status
	`
	err := s.db.Select(&rows, query, workspaceID)
	if err != nil {
		log.Printf("[ERROR] CountByStatus DB 에러: %v", err)
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// CreateNotice는 새 공지를 INSERT합니다.
func (s *Store) CreateNotice(n *Notice) error {
	query := `
		INSERT INTO notices (
			id, notice_type, category_id, template_id, title, message,
			workspace_id, scheduled_at, status, created_id, no_image,
			form_data, variable_data, webhook_url, webhook_name
		) VALUES (
			:id, :notice_type, :category_id, :template_id, :title, :message,
			:workspace_id, :scheduled_at, :status, :created_id, :no_image,
			:form_data, :variable_data, :webhook_url, :webhook_name
		)
	`
	_, err := s.db.NamedExec(query, n)
	if err != nil {
		log.Printf("[ERROR] CreateNotice DB 에러: %v", err)
		return err
	}
	return nil
}

// UpdateNotice는 공지 내용을 수정합니다.
func (s *Store) UpdateNotice(n *Notice) error {
	query := `
		UPDATE notices
		SET
			title = :title,
			message = :message,
			scheduled_at = :scheduled_at,
			status = :status,
			no_image = :no_image,
			webhook_url = :webhook_url,
			webhook_name = :webhook_name
		WHERE
			id = :id
	`
	_, err := s.db.NamedExec(query, n)
	if err != nil {
		log.Printf("[ERROR] UpdateNotice DB 에러: %v", err)
		return err
	}
	return nil
}

// UpdateStatus는 공지 상태만 갱신합니다. (발송 결과 반영용)
func (s *Store) UpdateStatus(id string, status string) error {
	query := "UPDATE notices SET status = ? WHERE id = ?"
	_, err := s.db.Exec(query, status, id)
	if err != nil {
		log.Printf("[ERROR] UpdateStatus DB 에러: %v", err)
		return err
	}
	return nil
}

// DeleteNotice는 ID로 공지를 삭제합니다.
func (s *Store) DeleteNotice(id string) error {
	query := "DELETE FROM notices WHERE id = ?"
	_, err := s.db.Exec(query, id)
	if err != nil {
		log.Printf("[ERROR] DeleteNotice DB 에러: %v", err)
		return err
	}
	return nil
}

// DeleteNotices는 여러 공지를 한 번에 삭제하고 삭제된 건수를 반환합니다.
func (s *Store) DeleteNotices(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In("DELETE FROM notices WHERE id IN (?)", ids)
	if err != nil {
		return 0, err
	}
	res, err := s.db.Exec(s.db.Rebind(query), args...)
	if err != nil {
		log.Printf("[ERROR] DeleteNotices DB 에러: %v", err)
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// GetNoticesToSendNow는 디스패처가 '지금' 발송해야 할 공지 목록을 반환합니다.
// (예약 상태이면서 예약 시각이 지난 것)
func (s *Store) GetNoticesToSendNow() ([]Notice, error) {
	var notices []Notice
	query := "SELECT " + noticeColumns + ` FROM notices
		WHERE status = ? AND scheduled_at <= NOW()
		ORDER BY scheduled_at ASC`

	err := s.db.Select(&notices, query, StatusScheduled)
	if err != nil {
		log.Printf("[ERROR] [Scheduler] GetNoticesToSendNow DB 에러: %v", err)
		return nil, err
	}
	return notices, nil
}
