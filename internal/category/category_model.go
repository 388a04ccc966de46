package category

import (
	"time"
)

// NoticeCategory는 'notice_categories' 테이블의 스키마입니다.
// workspace_id가 NULL이면 모든 워크스페이스에 보이는 기본 카테고리입니다.
type NoticeCategory struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Type        string    `json:"type" db:"category_type"` // predefined | custom
	Description *string   `json:"description" db:"description"`
	WorkspaceID *uint64   `json:"workspaceId" db:"workspace_id"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
