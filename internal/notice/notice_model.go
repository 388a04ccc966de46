package notice

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// 공지 상태 값입니다. scheduled가 초기 상태이며 sent/failed는 종료 상태입니다.
const (
	StatusScheduled = "scheduled"
	StatusSent      = "sent"
	StatusFailed    = "failed"
)

// 공지 유형 값입니다.
const (
	TypeAttendance   = "attendance"
	TypeSatisfaction = "satisfaction"
	TypeThread       = "thread"
	TypeCustom       = "custom"
)

// Notice는 'notices' 테이블의 스키마입니다. (예약/발송된 메시지 1건)
type Notice struct {
	ID           string    `json:"id" db:"id"`
	Type         string    `json:"type" db:"notice_type"`
	CategoryID   *string   `json:"categoryId" db:"category_id"`
	TemplateID   *string   `json:"templateId" db:"template_id"`
	Title        string    `json:"title" db:"title"`
	Message      string    `json:"message" db:"message"`
	WorkspaceID  uint64    `json:"workspaceId" db:"workspace_id"`
	ScheduledAt  time.Time `json:"scheduledAt" db:"scheduled_at"`
	Status       string    `json:"status" db:"status"`
	CreatedID    uint64    `json:"created_id" db:"created_id"`
	NoImage      bool      `json:"noImage" db:"no_image"`
	FormData     JSONMap   `json:"formData" db:"form_data"`         // 작성 당시 입력 스냅샷
	VariableData JSONMap   `json:"variableData" db:"variable_data"` // 변수 바인딩 스냅샷
	WebhookURL   *string   `json:"webhookUrl" db:"webhook_url"`
	WebhookName  *string   `json:"webhookName" db:"webhook_name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// CanEdit는 수정 가능 여부입니다. 발송(sent/failed) 후에는 수정할 수 없습니다.
func (n *Notice) CanEdit() bool {
	return n.Status == StatusScheduled
}

// JSONMap은 문자열 키/값 JSON 컬럼 매핑입니다.
type JSONMap map[string]string

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *JSONMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = JSONMap{}
		return nil
	case []byte:
		if len(v) == 0 {
			*m = JSONMap{}
			return nil
		}
		return json.Unmarshal(v, m)
	case string:
		if v == "" {
			*m = JSONMap{}
			return nil
		}
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("JSON 컬럼 타입을 해석할 수 없습니다: %T", src)
	}
}
