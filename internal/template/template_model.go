package template

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// NoticeTemplate은 'notice_templates' 테이블의 스키마입니다.
// title/content에는 '{변수키}' 플레이스홀더가 들어갑니다.
type NoticeTemplate struct {
	ID          string       `json:"id" db:"id"`
	CategoryID  string       `json:"categoryId" db:"category_id"`
	WorkspaceID uint64       `json:"workspaceId" db:"workspace_id"`
	Name        string       `json:"name" db:"name"`
	Title       string       `json:"title" db:"title"`
	Content     string       `json:"content" db:"content"`
	Variables   VariableList `json:"variables" db:"variables"` // JSON
	IsDefault   bool         `json:"isDefault" db:"is_default"`
	CreatedID   uint64       `json:"created_id" db:"created_id"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}

// TemplateVariable은 변수 '선언'입니다. 값은 공지 작성 시점에 들어옵니다.
// Type은 편집 화면 안내용 태그일 뿐이며 여기서는 존재 여부만 검사합니다.
type TemplateVariable struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Example     string `json:"example"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // string | date | time | url | number
}

// VariableList는 'variables' JSON 컬럼 매핑입니다.
type VariableList []TemplateVariable

func (l VariableList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *VariableList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = VariableList{}
		return nil
	case []byte:
		if len(v) == 0 {
			*l = VariableList{}
			return nil
		}
		return json.Unmarshal(v, l)
	case string:
		if v == "" {
			*l = VariableList{}
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("variables 컬럼 타입을 해석할 수 없습니다: %T", src)
	}
}
