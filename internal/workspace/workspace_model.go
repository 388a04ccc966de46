package workspace

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Workspace는 'workspaces' 테이블의 스키마입니다.
// (하나의 워크스페이스 = 하나의 운영 단위. Slack 웹훅 / Zoom / QR 기본값을 가집니다)
type Workspace struct {
	ID               uint64      `json:"id" db:"id"`
	Name             string      `json:"name" db:"name"`
	Description      *string     `json:"description" db:"description"`
	SlackWebhookURL  *string     `json:"slackWebhookUrl" db:"slack_webhook_url"`
	SlackWebhookName *string     `json:"slackWebhookName" db:"slack_webhook_name"`
	WebhookURLs      WebhookList `json:"webhookUrls" db:"webhook_urls"` // JSON
	CheckinTime      *string     `json:"checkinTime" db:"checkin_time"`
	MiddleTime       *string     `json:"middleTime" db:"middle_time"`
	CheckoutTime     *string     `json:"checkoutTime" db:"checkout_time"`
	QRImageURL       *string     `json:"qrImageUrl" db:"qr_image_url"`
	ZoomURL          *string     `json:"zoomUrl" db:"zoom_url"`
	ZoomID           *string     `json:"zoomId" db:"zoom_id"`
	ZoomPassword     *string     `json:"zoomPassword" db:"zoom_password"`
	Status           string      `json:"status" db:"status"` // pending | approved | rejected
	CreatedID        uint64      `json:"created_id" db:"created_id"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time   `json:"updatedAt" db:"updated_at"`
}

// Webhook은 워크스페이스에 등록된 추가 웹훅 1건입니다.
// ID는 불변 키이고, Name은 표시용입니다. (표시 이름으로 선택하던 구버전 동작은
// ResolveWebhook의 이름 폴백으로만 남겨둡니다)
type Webhook struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// WebhookList는 'webhook_urls' JSON 컬럼 매핑입니다.
type WebhookList []Webhook

func (l WebhookList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *WebhookList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = WebhookList{}
		return nil
	case []byte:
		if len(v) == 0 {
			*l = WebhookList{}
			return nil
		}
		return json.Unmarshal(v, l)
	case string:
		if v == "" {
			*l = WebhookList{}
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("webhook_urls 컬럼 타입을 해석할 수 없습니다: %T", src)
	}
}
