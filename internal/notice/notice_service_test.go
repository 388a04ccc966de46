package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastlm/internal/template"
	"fastlm/internal/workspace"
)

func strPtr(s string) *string { return &s }

func buildFixtures() (*workspace.Workspace, *template.NoticeTemplate) {
	ws := &workspace.Workspace{
		ID:              1,
		Name:            "3기 백엔드",
		SlackWebhookURL: strPtr("https://hooks.slack.com/services/T0/B0/default"),
		CheckinTime:     strPtr("10:00"),
		WebhookURLs: workspace.WebhookList{
			{ID: "u2", Name: "공지방", URL: "https://hooks.slack.com/services/T0/B2/y"},
		},
	}
	tmpl := &template.NoticeTemplate{
		ID:      "tmpl-1",
		Title:   "[{name}] {current_date_kr} 출석 안내",
		Content: "{checkin_time}까지 체크인해주세요.",
	}
	return ws, tmpl
}

func TestBuildRequests_FanOutPerDate(t *testing.T) {
	ws, tmpl := buildFixtures()
	form := BuildForm{
		WorkspaceID: 1,
		TemplateID:  "tmpl-1",
		// 중복 날짜는 1건으로 접히고, 결과는 날짜 오름차순입니다.
		SelectedDates: []string{"2024-01-08", "2024-01-05", "2024-01-05"},
		NoticeTime:    "09:30",
		WebhookID:     "default",
		IncludeImage:  true,
	}

	requests, err := BuildRequests(ws, tmpl, form)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	// 날짜별로 독립된 예약 시각
	assert.Equal(t, time.Date(2024, 1, 5, 9, 30, 0, 0, time.Local), requests[0].ScheduledAt)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 30, 0, 0, time.Local), requests[1].ScheduledAt)

	// 날짜별로 다시 렌더링되므로 current_date 계열 값이 서로 다릅니다.
	assert.Equal(t, "[3기 백엔드] 1월 5일 출석 안내", requests[0].Title)
	assert.Equal(t, "[3기 백엔드] 1월 8일 출석 안내", requests[1].Title)
	assert.Equal(t, "10:00까지 체크인해주세요.", requests[0].Message)

	// 공통 필드
	for _, req := range requests {
		assert.Equal(t, uint64(1), req.WorkspaceID)
		assert.Equal(t, "tmpl-1", req.TemplateID)
		assert.Equal(t, TypeCustom, req.Type)
		assert.False(t, req.NoImage)
		assert.Equal(t, "https://hooks.slack.com/services/T0/B0/default", req.WebhookURL)
	}
}

func TestBuildRequests_WebhookByName(t *testing.T) {
	ws, tmpl := buildFixtures()
	form := BuildForm{
		WorkspaceID:   1,
		SelectedDates: []string{"2024-01-05"},
		NoticeTime:    "09:00",
		WebhookID:     "공지방", // (구버전 클라이언트의 표시 이름 선택)
	}

	requests, err := BuildRequests(ws, tmpl, form)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "https://hooks.slack.com/services/T0/B2/y", requests[0].WebhookURL)
	assert.Equal(t, "공지방", requests[0].WebhookName)
}

func TestBuildRequests_Preconditions(t *testing.T) {
	ws, tmpl := buildFixtures()

	_, err := BuildRequests(nil, tmpl, BuildForm{SelectedDates: []string{"2024-01-05"}, WebhookID: "default"})
	assert.Error(t, err, "워크스페이스 없음")

	_, err = BuildRequests(ws, nil, BuildForm{SelectedDates: []string{"2024-01-05"}, WebhookID: "default"})
	assert.Error(t, err, "템플릿 없음")

	_, err = BuildRequests(ws, tmpl, BuildForm{WebhookID: "default"})
	assert.Error(t, err, "날짜 없음")

	_, err = BuildRequests(ws, tmpl, BuildForm{SelectedDates: []string{"2024-01-05"}})
	assert.Error(t, err, "웹훅 미선택")

	_, err = BuildRequests(ws, tmpl, BuildForm{SelectedDates: []string{"01/05/2024"}, WebhookID: "default"})
	assert.Error(t, err, "날짜 형식 오류")

	_, err = BuildRequests(ws, tmpl, BuildForm{SelectedDates: []string{"2024-01-05"}, NoticeTime: "9시 30분", WebhookID: "default"})
	assert.Error(t, err, "시간 형식 오류")
}

func TestFilterNotices(t *testing.T) {
	notices := []Notice{
		{ID: "a", ScheduledAt: time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local), Status: StatusScheduled},
		{ID: "b", ScheduledAt: time.Date(2024, 1, 5, 18, 0, 0, 0, time.Local), Status: StatusSent},
		{ID: "c", ScheduledAt: time.Date(2024, 2, 1, 9, 0, 0, 0, time.Local), Status: StatusScheduled},
	}

	// 날짜 접두사 일치 (월 단위)
	got := FilterNotices(notices, "2024-01", "")
	require.Len(t, got, 2)

	// 날짜 + 상태
	got = FilterNotices(notices, "2024-01-05", StatusSent)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	// 필터 없음
	assert.Len(t, FilterNotices(notices, "", ""), 3)
}

func TestCanEdit(t *testing.T) {
	assert.True(t, (&Notice{Status: StatusScheduled}).CanEdit())
	assert.False(t, (&Notice{Status: StatusSent}).CanEdit())
	assert.False(t, (&Notice{Status: StatusFailed}).CanEdit())
}

func TestDedupeDates(t *testing.T) {
	got := dedupeDates([]string{"2024-01-08", "2024-01-05", "2024-01-08"})
	assert.Equal(t, []string{"2024-01-05", "2024-01-08"}, got)
}
