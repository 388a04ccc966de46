package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastlm/internal/workspace"
)

func strPtr(s string) *string { return &s }

func testWorkspace() *workspace.Workspace {
	return &workspace.Workspace{
		ID:           1,
		Name:         "3기 백엔드",
		CheckinTime:  strPtr("10:00"),
		CheckoutTime: strPtr("19:00"),
		ZoomURL:      strPtr("https://zoom.us/j/123"),
		ZoomID:       strPtr("123 456"),
		ZoomPassword: strPtr("pw1234"),
	}
}

func TestResolve_WorkspaceValues(t *testing.T) {
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)
	now := time.Date(2024, 1, 3, 14, 30, 0, 0, time.Local)

	vars := resolveAt(testWorkspace(), nil, day, now)

	cases := map[string]string{
		"name":                  "3기 백엔드",
		"checkin_time":          "10:00",
		"middle_time":           "13:00", // (미설정이면 기본값)
		"checkout_time":         "19:00",
		"zoom_url":              "https://zoom.us/j/123",
		"zoom_id":               "123 456",
		"zoom_password":         "pw1234",
		"current_date":          "2024-01-05",
		"current_date_kr":       "1월 5일",
		"current_time":          "14:30",
		"checkin_time_minus_10": "09:50",
		"checkout_time_plus_10": "19:10",
	}
	for key, want := range cases {
		got, ok := vars.Get(key)
		require.True(t, ok, "변수 %s가 없습니다", key)
		assert.Equal(t, want, got, "변수 %s", key)
	}
}

func TestResolve_DefaultsWhenUnset(t *testing.T) {
	ws := &workspace.Workspace{ID: 2, Name: "빈 설정"}
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)

	vars := Resolve(ws, nil, day)

	got, _ := vars.Get("checkin_time")
	assert.Equal(t, DefaultCheckinTime, got)
	got, _ = vars.Get("middle_time")
	assert.Equal(t, DefaultMiddleTime, got)
	got, _ = vars.Get("checkout_time")
	assert.Equal(t, DefaultCheckoutTime, got)
	got, _ = vars.Get("zoom_url")
	assert.Equal(t, "", got)
}

func TestResolve_ExplicitOverridesDerived(t *testing.T) {
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)

	vars := Resolve(testWorkspace(), map[string]string{
		"name":   "수동 입력 이름",
		"mentor": "김멘토",
	}, day)

	got, _ := vars.Get("name")
	assert.Equal(t, "수동 입력 이름", got)
	got, _ = vars.Get("mentor")
	assert.Equal(t, "김멘토", got)
}

func TestRender_Substitution(t *testing.T) {
	vars := NewVariables()
	vars.Set("name", "3기 백엔드")
	vars.Set("checkin_time", "10:00")

	title, content := Render(
		"[{name}] 출석 안내",
		"{checkin_time}까지 입실해주세요. {unknown_key}",
		vars,
	)

	assert.Equal(t, "[3기 백엔드] 출석 안내", title)
	// 테이블에 없는 플레이스홀더는 원문 그대로 남습니다.
	assert.Equal(t, "10:00까지 입실해주세요. {unknown_key}", content)
}

func TestRender_ValueContainingPlaceholderIsNotReRendered(t *testing.T) {
	vars := NewVariables()
	vars.Set("a", "{b}")
	vars.Set("b", "실제값")

	_, content := Render("", "{a}", vars)

	// 'a'의 값에 들어 있던 '{b}'는 뒤 변수 치환에 다시 걸립니다.
	// (키 순서대로 한 번씩 전역 치환하는 계약의 알려진 결과)
	assert.Equal(t, "실제값", content)
}

func TestAdjustMinutes(t *testing.T) {
	assert.Equal(t, "09:50", AdjustMinutes("10:00", -10))
	assert.Equal(t, "19:10", AdjustMinutes("19:00", 10))

	// 자정 경계
	assert.Equal(t, "23:55", AdjustMinutes("00:05", -10))
	assert.Equal(t, "00:05", AdjustMinutes("23:55", 10))

	// 파싱 불가능한 입력은 그대로 반환합니다.
	assert.Equal(t, "점심시간", AdjustMinutes("점심시간", 10))
	assert.Equal(t, "", AdjustMinutes("", -10))
}

func TestFormatDateKorean(t *testing.T) {
	assert.Equal(t, "1월 5일", FormatDateKorean(time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, "12월 31일", FormatDateKorean(time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local)))
}

func TestVariables_PreservesInsertionOrder(t *testing.T) {
	vars := NewVariables()
	vars.Set("b", "2")
	vars.Set("a", "1")
	vars.Set("b", "3") // 덮어쓰기는 위치를 바꾸지 않습니다

	var keys []string
	vars.Each(func(key, _ string) { keys = append(keys, key) })

	assert.Equal(t, []string{"b", "a"}, keys)
	assert.Equal(t, 2, vars.Len())
	got, _ := vars.Get("b")
	assert.Equal(t, "3", got)
}
