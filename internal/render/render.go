// Package render는 공지 템플릿의 변수 해석과 '{key}' 치환을 담당합니다.
// 미리보기와 예약 생성이 같은 코드를 타야 하므로 (화면마다 복붙하지 않고)
// 순수 함수로만 구성합니다.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"fastlm/internal/workspace"
)

// 워크스페이스에 시간이 설정되지 않았을 때의 기본값입니다.
const (
	DefaultCheckinTime  = "09:00"
	DefaultMiddleTime   = "13:00"
	DefaultCheckoutTime = "18:00"
)

// Variables는 삽입 순서를 보존하는 문자열 키/값 테이블입니다.
// 치환은 "파생 변수 먼저, 입력 변수 나중" 순서를 따라야 하므로
// 일반 map 대신 이 구조를 사용합니다.
type Variables struct {
	keys   []string
	values map[string]string
}

// NewVariables는 빈 테이블을 생성합니다.
func NewVariables() *Variables {
	return &Variables{values: make(map[string]string)}
}

// Set은 값을 넣거나 덮어씁니다. 덮어쓸 때 기존 위치는 유지됩니다.
func (v *Variables) Set(key, value string) {
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

// Get은 키의 값을 반환합니다.
func (v *Variables) Get(key string) (string, bool) {
	val, ok := v.values[key]
	return val, ok
}

// Len은 등록된 변수 개수를 반환합니다.
func (v *Variables) Len() int {
	return len(v.keys)
}

// Each는 삽입 순서대로 순회합니다.
func (v *Variables) Each(fn func(key, value string)) {
	for _, k := range v.keys {
		fn(k, v.values[k])
	}
}

// DerivedKeys는 워크스페이스에서 파생되는 잘 알려진 변수 키 목록입니다.
// (템플릿 저장 시 미선언 플레이스홀더 검사에 사용)
func DerivedKeys() []string {
	return []string{
		"name",
		"checkin_time",
		"middle_time",
		"checkout_time",
		"zoom_url",
		"zoom_id",
		"zoom_password",
		"current_date",
		"current_date_kr",
		"current_time",
		"checkin_time_minus_10",
		"checkout_time_plus_10",
	}
}

// Resolve는 워크스페이스 설정 + 입력 변수 + 대상 날짜를 평탄한 변수 테이블로
// 해석합니다. current_time만 해석 시점의 벽시계를 따릅니다.
// (발송 대상 날짜와 무관한 "지금" 의미 - 원 동작 유지, DESIGN.md 참고)
func Resolve(ws *workspace.Workspace, explicit map[string]string, targetDate time.Time) *Variables {
	return resolveAt(ws, explicit, targetDate, time.Now())
}

func resolveAt(ws *workspace.Workspace, explicit map[string]string, targetDate time.Time, now time.Time) *Variables {
	vars := NewVariables()

	checkin := stringOr(ws.CheckinTime, DefaultCheckinTime)
	checkout := stringOr(ws.CheckoutTime, DefaultCheckoutTime)

	vars.Set("name", ws.Name)
	vars.Set("checkin_time", checkin)
	vars.Set("middle_time", stringOr(ws.MiddleTime, DefaultMiddleTime))
	vars.Set("checkout_time", checkout)
	vars.Set("zoom_url", stringOr(ws.ZoomURL, ""))
	vars.Set("zoom_id", stringOr(ws.ZoomID, ""))
	vars.Set("zoom_password", stringOr(ws.ZoomPassword, ""))
	vars.Set("current_date", targetDate.Format("2006-01-02"))
	vars.Set("current_date_kr", FormatDateKorean(targetDate))
	vars.Set("current_time", now.Format("15:04"))
	vars.Set("checkin_time_minus_10", AdjustMinutes(checkin, -10))
	vars.Set("checkout_time_plus_10", AdjustMinutes(checkout, 10))

	// 입력 변수는 파생 변수 위에 덮습니다. (충돌 시 입력값 우선)
	// map 순회는 비결정적이므로 키 정렬로 순서를 고정합니다.
	keys := make([]string, 0, len(explicit))
	for k := range explicit {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		vars.Set(k, explicit[k])
	}

	return vars
}

// Render는 title/content의 '{key}' 를 변수 테이블로 치환합니다.
// 키당 1회 전역 치환이며, 테이블에 없는 플레이스홀더는 그대로 남습니다.
// 값 자체에 '{뒷키}' 가 들어 있으면 뒷 키의 치환 차례에 다시 걸립니다.
// (순차 전역 치환의 알려진 결과)
func Render(title, content string, vars *Variables) (string, string) {
	vars.Each(func(key, value string) {
		placeholder := "{" + key + "}"
		title = strings.ReplaceAll(title, placeholder, value)
		content = strings.ReplaceAll(content, placeholder, value)
	})
	return title, content
}

// AdjustMinutes는 "HH:MM" 에 분을 더하거나 뺍니다.
// 자정 경계는 모듈러 연산으로 넘깁니다. (00:05 - 10분 = 23:55)
func AdjustMinutes(clock string, delta int) string {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return clock
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return clock
	}

	total := (h*60 + m + delta) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatDateKorean은 날짜를 "M월 D일" 형식으로 반환합니다. (0 패딩 없음)
func FormatDateKorean(t time.Time) string {
	return fmt.Sprintf("%d월 %d일", int(t.Month()), t.Day())
}

func stringOr(v *string, fallback string) string {
	if v != nil && *v != "" {
		return *v
	}
	return fallback
}
