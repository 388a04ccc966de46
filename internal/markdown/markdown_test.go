package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDisplayMarkup_PlainTextPassesThrough(t *testing.T) {
	got := ToDisplayMarkup("오늘도 화이팅입니다")
	assert.Equal(t, "오늘도 화이팅입니다", got)
}

func TestToDisplayMarkup_NewlinesBecomeBreaks(t *testing.T) {
	got := ToDisplayMarkup("첫 줄\n둘째 줄")
	assert.Equal(t, "첫 줄<br>둘째 줄", got)
}

func TestToDisplayMarkup_EscapesHTML(t *testing.T) {
	got := ToDisplayMarkup(`<script>alert("x")</script>`)
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;")
}

func TestToDisplayMarkup_Bold(t *testing.T) {
	got := ToDisplayMarkup("**중요** 공지")
	assert.Equal(t, "<strong>중요</strong> 공지", got)
}

func TestToDisplayMarkup_Italic(t *testing.T) {
	got := ToDisplayMarkup("*강조* 텍스트")
	assert.Equal(t, "<em>강조</em> 텍스트", got)
}

func TestToDisplayMarkup_BoldIsNotEatenByItalic(t *testing.T) {
	got := ToDisplayMarkup("**굵게**와 *기울임*")
	assert.Contains(t, got, "<strong>굵게</strong>")
	assert.Contains(t, got, "<em>기울임</em>")
}

func TestToDisplayMarkup_InlineCode(t *testing.T) {
	got := ToDisplayMarkup("명령어는 `go test` 입니다")
	assert.Contains(t, got, ">go test</code>")
}

func TestToDisplayMarkup_Quote(t *testing.T) {
	got := ToDisplayMarkup("> 지각하지 맙시다")
	assert.Contains(t, got, "지각하지 맙시다</div>")
	assert.NotContains(t, got, "&gt;")
}

func TestToDisplayMarkup_LabeledLink(t *testing.T) {
	got := ToDisplayMarkup("<https://example.com/docs|자료 링크>")
	assert.Contains(t, got, `href="https://example.com/docs"`)
	assert.Contains(t, got, ">자료 링크</a>")
	// 레이블 링크 안의 URL이 자동 링크에 또 걸리면 안 됩니다.
	assert.Equal(t, 1, strings.Count(got, "<a "))
}

func TestToDisplayMarkup_BareURLAutolink(t *testing.T) {
	got := ToDisplayMarkup("접속: https://zoom.us/j/123")
	assert.Contains(t, got, `href="https://zoom.us/j/123"`)
	assert.Contains(t, got, ">https://zoom.us/j/123</a>")
}

func TestToDisplayMarkup_ListCollapses(t *testing.T) {
	got := ToDisplayMarkup("- 출석 체크\n- 줌 입장\n일반 텍스트")
	assert.Equal(t, 1, strings.Count(got, "<ul "))
	assert.Equal(t, 2, strings.Count(got, "<li "))
	assert.Contains(t, got, "일반 텍스트")
}

func TestToDisplayMarkup_ListClosesAtEndOfInput(t *testing.T) {
	// 마지막 줄이 리스트 항목이어도 컨테이너가 닫혀야 합니다.
	got := ToDisplayMarkup("안내:\n1. 첫째\n2. 둘째")
	assert.Equal(t, 1, strings.Count(got, "<ul "))
	assert.Equal(t, 1, strings.Count(got, "</ul>"))
	assert.Equal(t, 2, strings.Count(got, "<li "))
}
