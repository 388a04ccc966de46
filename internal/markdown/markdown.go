// Package markdown은 Slack 마크다운 부분집합을 미리보기용 HTML로 변환합니다.
// 실제 발송 페이로드는 변환 전의 원문 텍스트이며, 이 변환은 화면 표시에만 쓰입니다.
package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	// <URL|텍스트> 형식 링크 (이스케이프된 입력 기준)
	labeledLinkRe = regexp.MustCompile(`&lt;(https?://[^\s|]+?)\|(.+?)&gt;`)
	// 맨몸 URL 자동 링크
	bareURLRe = regexp.MustCompile(`https?://[^\s<>]+`)

	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*([^*\n]+)\*`)
	codeRe   = regexp.MustCompile("`([^`\n]+)`")
	quoteRe  = regexp.MustCompile(`(?m)^&gt; (.+)$`)

	unorderedItemRe = regexp.MustCompile(`^[\s]*-\s+(.+)$`)
	orderedItemRe   = regexp.MustCompile(`^[\s]*\d+\.\s+(.+)$`)
)

const (
	linkStyle  = `color: #1d4ed8; text-decoration: underline;`
	codeStyle  = `background: #f3f4f6; padding: 2px 6px; border-radius: 4px; font-family: monospace; font-size: 0.875em;`
	quoteStyle = `border-left: 4px solid #d1d5db; margin: 8px 0; padding-left: 16px; color: #6b7280; font-style: italic;`
	listStyle  = `margin: 8px 0; padding-left: 20px; list-style-type: disc;`
	itemStyle  = `margin: 4px 0;`
)

// ToDisplayMarkup은 제한된 마크업 방언을 HTML로 변환합니다.
// 입력 텍스트를 먼저 HTML 이스케이프하므로 임의 입력에 대해 안전하며,
// 마크업이 없는 입력은 줄바꿈 변환 외에는 그대로 통과합니다.
func ToDisplayMarkup(content string) string {
	rendered := html.EscapeString(content)

	// 1~2단계: 링크. RE2에는 lookbehind가 없어 이미 만든 링크를 자동 링크가
	// 다시 물지 않도록 토큰으로 치워 두었다가 마지막에 복원합니다.
	var links []string
	token := func(htmlLink string) string {
		links = append(links, htmlLink)
		return fmt.Sprintf("\x00LINK%d\x00", len(links)-1)
	}

	rendered = labeledLinkRe.ReplaceAllStringFunc(rendered, func(m string) string {
		sub := labeledLinkRe.FindStringSubmatch(m)
		return token(fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer" style="%s">%s</a>`, sub[1], linkStyle, sub[2]))
	})
	rendered = bareURLRe.ReplaceAllStringFunc(rendered, func(url string) string {
		return token(fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer" style="%s">%s</a>`, url, linkStyle, url))
	})

	// 3~5단계: 인라인 강조. 굵게를 먼저 소비해야 기울임이 '**'를 물지 않습니다.
	rendered = boldRe.ReplaceAllString(rendered, "<strong>$1</strong>")
	rendered = italicRe.ReplaceAllString(rendered, "<em>$1</em>")
	rendered = codeRe.ReplaceAllString(rendered, fmt.Sprintf(`<code style="%s">$1</code>`, codeStyle))

	// 6단계: 인용 블록
	rendered = quoteRe.ReplaceAllString(rendered, fmt.Sprintf(`<div style="%s">$1</div>`, quoteStyle))

	// 7단계: 리스트 (연속된 -, 1. 줄을 하나의 컨테이너로)
	rendered = collapseLists(rendered)

	// 토큰 복원
	for i, link := range links {
		rendered = strings.Replace(rendered, fmt.Sprintf("\x00LINK%d\x00", i), link, 1)
	}

	// 8단계: 줄바꿈
	return strings.ReplaceAll(rendered, "\n", "<br>")
}

// collapseLists는 연속 리스트 항목을 하나의 <ul>로 접습니다.
// 리스트가 아닌 줄을 만나면 닫고, 입력 끝에서도 반드시 닫습니다.
func collapseLists(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	var items []string

	flush := func() {
		if len(items) == 0 {
			return
		}
		out = append(out, fmt.Sprintf(`<ul style="%s">%s</ul>`, listStyle, strings.Join(items, "")))
		items = nil
	}

	for _, line := range lines {
		var content string
		if m := unorderedItemRe.FindStringSubmatch(line); m != nil {
			content = m[1]
		} else if m := orderedItemRe.FindStringSubmatch(line); m != nil {
			content = m[1]
		} else {
			flush()
			out = append(out, line)
			continue
		}
		items = append(items, fmt.Sprintf(`<li style="%s">%s</li>`, itemStyle, content))
	}
	flush()

	return strings.Join(out, "\n")
}
