package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUndeclaredPlaceholders(t *testing.T) {
	variables := []TemplateVariable{
		{Key: "mentor", Label: "멘토 이름"},
	}

	unknown := UndeclaredPlaceholders(
		"[{name}] {current_date_kr} 공지",
		"{checkin_time}까지 입실. 담당: {mentor}, 문의: {contact} / 다시 {contact}",
		variables,
	)

	// 파생 변수와 선언된 변수는 걸리지 않고, 미선언 키는 1회만 보고됩니다.
	assert.Equal(t, []string{"contact"}, unknown)
}

func TestUndeclaredPlaceholders_AllKnown(t *testing.T) {
	unknown := UndeclaredPlaceholders(
		"{name} 출석 안내",
		"{checkin_time_minus_10}부터 입장 가능",
		nil,
	)
	assert.Empty(t, unknown)
}
