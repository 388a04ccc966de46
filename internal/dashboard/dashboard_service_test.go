package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastlm/internal/notice"
)

func calendarFixture() []notice.Notice {
	day := time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local)
	var notices []notice.Notice

	// 1월 5일에 5건 (접힘 확인용)
	for i := 0; i < 5; i++ {
		notices = append(notices, notice.Notice{
			ID:          fmt.Sprintf("n%d", i),
			Title:       fmt.Sprintf("공지 %d", i),
			Type:        notice.TypeAttendance,
			Status:      notice.StatusScheduled,
			WorkspaceID: 1,
			ScheduledAt: day.Add(time.Duration(i) * time.Hour),
		})
	}
	// 다른 워크스페이스 1건, 다른 달 1건
	notices = append(notices,
		notice.Notice{ID: "other-ws", WorkspaceID: 2, ScheduledAt: day},
		notice.Notice{ID: "other-month", WorkspaceID: 1, ScheduledAt: day.AddDate(0, 1, 0)},
	)
	return notices
}

func TestProjectCalendar_ChipsAndOverflow(t *testing.T) {
	cells := ProjectCalendar(calendarFixture(), 1, "2024-01")

	require.Len(t, cells, 1)
	cell := cells[0]
	assert.Equal(t, "2024-01-05", cell.Date)
	// 최대 3건까지만 칩으로, 나머지는 접힘 수로 표시됩니다.
	assert.Len(t, cell.Chips, 3)
	assert.Equal(t, 2, cell.More)

	chip := cell.Chips[0]
	assert.Equal(t, "n0", chip.NoticeID)
	assert.Equal(t, "09:00", chip.Time)
	assert.Equal(t, notice.StatusScheduled, chip.Status)
	assert.NotEmpty(t, chip.Color)
	assert.NotEmpty(t, chip.Icon)
}

func TestProjectCalendar_FiltersWorkspaceAndMonth(t *testing.T) {
	// 월 필터 없이 보면 같은 워크스페이스의 2월 건도 나옵니다.
	cells := ProjectCalendar(calendarFixture(), 1, "")
	require.Len(t, cells, 2)

	// 다른 워크스페이스는 어느 달에도 나오지 않습니다.
	for _, cell := range cells {
		for _, chip := range cell.Chips {
			assert.NotEqual(t, "other-ws", chip.NoticeID)
		}
	}
}

func TestStatusColors(t *testing.T) {
	assert.NotEqual(t, statusColor(notice.StatusSent), statusColor(notice.StatusFailed))
	assert.NotEqual(t, statusColor(notice.StatusScheduled), statusColor(notice.StatusFailed))
}
