package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func webhookFixture() *Workspace {
	return &Workspace{
		ID:              1,
		Name:            "3기 백엔드",
		SlackWebhookURL: strPtr("https://hooks.slack.com/services/T0/B0/default"),
		WebhookURLs: WebhookList{
			{ID: "u1", Name: "", URL: "https://hooks.slack.com/services/T0/B1/x"},
			{ID: "u2", Name: "공지방", URL: "https://hooks.slack.com/services/T0/B2/y"},
		},
	}
}

func TestAvailableWebhooks_Order(t *testing.T) {
	options := AvailableWebhooks(webhookFixture())

	require.Len(t, options, 3)
	// 기본 웹훅이 맨 앞, 이름이 없으면 폴백 이름을 받습니다.
	assert.Equal(t, "default", options[0].ID)
	assert.Equal(t, DefaultWebhookName, options[0].Name)
	assert.Equal(t, "웹훅 1", options[1].Name)
	assert.Equal(t, "공지방", options[2].Name)
}

func TestAvailableWebhooks_CustomDefaultName(t *testing.T) {
	ws := webhookFixture()
	ws.SlackWebhookName = strPtr("운영 알림")

	options := AvailableWebhooks(ws)
	assert.Equal(t, "운영 알림", options[0].Name)
}

func TestAvailableWebhooks_NoDefaultURL(t *testing.T) {
	ws := webhookFixture()
	ws.SlackWebhookURL = nil

	options := AvailableWebhooks(ws)
	require.Len(t, options, 2)
	assert.Equal(t, "u1", options[0].ID)
}

func TestResolveWebhook_ByID(t *testing.T) {
	webhook, err := ResolveWebhook(webhookFixture(), "u2")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.slack.com/services/T0/B2/y", webhook.URL)
}

func TestResolveWebhook_ByNameFallback(t *testing.T) {
	// 구버전 클라이언트는 표시 이름으로 선택값을 보냅니다.
	webhook, err := ResolveWebhook(webhookFixture(), "공지방")
	require.NoError(t, err)
	assert.Equal(t, "u2", webhook.ID)
}

func TestResolveWebhook_RoundTrip(t *testing.T) {
	ws := webhookFixture()
	for _, option := range AvailableWebhooks(ws) {
		resolved, err := ResolveWebhook(ws, option.ID)
		require.NoError(t, err)
		assert.Equal(t, option.URL, resolved.URL)
	}
}

func TestResolveWebhook_Errors(t *testing.T) {
	_, err := ResolveWebhook(webhookFixture(), "")
	assert.Error(t, err)

	_, err = ResolveWebhook(webhookFixture(), "없는-웹훅")
	assert.Error(t, err)
}

func TestAssignWebhookIDs(t *testing.T) {
	list := assignWebhookIDs([]Webhook{
		{ID: "keep-me", URL: "https://hooks.slack.com/a"},
		{URL: "https://hooks.slack.com/b"},
		{Name: "URL 없는 항목"},
	})

	require.Len(t, list, 2)
	// 기존 ID는 유지, 새 항목은 ID를 받습니다. URL이 빈 항목은 버립니다.
	assert.Equal(t, "keep-me", list[0].ID)
	assert.NotEmpty(t, list[1].ID)
}
