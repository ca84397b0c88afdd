package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"madrasahku_backend/internals/features/content/notices/model"
)

func publishedNotice() model.NoticeModel {
	return model.NoticeModel{
		NoticeTitle:     datatypes.JSONMap{"en": "Exam schedule"},
		NoticeBody:      datatypes.JSONMap{"en": "Starts Sunday"},
		NoticePublished: true,
		NoticePublishAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func boolPtr(b bool) *bool { return &b }

func TestApplyNoticeUpdateTitleOnlyKeepsPublished(t *testing.T) {
	n := publishedNotice()
	require.NoError(t, applyNoticeUpdate(&n, noticeRequest{TitleBN: "পরীক্ষার সময়সূচি"}))

	assert.True(t, n.NoticePublished, "a title-only patch must not unpublish")
	assert.Equal(t, "পরীক্ষার সময়সূচি", n.NoticeTitle["bn"])
	assert.Equal(t, "Starts Sunday", n.NoticeBody["en"])
}

func TestApplyNoticeUpdatePublishedFlag(t *testing.T) {
	n := publishedNotice()
	require.NoError(t, applyNoticeUpdate(&n, noticeRequest{Published: boolPtr(false)}))
	assert.False(t, n.NoticePublished)

	require.NoError(t, applyNoticeUpdate(&n, noticeRequest{Published: boolPtr(true)}))
	assert.True(t, n.NoticePublished)
}

func TestApplyNoticeUpdatePublishAt(t *testing.T) {
	n := publishedNotice()
	require.NoError(t, applyNoticeUpdate(&n, noticeRequest{PublishAt: "2026-09-15T06:00:00+06:00"}))
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), n.NoticePublishAt)

	err := applyNoticeUpdate(&n, noticeRequest{PublishAt: "15-09-2026"})
	assert.EqualError(t, err, "publish_at must be RFC3339")
}
