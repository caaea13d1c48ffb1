package kst

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInReviewWindow(t *testing.T) {
	cases := []struct {
		name string
		hour int
		min  int
		want bool
	}{
		{"before open", 9, 0, false},
		{"just before open", 11, 59, false},
		{"at open", 12, 0, true},
		{"mid afternoon", 14, 0, true},
		{"last minute", 22, 59, true},
		{"at close", 23, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now := time.Date(2024, 6, 10, tc.hour, tc.min, 0, 0, Location)
			assert.Equal(t, tc.want, InReviewWindow(now))
		})
	}
}

func TestWindowUsesKSTNotHostZone(t *testing.T) {
	// 04:00 UTC is 13:00 KST: inside the window even though the UTC hour is not.
	now := time.Date(2024, 6, 10, 4, 0, 0, 0, time.UTC)
	assert.True(t, InReviewWindow(now))

	// 15:00 UTC is 00:00 KST next day: outside.
	now = time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	assert.False(t, InReviewWindow(now))
}

func TestIsTodayCrossesUTCBoundary(t *testing.T) {
	// 20:00 UTC on the 10th is already the 11th in KST.
	now := time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-11", Today(now))
	assert.False(t, IsToday("2024-06-10", now))
	assert.True(t, IsToday("2024-06-11", now))
}

func TestIsTodayRejectsMalformedDate(t *testing.T) {
	now := time.Date(2024, 6, 10, 14, 0, 0, 0, Location)
	assert.False(t, IsToday("06/10/2024", now))
	assert.False(t, IsToday("", now))
}
