package ui

import (
	"strings"
	"testing"
)

func TestRenderStars(t *testing.T) {
	styles := NewStyles(LightTheme())

	cases := []struct {
		score  int
		filled int
	}{
		{0, 0},
		{3, 3},
		{5, 5},
		{-1, 0}, // clamped
		{9, 5},  // clamped
	}

	for _, tc := range cases {
		out := RenderStars(styles, tc.score)
		if got := strings.Count(out, "★"); got != tc.filled {
			t.Errorf("score %d: got %d filled stars, want %d", tc.score, got, tc.filled)
		}
		if got := strings.Count(out, "☆"); got != maxStars-tc.filled {
			t.Errorf("score %d: got %d empty stars, want %d", tc.score, got, maxStars-tc.filled)
		}
	}
}

func TestRenderAverage(t *testing.T) {
	out := RenderAverage(NewStyles(LightTheme()), 4.2)
	if !strings.Contains(out, "4.2") {
		t.Fatalf("expected numeric value in %q", out)
	}
	if got := strings.Count(out, "★"); got != 4 {
		t.Fatalf("expected 4 filled stars for 4.2, got %d", got)
	}
}
