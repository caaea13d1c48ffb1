package ui

import (
	"fmt"
	"strings"
)

const maxStars = 5

// RenderStars renders a 0-5 score as a star row, filled stars in the accent
// color and the remainder dimmed.
func RenderStars(styles Styles, score int) string {
	if score < 0 {
		score = 0
	}
	if score > maxStars {
		score = maxStars
	}
	filled := strings.Repeat("★", score)
	empty := strings.Repeat("☆", maxStars-score)
	return styles.Star.Render(filled) + styles.StarDim.Render(empty)
}

// RenderAverage renders a fractional score (e.g. from analytics) as stars
// plus the numeric value.
func RenderAverage(styles Styles, avg float64) string {
	rounded := int(avg + 0.5)
	return fmt.Sprintf("%s %.1f", RenderStars(styles, rounded), avg)
}
