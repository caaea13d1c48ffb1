package review

import (
	"fmt"

	"ssabab/internal/api"
)

// Draft is the ephemeral, client-only review state for one menu. It exists
// only between page mount and a successful submit or explicit cancel.
type Draft struct {
	MenuID      int64
	foods       []api.Food
	itemRatings map[int64]int
	satisfied   *bool
	comment     string
}

// NewDraft creates an empty draft for a menu: every dish starts unrated (0)
// and the satisfaction flag unset.
func NewDraft(menu *api.Menu) *Draft {
	ratings := make(map[int64]int, len(menu.Foods))
	for _, f := range menu.Foods {
		ratings[f.FoodID] = 0
	}
	return &Draft{
		MenuID:      menu.MenuID,
		foods:       menu.Foods,
		itemRatings: ratings,
	}
}

// Rate sets the star rating for a dish. Scores run 0-5; 0 is a legitimate
// rating (the user is warned at confirmation, not blocked).
func (d *Draft) Rate(foodID int64, score int) error {
	if score < 0 || score > 5 {
		return fmt.Errorf("score %d out of range 0-5", score)
	}
	if _, ok := d.itemRatings[foodID]; !ok {
		return fmt.Errorf("food %d is not on menu %d", foodID, d.MenuID)
	}
	d.itemRatings[foodID] = score
	return nil
}

// Rating returns the current score for a dish.
func (d *Draft) Rating(foodID int64) int {
	return d.itemRatings[foodID]
}

// SetSatisfied records the overall satisfaction flag.
func (d *Draft) SetSatisfied(v bool) {
	d.satisfied = &v
}

// Satisfied returns the satisfaction flag, nil while unset. A submission
// requires it to be non-nil.
func (d *Draft) Satisfied() *bool {
	return d.satisfied
}

// SetComment records the free-text comment.
func (d *Draft) SetComment(s string) {
	d.comment = s
}

// Comment returns the free-text comment.
func (d *Draft) Comment() string {
	return d.comment
}

// HasZeroRating reports whether any dish is still at 0. Triggers the warning
// variant of the confirmation prompt.
func (d *Draft) HasZeroRating() bool {
	for _, score := range d.itemRatings {
		if score == 0 {
			return true
		}
	}
	return false
}

// RatedCount returns how many dishes carry a non-zero score.
func (d *Draft) RatedCount() int {
	n := 0
	for _, score := range d.itemRatings {
		if score > 0 {
			n++
		}
	}
	return n
}

// Foods returns the menu's dishes in published order.
func (d *Draft) Foods() []api.Food {
	return d.foods
}

// FoodRequest builds the food-level submission payload, entries in the
// menu's published order.
func (d *Draft) FoodRequest() api.FoodReviewRequest {
	reviews := make([]api.FoodReviewEntry, 0, len(d.foods))
	for _, f := range d.foods {
		reviews = append(reviews, api.FoodReviewEntry{
			FoodID:    f.FoodID,
			FoodScore: d.itemRatings[f.FoodID],
		})
	}
	return api.FoodReviewRequest{MenuID: d.MenuID, Reviews: reviews}
}

// MenuRequest builds the menu-level submission payload. The regret flag is
// the inverse of satisfaction.
func (d *Draft) MenuRequest() api.MenuReviewRequest {
	regret := d.satisfied != nil && !*d.satisfied
	return api.MenuReviewRequest{
		MenuID:      d.MenuID,
		MenuRegret:  regret,
		MenuComment: d.comment,
	}
}
