package api

import "fmt"

// Wire types for the ssabab backend contract. Every response is decoded into
// one of these and validated at the client boundary so malformed shapes fail
// fast instead of leaking zero values into UI state.

// Food is a single dish on a menu.
type Food struct {
	FoodID   int64  `json:"foodId"`
	FoodName string `json:"foodName"`
}

// Menu is one of the two published menus for a date. Immutable once
// published.
type Menu struct {
	MenuID int64  `json:"menuId"`
	Foods  []Food `json:"foods"`
}

func (m *Menu) validate() error {
	if m.MenuID <= 0 {
		return fmt.Errorf("menu has no menuId")
	}
	if len(m.Foods) == 0 {
		return fmt.Errorf("menu %d has no foods", m.MenuID)
	}
	for _, f := range m.Foods {
		if f.FoodID <= 0 || f.FoodName == "" {
			return fmt.Errorf("menu %d has malformed food entry %+v", m.MenuID, f)
		}
	}
	return nil
}

// MenusResponse is the payload of GET /menus?date=YYYY-MM-DD. Two menus
// (A/B) exist per calendar date.
type MenusResponse struct {
	Menu1 *Menu `json:"menu1"`
	Menu2 *Menu `json:"menu2"`
}

// Validate implements the response-schema check at the client boundary.
func (r *MenusResponse) Validate() error {
	if r.Menu1 == nil || r.Menu2 == nil {
		return fmt.Errorf("expected two menus, got menu1=%v menu2=%v", r.Menu1 != nil, r.Menu2 != nil)
	}
	if err := r.Menu1.validate(); err != nil {
		return err
	}
	return r.Menu2.validate()
}

// ByID returns the menu matching id, or nil if neither matches.
func (r *MenusResponse) ByID(id int64) *Menu {
	if r.Menu1 != nil && r.Menu1.MenuID == id {
		return r.Menu1
	}
	if r.Menu2 != nil && r.Menu2.MenuID == id {
		return r.Menu2
	}
	return nil
}

// FoodReviewEntry is one rated dish.
type FoodReviewEntry struct {
	FoodID    int64 `json:"foodId"`
	FoodScore int   `json:"foodScore"`
}

// FoodReviewRequest is the body of POST|PUT /reviews/food.
type FoodReviewRequest struct {
	MenuID  int64             `json:"menuId"`
	Reviews []FoodReviewEntry `json:"reviews"`
}

// MenuReviewRequest is the body of POST|PUT /reviews/menu.
type MenuReviewRequest struct {
	MenuID      int64  `json:"menuId"`
	MenuRegret  bool   `json:"menuRegret"`
	MenuComment string `json:"menuComment"`
}

// refreshRequest is the body of POST /account/refresh.
type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// refreshResponse is its payload.
type refreshResponse struct {
	Token struct {
		AccessToken string `json:"accessToken"`
	} `json:"token"`
}

func (r *refreshResponse) Validate() error {
	if r.Token.AccessToken == "" {
		return fmt.Errorf("refresh response has no access token")
	}
	return nil
}

// Friend is one entry in the social friends list.
type Friend struct {
	FriendName string `json:"friendName"`
}

// FriendsResponse is the payload of GET /friends.
type FriendsResponse struct {
	Friends []Friend `json:"friends"`
}

// Validate checks the friends list shape.
func (r *FriendsResponse) Validate() error {
	for _, f := range r.Friends {
		if f.FriendName == "" {
			return fmt.Errorf("friends list contains an unnamed entry")
		}
	}
	return nil
}

// addFriendRequest is the body of POST /friends.
type addFriendRequest struct {
	FriendName string `json:"friendName"`
}

// FoodScoreSummary is one dish in the personal analytics view.
type FoodScoreSummary struct {
	FoodName  string  `json:"foodName"`
	FoodScore float64 `json:"foodScore"`
}

// PersonalAnalytics is the payload of GET /analysis/personal.
type PersonalAnalytics struct {
	AverageScore float64            `json:"averageScore"`
	ReviewCount  int                `json:"reviewCount"`
	BestFoods    []FoodScoreSummary `json:"bestFoods"`
	WorstFoods   []FoodScoreSummary `json:"worstFoods"`
}

// Validate checks the personal analytics shape.
func (r *PersonalAnalytics) Validate() error {
	if r.ReviewCount < 0 {
		return fmt.Errorf("negative review count")
	}
	return nil
}

// MonthlyAnalytics is the payload of GET /analysis/monthly: the aggregate
// view across all users for the current month.
type MonthlyAnalytics struct {
	Month        string             `json:"month"`
	AverageScore float64            `json:"averageScore"`
	TotalReviews int                `json:"totalReviews"`
	TopFoods     []FoodScoreSummary `json:"topFoods"`
}

// Validate checks the monthly analytics shape.
func (r *MonthlyAnalytics) Validate() error {
	if r.Month == "" {
		return fmt.Errorf("monthly analytics has no month")
	}
	return nil
}
