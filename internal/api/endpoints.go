package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// FetchMenus fetches the two published menus for a date (YYYY-MM-DD).
func (c *Client) FetchMenus(ctx context.Context, date string) (*MenusResponse, error) {
	var out MenusResponse
	if err := c.do(ctx, http.MethodGet, "/menus?date="+url.QueryEscape(date), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateFoodReview attempts to create the food-level scores sub-resource.
// The tagged outcome lets callers branch on duplicate-create without
// inspecting errors.
func (c *Client) CreateFoodReview(ctx context.Context, req FoodReviewRequest) Outcome {
	return classify(c.do(ctx, http.MethodPost, "/reviews/food", req, nil))
}

// UpdateFoodReview overwrites an existing food-level scores sub-resource.
func (c *Client) UpdateFoodReview(ctx context.Context, req FoodReviewRequest) error {
	return c.do(ctx, http.MethodPut, "/reviews/food", req, nil)
}

// CreateMenuReview attempts to create the menu-level comment/regret
// sub-resource.
func (c *Client) CreateMenuReview(ctx context.Context, req MenuReviewRequest) Outcome {
	return classify(c.do(ctx, http.MethodPost, "/reviews/menu", req, nil))
}

// UpdateMenuReview overwrites an existing menu-level comment sub-resource.
func (c *Client) UpdateMenuReview(ctx context.Context, req MenuReviewRequest) error {
	return c.do(ctx, http.MethodPut, "/reviews/menu", req, nil)
}

// Friends returns the user's friends list.
func (c *Client) Friends(ctx context.Context) (*FriendsResponse, error) {
	var out FriendsResponse
	if err := c.do(ctx, http.MethodGet, "/friends", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddFriend adds a friend by name.
func (c *Client) AddFriend(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPost, "/friends", addFriendRequest{FriendName: name}, nil)
}

// RemoveFriend removes a friend by name.
func (c *Client) RemoveFriend(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/friends/"+url.PathEscape(name), nil, nil)
}

// PersonalAnalysis returns the user's personal rating summary.
func (c *Client) PersonalAnalysis(ctx context.Context) (*PersonalAnalytics, error) {
	var out PersonalAnalytics
	if err := c.do(ctx, http.MethodGet, "/analysis/personal", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MonthlyAnalysis returns the aggregate summary for the current month.
func (c *Client) MonthlyAnalysis(ctx context.Context) (*MonthlyAnalytics, error) {
	var out MonthlyAnalytics
	if err := c.do(ctx, http.MethodGet, "/analysis/monthly", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// classify turns a create-call error into the tagged outcome.
func classify(err error) Outcome {
	if err == nil {
		return Outcome{Kind: Created}
	}
	var se *StatusError
	if errors.As(err, &se) && isConflictStatus(se.StatusCode) {
		return Outcome{Kind: Conflict}
	}
	return Outcome{Kind: Failed, Err: err}
}
