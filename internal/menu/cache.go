// Package menu caches fetched daily menus so navigating between views does
// not refetch them, and tracks the user's current day/week selection.
package menu

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ssabab/internal/api"
	"ssabab/internal/kst"
	"ssabab/internal/logging"
)

// Fetcher fetches the two published menus for a date. *api.Client satisfies
// this.
type Fetcher interface {
	FetchMenus(ctx context.Context, date string) (*api.MenusResponse, error)
}

// Cache is a constructor-injected state container; there is no package-level
// instance.
type Cache struct {
	fetcher Fetcher

	mu           sync.Mutex
	byDate       map[string]*api.MenusResponse
	selectedDate string

	// Concurrent fetches for the same date are coalesced into one network
	// request; late callers share the first result.
	group singleflight.Group
}

// NewCache creates a menu cache backed by the given fetcher.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		byDate:  make(map[string]*api.MenusResponse),
	}
}

// Get returns the menus for a date, fetching on a cache miss.
func (c *Cache) Get(ctx context.Context, date string) (*api.MenusResponse, error) {
	c.mu.Lock()
	if cached, ok := c.byDate[date]; ok {
		c.mu.Unlock()
		logging.MenuDebug("cache hit for %s", date)
		return cached, nil
	}
	c.mu.Unlock()

	result, err, shared := c.group.Do(date, func() (interface{}, error) {
		// The first caller's cancellation must not fail the coalesced
		// waiters sharing this fetch.
		menus, err := c.fetcher.FetchMenus(context.WithoutCancel(ctx), date)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.byDate[date] = menus
		c.mu.Unlock()
		return menus, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logging.MenuDebug("coalesced concurrent fetch for %s", date)
	}
	return result.(*api.MenusResponse), nil
}

// FetchWeek fetches the five weekdays of the week containing date.
// Per-day failures are tolerated (logged and skipped); the returned map holds
// whatever loaded. The server remains authoritative for anything missing.
func (c *Cache) FetchWeek(ctx context.Context, date string) map[string]*api.MenusResponse {
	week := make(map[string]*api.MenusResponse)
	for _, d := range WeekdaysOf(date) {
		menus, err := c.Get(ctx, d)
		if err != nil {
			logging.Menu("weekly fetch: skipping %s: %v", d, err)
			continue
		}
		week[d] = menus
	}
	return week
}

// Select records the user's current day selection.
func (c *Cache) Select(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedDate = date
}

// Selected returns the current day selection, defaulting to today (KST).
func (c *Cache) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedDate == "" {
		return kst.Today(kst.Now())
	}
	return c.selectedDate
}

// Invalidate drops a cached date, forcing the next Get to refetch.
func (c *Cache) Invalidate(date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byDate, date)
}

// WeekdaysOf returns the Monday..Friday dates of the week containing date
// (KST). A malformed date yields the current week.
func WeekdaysOf(date string) []string {
	t, err := time.ParseInLocation(kst.DateFormat, date, kst.Location)
	if err != nil {
		t = kst.Now()
	}

	// Walk back to Monday.
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)

	days := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		days = append(days, monday.AddDate(0, 0, i).Format(kst.DateFormat))
	}
	return days
}
