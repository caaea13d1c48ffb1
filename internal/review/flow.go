// Package review implements the review-submission flow: login gate, time
// window gate, per-item star ratings, satisfaction flag, comment, and the
// create-then-update submission sequence against the two independent
// sub-resources (food scores, menu comment).
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ssabab/internal/api"
	"ssabab/internal/kst"
	"ssabab/internal/logging"
)

// State is the flow's position in the submission lifecycle.
type State int

const (
	StateUnauthenticated State = iota
	StateChecking
	StateMenuLoading
	StateMenuReady
	StateRatingInProgress
	StateConfirmPending
	StateSubmitting
	StateSuccess
	StateWindowClosed // outside review hours; nothing is loaded
	// Terminal exits
	StateRedirectLogin // session could not be established
	StateRedirectHome  // menu not found for the date, or user cancelled
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "Unauthenticated"
	case StateChecking:
		return "Checking"
	case StateMenuLoading:
		return "MenuLoading"
	case StateMenuReady:
		return "MenuReady"
	case StateRatingInProgress:
		return "RatingInProgress"
	case StateConfirmPending:
		return "ConfirmPending"
	case StateSubmitting:
		return "Submitting"
	case StateSuccess:
		return "Success"
	case StateWindowClosed:
		return "WindowClosed"
	case StateRedirectLogin:
		return "RedirectLogin"
	case StateRedirectHome:
		return "RedirectHome"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Validation and gate errors surfaced to the user.
var (
	ErrSatisfactionRequired = errors.New("please choose whether you were satisfied with the meal")
	ErrWindowClosed         = errors.New("review hours are 12:00-23:00 (KST), today only")
	ErrNotConfirmed         = errors.New("submission has not been confirmed")
)

// Submitter issues the review sub-resource calls. *api.Client satisfies
// this.
type Submitter interface {
	CreateFoodReview(ctx context.Context, req api.FoodReviewRequest) api.Outcome
	UpdateFoodReview(ctx context.Context, req api.FoodReviewRequest) error
	CreateMenuReview(ctx context.Context, req api.MenuReviewRequest) api.Outcome
	UpdateMenuReview(ctx context.Context, req api.MenuReviewRequest) error
	TryRefresh(ctx context.Context) error
}

// MenuSource loads menus by date. *menu.Cache satisfies this.
type MenuSource interface {
	Get(ctx context.Context, date string) (*api.MenusResponse, error)
}

// SessionState exposes the authentication probe. *session.Store satisfies
// this.
type SessionState interface {
	IsAuthenticated() bool
}

// Markers writes the advisory reviewed-today marker. *store.Local satisfies
// this.
type Markers interface {
	MarkReviewed(date string, menuID int64) error
}

// Config carries the flow's constructor-injected dependencies. No hidden
// module-level state.
type Config struct {
	Session   SessionState
	Menus     MenuSource
	Submitter Submitter
	Markers   Markers

	// Now is the clock used for the time-window gate. Defaults to kst.Now.
	Now func() time.Time

	// SubmitTimeout bounds the whole two-call submission so a hung request
	// cannot leave the flow in Submitting forever.
	SubmitTimeout time.Duration
}

// Flow is the review-submission state machine for one (date, menu) pair.
type Flow struct {
	cfg    Config
	date   string
	menuID int64

	state State
	menu  *api.Menu
	draft *Draft
	err   error // last inline error, draft intact
}

// NewFlow creates a flow for the given date (YYYY-MM-DD) and menu id.
func NewFlow(cfg Config, date string, menuID int64) *Flow {
	if cfg.Now == nil {
		cfg.Now = kst.Now
	}
	if cfg.SubmitTimeout == 0 {
		cfg.SubmitTimeout = 30 * time.Second
	}
	return &Flow{
		cfg:    cfg,
		date:   date,
		menuID: menuID,
		state:  StateUnauthenticated,
	}
}

// State returns the current state.
func (f *Flow) State() State { return f.state }

// Err returns the last inline error, if any.
func (f *Flow) Err() error { return f.err }

// Menu returns the loaded menu (nil before MenuReady).
func (f *Flow) Menu() *api.Menu { return f.menu }

// Draft returns the draft review (nil before MenuReady and after
// success/cancel).
func (f *Flow) Draft() *Draft { return f.draft }

// Date returns the date under review.
func (f *Flow) Date() string { return f.date }

// Start runs the mount sequence: authentication probe (with one silent
// refresh attempt), window gate, then menu load. Ends in MenuReady,
// WindowClosed, RedirectLogin, or RedirectHome.
func (f *Flow) Start(ctx context.Context) State {
	f.transition(StateChecking)

	if !f.cfg.Session.IsAuthenticated() {
		// Silent refresh before giving up; its failure is not surfaced.
		if err := f.cfg.Submitter.TryRefresh(ctx); err != nil {
			logging.ReviewDebug("silent refresh failed: %v", err)
		}
	}
	if !f.cfg.Session.IsAuthenticated() {
		f.transition(StateRedirectLogin)
		return f.state
	}

	// The window gate precedes data loading: while closed, nothing is
	// fetched and only the notice renders.
	if !f.WindowOpen() {
		f.transition(StateWindowClosed)
		return f.state
	}

	f.transition(StateMenuLoading)
	menus, err := f.cfg.Menus.Get(ctx, f.date)
	if err != nil {
		f.err = err
		f.transition(StateRedirectHome)
		return f.state
	}

	m := menus.ByID(f.menuID)
	if m == nil {
		f.err = fmt.Errorf("menu %d is not published for %s", f.menuID, f.date)
		f.transition(StateRedirectHome)
		return f.state
	}

	f.menu = m
	f.draft = NewDraft(m)
	f.transition(StateMenuReady)
	return f.state
}

// WindowOpen evaluates the hard time gate: the review surface is usable only
// when the KST clock is within review hours AND the flow's date is today in
// KST. Re-evaluated on every render.
func (f *Flow) WindowOpen() bool {
	now := f.cfg.Now()
	return kst.InReviewWindow(now) && kst.IsToday(f.date, now)
}

// Rate records a star rating and moves the flow into RatingInProgress.
func (f *Flow) Rate(foodID int64, score int) error {
	if err := f.requireEditable(); err != nil {
		return err
	}
	if err := f.draft.Rate(foodID, score); err != nil {
		return err
	}
	f.transition(StateRatingInProgress)
	return nil
}

// SetSatisfied records the satisfaction flag.
func (f *Flow) SetSatisfied(v bool) error {
	if err := f.requireEditable(); err != nil {
		return err
	}
	f.draft.SetSatisfied(v)
	f.transition(StateRatingInProgress)
	return nil
}

// SetComment records the free-text comment.
func (f *Flow) SetComment(s string) error {
	if err := f.requireEditable(); err != nil {
		return err
	}
	f.draft.SetComment(s)
	f.transition(StateRatingInProgress)
	return nil
}

// RequestSubmit validates the draft and moves to ConfirmPending.
// A nil satisfaction flag blocks with ErrSatisfactionRequired; zero-rated
// items do NOT block, the confirmation prompt just switches to its warning
// variant (see WarnZeroRating).
func (f *Flow) RequestSubmit() error {
	if err := f.requireEditable(); err != nil {
		return err
	}
	if !f.WindowOpen() {
		return ErrWindowClosed
	}
	if f.draft.Satisfied() == nil {
		return ErrSatisfactionRequired
	}
	f.transition(StateConfirmPending)
	return nil
}

// WarnZeroRating reports whether the confirmation prompt should carry the
// 0-point warning.
func (f *Flow) WarnZeroRating() bool {
	return f.draft != nil && f.draft.HasZeroRating()
}

// CancelConfirm backs out of the confirmation dialog, keeping the draft.
func (f *Flow) CancelConfirm() {
	if f.state == StateConfirmPending {
		f.transition(StateRatingInProgress)
	}
}

// Cancel discards the draft and exits the flow. Allowed at any point before
// Submitting.
func (f *Flow) Cancel() error {
	if f.state == StateSubmitting {
		return fmt.Errorf("cannot cancel while submitting")
	}
	f.draft = nil
	f.transition(StateRedirectHome)
	return nil
}

// Submit runs the confirmed submission: one create-or-update cycle for the
// food scores, then - only after that succeeds - one for the menu comment.
// On any non-conflict failure the draft survives so the user can retry; on
// success the advisory reviewed marker is written and the draft destroyed.
func (f *Flow) Submit(ctx context.Context) error {
	if f.state != StateConfirmPending {
		return ErrNotConfirmed
	}
	f.transition(StateSubmitting)
	f.err = nil

	ctx, cancel := context.WithTimeout(ctx, f.cfg.SubmitTimeout)
	defer cancel()

	foodReq := f.draft.FoodRequest()
	if err := f.submitFood(ctx, foodReq); err != nil {
		f.err = err
		f.transition(StateRatingInProgress)
		return err
	}

	if err := f.submitMenu(ctx, f.draft.MenuRequest()); err != nil {
		f.err = err
		f.transition(StateRatingInProgress)
		return err
	}

	// Advisory marker only; the server is the source of truth, so a marker
	// write failure must not fail the submission.
	if f.cfg.Markers != nil {
		if err := f.cfg.Markers.MarkReviewed(f.date, f.menuID); err != nil {
			logging.Review("marker write failed: %v", err)
		}
	}

	f.draft = nil
	f.transition(StateSuccess)
	return nil
}

// submitFood runs the create-or-update cycle for the food-scores
// sub-resource. Exactly one create and at most one update are issued.
func (f *Flow) submitFood(ctx context.Context, req api.FoodReviewRequest) error {
	outcome := f.cfg.Submitter.CreateFoodReview(ctx, req)
	switch outcome.Kind {
	case api.Created:
		return nil
	case api.Conflict:
		logging.ReviewDebug("food review exists, retrying as update")
		if err := f.cfg.Submitter.UpdateFoodReview(ctx, req); err != nil {
			return fmt.Errorf("update food review: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("create food review: %w", outcome.Err)
	}
}

// submitMenu is the identical cycle for the menu-comment sub-resource.
func (f *Flow) submitMenu(ctx context.Context, req api.MenuReviewRequest) error {
	outcome := f.cfg.Submitter.CreateMenuReview(ctx, req)
	switch outcome.Kind {
	case api.Created:
		return nil
	case api.Conflict:
		logging.ReviewDebug("menu review exists, retrying as update")
		if err := f.cfg.Submitter.UpdateMenuReview(ctx, req); err != nil {
			return fmt.Errorf("update menu review: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("create menu review: %w", outcome.Err)
	}
}

// requireEditable guards edit operations to the rating states.
func (f *Flow) requireEditable() error {
	switch f.state {
	case StateMenuReady, StateRatingInProgress:
		return nil
	default:
		return fmt.Errorf("cannot edit draft in state %s", f.state)
	}
}

func (f *Flow) transition(to State) {
	if f.state == to {
		return
	}
	logging.ReviewDebug("transition %s -> %s", f.state, to)
	f.state = to
}
