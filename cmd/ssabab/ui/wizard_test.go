package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ssabab/internal/api"
	"ssabab/internal/kst"
	"ssabab/internal/review"
)

type wizSession struct{ authed bool }

func (s *wizSession) IsAuthenticated() bool { return s.authed }

type wizMenus struct {
	resp  *api.MenusResponse
	calls int
}

func (m *wizMenus) Get(ctx context.Context, date string) (*api.MenusResponse, error) {
	m.calls++
	return m.resp, nil
}

type wizSubmitter struct {
	foodCreates int
	menuCreates int
}

func (s *wizSubmitter) CreateFoodReview(ctx context.Context, req api.FoodReviewRequest) api.Outcome {
	s.foodCreates++
	return api.Outcome{Kind: api.Created}
}
func (s *wizSubmitter) UpdateFoodReview(ctx context.Context, req api.FoodReviewRequest) error {
	return nil
}
func (s *wizSubmitter) CreateMenuReview(ctx context.Context, req api.MenuReviewRequest) api.Outcome {
	s.menuCreates++
	return api.Outcome{Kind: api.Created}
}
func (s *wizSubmitter) UpdateMenuReview(ctx context.Context, req api.MenuReviewRequest) error {
	return nil
}
func (s *wizSubmitter) TryRefresh(ctx context.Context) error { return nil }

func newTestWizard(t *testing.T, sub *wizSubmitter) WizardModel {
	t.Helper()
	flow := review.NewFlow(review.Config{
		Session: &wizSession{authed: true},
		Menus: &wizMenus{resp: &api.MenusResponse{
			Menu1: &api.Menu{MenuID: 42, Foods: []api.Food{
				{FoodID: 1, FoodName: "Rice"},
				{FoodID: 2, FoodName: "Soup"},
			}},
		}},
		Submitter: sub,
		Now: func() time.Time {
			return time.Date(2024, 6, 10, 14, 0, 0, 0, kst.Location)
		},
	}, "2024-06-10", 42)

	m := NewWizard(flow, NewStyles(LightTheme()))

	// Run the mount sequence synchronously.
	msg := m.startCmd()()
	next, _ := m.Update(msg)
	return next.(WizardModel)
}

func press(t *testing.T, m WizardModel, keys ...string) WizardModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(WizardModel)
	}
	return m
}

func TestWizardRendersMenu(t *testing.T) {
	m := newTestWizard(t, &wizSubmitter{})

	view := m.View()
	for _, want := range []string{"Rice", "Soup", "Satisfied?", "Submit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestWizardDigitRatesFocusedDish(t *testing.T) {
	m := newTestWizard(t, &wizSubmitter{})

	m = press(t, m, "5")
	if got := m.flow.Draft().Rating(1); got != 5 {
		t.Fatalf("expected Rice rated 5, got %d", got)
	}

	m = press(t, m, "down", "3")
	if got := m.flow.Draft().Rating(2); got != 3 {
		t.Fatalf("expected Soup rated 3, got %d", got)
	}
}

func TestWizardArrowAdjustsRating(t *testing.T) {
	m := newTestWizard(t, &wizSubmitter{})

	m = press(t, m, "right", "right", "left")
	if got := m.flow.Draft().Rating(1); got != 1 {
		t.Fatalf("expected rating 1 after right,right,left, got %d", got)
	}
}

func TestWizardSubmitBlockedWithoutSatisfaction(t *testing.T) {
	m := newTestWizard(t, &wizSubmitter{})

	// Rate both dishes, skip satisfaction, go to submit.
	m = press(t, m, "4", "down", "4", "down", "down", "down", "enter")

	if m.flow.State() == review.StateConfirmPending {
		t.Fatal("submit should be blocked without a satisfaction choice")
	}
	if !strings.Contains(m.View(), "satisfied") {
		t.Fatalf("expected satisfaction error in view:\n%s", m.View())
	}
}

func TestWizardConfirmWarnsOnZeroRatings(t *testing.T) {
	m := newTestWizard(t, &wizSubmitter{})

	// Rate only one dish, choose satisfied, request submit.
	m = press(t, m, "4", "down", "down", "y", "down", "down", "enter")

	if m.flow.State() != review.StateConfirmPending {
		t.Fatalf("expected confirmation dialog, state %s", m.flow.State())
	}
	if !strings.Contains(m.View(), "0 points") {
		t.Fatalf("expected zero-rating warning in confirm dialog:\n%s", m.View())
	}
}

func TestWizardFullSubmission(t *testing.T) {
	sub := &wizSubmitter{}
	m := newTestWizard(t, sub)

	m = press(t, m, "5", "down", "4", "down", "y", "down", "down", "enter")
	if m.flow.State() != review.StateConfirmPending {
		t.Fatalf("expected confirmation dialog, state %s", m.flow.State())
	}

	// Confirm; run the submit command synchronously.
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m = next.(WizardModel)
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	m = drainCmd(t, m, cmd)

	if m.flow.State() != review.StateSuccess {
		t.Fatalf("expected success, state %s (err %v)", m.flow.State(), m.flow.Err())
	}
	if sub.foodCreates != 1 || sub.menuCreates != 1 {
		t.Fatalf("expected one food and one menu create, got %d/%d",
			sub.foodCreates, sub.menuCreates)
	}
	if m.SubmittedItems != 2 || !m.SubmittedSatisfied {
		t.Fatalf("expected submission capture items=2 satisfied=true, got %d/%v",
			m.SubmittedItems, m.SubmittedSatisfied)
	}
}

func TestWizardCommentEditing(t *testing.T) {
	m := newTestWizard(t, &wizSubmitter{})

	// Move to the comment row and open the editor.
	m = press(t, m, "down", "down", "down", "enter")
	if !m.editingComment {
		t.Fatal("expected comment editor to be active")
	}

	m = press(t, m, "tasty", "esc")
	if m.editingComment {
		t.Fatal("expected comment editor to be closed")
	}
	if got := m.flow.Draft().Comment(); got != "tasty" {
		t.Fatalf("expected comment %q, got %q", "tasty", got)
	}
}

func TestWizardQuitWithRatingsAsksFirst(t *testing.T) {
	m := newTestWizard(t, &wizSubmitter{})

	m = press(t, m, "4", "q")
	if !m.confirmQuit {
		t.Fatal("expected quit confirmation when ratings exist")
	}
	if !strings.Contains(m.View(), "Discard") {
		t.Fatalf("expected discard prompt in view:\n%s", m.View())
	}

	m = press(t, m, "n")
	if m.confirmQuit {
		t.Fatal("expected quit confirmation dismissed")
	}
	if m.flow.Draft() == nil || m.flow.Draft().Rating(1) != 4 {
		t.Fatal("expected draft kept after dismissing quit confirmation")
	}
}

func TestWizardClosedWindowNotice(t *testing.T) {
	menus := &wizMenus{resp: &api.MenusResponse{
		Menu1: &api.Menu{MenuID: 42, Foods: []api.Food{{FoodID: 1, FoodName: "Rice"}}},
	}}
	flow := review.NewFlow(review.Config{
		Session:   &wizSession{authed: true},
		Menus:     menus,
		Submitter: &wizSubmitter{},
		Now: func() time.Time {
			return time.Date(2024, 6, 10, 9, 0, 0, 0, kst.Location)
		},
	}, "2024-06-10", 42)

	m := NewWizard(flow, NewStyles(LightTheme()))
	next, _ := m.Update(m.startCmd()())
	m = next.(WizardModel)

	if m.FinalState() != review.StateWindowClosed {
		t.Fatalf("expected WindowClosed, state %s", m.FinalState())
	}
	if menus.calls != 0 {
		t.Fatalf("expected no menu fetch while the window is closed, got %d", menus.calls)
	}
	if !strings.Contains(m.View(), "12:00-23:00") {
		t.Fatalf("expected closed-window notice in view:\n%s", m.View())
	}
}

// drainCmd runs batched commands until the queue empties, feeding each
// resulting message back into the model.
func drainCmd(t *testing.T, m WizardModel, cmd tea.Cmd) WizardModel {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if _, ok := msg.(spinner.TickMsg); ok {
			// Ticks reschedule themselves forever.
			continue
		}
		next, nextCmd := m.Update(msg)
		m = next.(WizardModel)
		if nextCmd != nil {
			queue = append(queue, nextCmd)
		}
	}
	return m
}
