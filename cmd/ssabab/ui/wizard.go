package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"ssabab/internal/api"
	"ssabab/internal/review"
)

// focusArea is the row the wizard cursor sits on.
type focusArea int

const (
	focusFoods focusArea = iota
	focusSatisfaction
	focusComment
	focusSubmit
)

// Messages produced by the wizard's async commands.
type startResultMsg struct{ state review.State }
type submitResultMsg struct{ err error }

// WizardModel is the interactive review-submission wizard. It is a thin
// rendering layer over review.Flow; every gate and transition lives in the
// flow, the model only translates keys.
type WizardModel struct {
	flow   *review.Flow
	styles Styles

	textarea textarea.Model
	spinner  spinner.Model

	focus          focusArea
	foodCursor     int
	editingComment bool
	confirmQuit    bool

	// Captured at submit time so the caller can log the submission after
	// the flow destroys the draft.
	SubmittedItems     int
	SubmittedSatisfied bool

	inlineErr error
	width     int
	height    int
}

// NewWizard creates the wizard for an already-constructed flow.
func NewWizard(flow *review.Flow, styles Styles) WizardModel {
	ta := textarea.New()
	ta.Placeholder = "How was lunch? (optional)"
	ta.SetHeight(3)
	ta.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return WizardModel{
		flow:     flow,
		styles:   styles,
		textarea: ta,
		spinner:  sp,
	}
}

// FinalState exposes the flow's terminal state to the caller.
func (m WizardModel) FinalState() review.State {
	return m.flow.State()
}

// Init starts the mount sequence.
func (m WizardModel) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), m.spinner.Tick)
}

func (m WizardModel) startCmd() tea.Cmd {
	return func() tea.Msg {
		return startResultMsg{state: m.flow.Start(context.Background())}
	}
}

func (m WizardModel) submitCmd() tea.Cmd {
	return func() tea.Msg {
		return submitResultMsg{err: m.flow.Submit(context.Background())}
	}
}

// Update handles messages.
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(min(msg.Width-6, 60))
		return m, nil

	case startResultMsg:
		switch msg.state {
		case review.StateRedirectLogin, review.StateRedirectHome:
			return m, tea.Quit
		}
		return m, nil

	case submitResultMsg:
		if msg.err != nil {
			m.inlineErr = msg.err
			return m, nil
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.editingComment {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m WizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		_ = m.flow.Cancel()
		return m, tea.Quit
	}

	switch m.flow.State() {
	case review.StateSuccess, review.StateWindowClosed:
		return m, tea.Quit

	case review.StateSubmitting:
		// Submission in flight, only ctrl+c (handled above) gets through.
		return m, nil

	case review.StateConfirmPending:
		return m.handleConfirmKey(msg)

	case review.StateMenuReady, review.StateRatingInProgress:
		if m.confirmQuit {
			return m.handleQuitConfirmKey(msg)
		}
		if m.editingComment {
			return m.handleCommentKey(msg)
		}
		// Hard gate: outside the review window the form is inert.
		if !m.flow.WindowOpen() {
			if msg.String() == "q" {
				_ = m.flow.Cancel()
				return m, tea.Quit
			}
			return m, nil
		}
		return m.handleRatingKey(msg)
	}

	return m, nil
}

func (m WizardModel) handleQuitConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		_ = m.flow.Cancel()
		return m, tea.Quit
	case "n", "esc":
		m.confirmQuit = false
	}
	return m, nil
}

func (m WizardModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		draft := m.flow.Draft()
		m.SubmittedItems = draft.RatedCount()
		if sat := draft.Satisfied(); sat != nil {
			m.SubmittedSatisfied = *sat
		}
		return m, tea.Batch(m.submitCmd(), m.spinner.Tick)
	case "n", "esc":
		m.flow.CancelConfirm()
		return m, nil
	}
	return m, nil
}

func (m WizardModel) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.editingComment = false
		m.textarea.Blur()
		m.inlineErr = m.flow.SetComment(m.textarea.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m WizardModel) handleRatingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	foods := m.flow.Draft().Foods()

	switch msg.String() {
	case "q":
		// Discarding actual ratings deserves a second look.
		if m.flow.Draft().RatedCount() > 0 {
			m.confirmQuit = true
			return m, nil
		}
		_ = m.flow.Cancel()
		return m, tea.Quit

	case "up", "k":
		m.moveFocus(-1, len(foods))
		return m, nil

	case "down", "j", "tab":
		m.moveFocus(1, len(foods))
		return m, nil

	case "left", "h":
		m.adjust(-1, foods)
		return m, nil

	case "right", "l":
		m.adjust(1, foods)
		return m, nil

	case "0", "1", "2", "3", "4", "5":
		if m.focus == focusFoods && len(foods) > 0 {
			score := int(msg.String()[0] - '0')
			m.inlineErr = m.flow.Rate(foods[m.foodCursor].FoodID, score)
		}
		return m, nil

	case "y":
		if m.focus == focusSatisfaction {
			m.inlineErr = m.flow.SetSatisfied(true)
		}
		return m, nil

	case "n":
		if m.focus == focusSatisfaction {
			m.inlineErr = m.flow.SetSatisfied(false)
		}
		return m, nil

	case "enter":
		switch m.focus {
		case focusComment:
			m.editingComment = true
			m.textarea.SetValue(m.flow.Draft().Comment())
			return m, m.textarea.Focus()
		case focusSubmit:
			m.inlineErr = m.flow.RequestSubmit()
			return m, nil
		}
		return m, nil
	}

	return m, nil
}

// moveFocus walks the cursor through foods, satisfaction, comment, submit.
func (m *WizardModel) moveFocus(dir, foodCount int) {
	if m.focus == focusFoods {
		next := m.foodCursor + dir
		if next >= 0 && next < foodCount {
			m.foodCursor = next
			return
		}
		if next < 0 {
			return // already at top
		}
	}

	switch {
	case dir > 0 && m.focus < focusSubmit:
		m.focus++
	case dir < 0 && m.focus > focusFoods:
		m.focus--
		if m.focus == focusFoods {
			m.foodCursor = foodCount - 1
		}
	}
}

// adjust tweaks the focused control left/right: rating by one star, or the
// satisfaction toggle.
func (m *WizardModel) adjust(dir int, foods []api.Food) {
	switch m.focus {
	case focusFoods:
		if len(foods) == 0 {
			return
		}
		f := foods[m.foodCursor]
		score := m.flow.Draft().Rating(f.FoodID) + dir
		if score < 0 || score > 5 {
			return
		}
		m.inlineErr = m.flow.Rate(f.FoodID, score)
	case focusSatisfaction:
		m.inlineErr = m.flow.SetSatisfied(dir > 0)
	}
}

// View renders the wizard for the current flow state.
func (m WizardModel) View() string {
	s := m.styles

	switch m.flow.State() {
	case review.StateUnauthenticated, review.StateChecking, review.StateMenuLoading:
		return s.Content.Render(m.spinner.View() + " Loading menu...")

	case review.StateRedirectLogin:
		return s.Content.Render(s.Warning.Render("You are not logged in.") +
			"\n" + s.Muted.Render("Run `ssabab login` and try again."))

	case review.StateRedirectHome:
		msg := "Nothing to review."
		if err := m.flow.Err(); err != nil {
			msg = err.Error()
		}
		return s.Content.Render(s.Muted.Render(msg))

	case review.StateSubmitting:
		return s.Content.Render(m.spinner.View() + " Submitting review...")

	case review.StateWindowClosed:
		return s.Content.Render(s.Warning.Render(review.ErrWindowClosed.Error()) +
			"\n" + s.Muted.Render("Press any key to exit."))

	case review.StateSuccess:
		return s.Content.Render(s.Success.Render("Review submitted!") +
			"\n" + s.Muted.Render("Press any key to exit."))

	case review.StateConfirmPending:
		return m.viewConfirm()
	}

	return m.viewRating()
}

func (m WizardModel) viewConfirm() string {
	s := m.styles
	var sb strings.Builder

	if m.flow.WarnZeroRating() {
		sb.WriteString(s.Warning.Render("Some dishes are still at 0 points."))
		sb.WriteString("\n")
		sb.WriteString(s.Body.Render("Submit anyway?"))
	} else {
		sb.WriteString(s.Body.Render("Submit your review?"))
	}
	sb.WriteString("\n\n")
	sb.WriteString(s.Muted.Render("[y] submit   [n] keep editing"))

	return s.Content.Render(s.Dialog.Render(sb.String()))
}

func (m WizardModel) viewRating() string {
	s := m.styles
	draft := m.flow.Draft()
	if draft == nil {
		return s.Content.Render(m.spinner.View() + " Loading menu...")
	}

	var sb strings.Builder
	sb.WriteString(s.Header.Render("Lunch review · " + m.flow.Date()))
	sb.WriteString("\n\n")

	// The form never renders outside the window; only the notice does.
	if !m.flow.WindowOpen() {
		sb.WriteString(s.Warning.Render(review.ErrWindowClosed.Error()))
		sb.WriteString("\n\n")
		sb.WriteString(s.Footer.Render("q quit"))
		return s.Content.Render(sb.String())
	}

	if m.confirmQuit {
		dialog := s.Warning.Render("Discard your ratings?") + "\n\n" +
			s.Muted.Render("[y] discard   [n] keep editing")
		return s.Content.Render(s.Dialog.Render(dialog))
	}

	for i, f := range draft.Foods() {
		cursor := "  "
		name := s.Body.Render(f.FoodName)
		if m.focus == focusFoods && i == m.foodCursor {
			cursor = s.Cursor.Render("> ")
			name = s.Selected.Render(f.FoodName)
		}
		stars := RenderStars(s, draft.Rating(f.FoodID))
		sb.WriteString(fmt.Sprintf("%s%-24s %s\n", cursor, name, stars))
	}
	sb.WriteString("\n")

	sb.WriteString(m.renderSatisfactionRow(draft))
	sb.WriteString("\n")
	sb.WriteString(m.renderCommentRow(draft))
	sb.WriteString("\n")
	sb.WriteString(m.renderSubmitRow())

	if m.inlineErr != nil {
		sb.WriteString("\n\n")
		sb.WriteString(s.Error.Render(m.inlineErr.Error()))
	}

	sb.WriteString("\n\n")
	sb.WriteString(s.Footer.Render("↑/↓ move · ←/→ or 0-5 rate · enter select · q quit"))

	return s.Content.Render(sb.String())
}

func (m WizardModel) renderSatisfactionRow(draft *review.Draft) string {
	s := m.styles
	cursor := "  "
	label := s.Body.Render("Satisfied?")
	if m.focus == focusSatisfaction {
		cursor = s.Cursor.Render("> ")
		label = s.Selected.Render("Satisfied?")
	}

	yes, no := "yes", "no"
	if sat := draft.Satisfied(); sat != nil {
		if *sat {
			yes = s.Success.Render("[yes]")
			no = s.Muted.Render(" no ")
		} else {
			yes = s.Muted.Render(" yes ")
			no = s.Error.Render("[no]")
		}
	} else {
		yes = s.Muted.Render(" yes ")
		no = s.Muted.Render(" no ")
	}
	return fmt.Sprintf("%s%-24s %s / %s", cursor, label, yes, no)
}

func (m WizardModel) renderCommentRow(draft *review.Draft) string {
	s := m.styles
	cursor := "  "
	label := s.Body.Render("Comment")
	if m.focus == focusComment {
		cursor = s.Cursor.Render("> ")
		label = s.Selected.Render("Comment")
	}

	if m.editingComment {
		return fmt.Sprintf("%s%s\n%s\n%s", cursor, label,
			m.textarea.View(), s.Muted.Render("  esc to finish"))
	}

	preview := draft.Comment()
	if preview == "" {
		preview = s.Muted.Render("(none)")
	}
	return fmt.Sprintf("%s%-24s %s", cursor, label, preview)
}

func (m WizardModel) renderSubmitRow() string {
	s := m.styles
	if m.focus == focusSubmit {
		return s.Cursor.Render("> ") + s.Badge.Render("Submit")
	}
	return "  " + s.Muted.Render("Submit")
}
