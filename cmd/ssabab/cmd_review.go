package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ssabab/cmd/ssabab/ui"
	"ssabab/internal/kst"
	"ssabab/internal/review"
	"ssabab/internal/store"
)

var reviewMenuChoice int

// reviewCmd launches the interactive review wizard
var reviewCmd = &cobra.Command{
	Use:   "review [date]",
	Short: "Rate today's lunch (interactive)",
	Long: `Launch the interactive review wizard for a date (default today).

Rate each dish 0-5 stars, choose whether you were satisfied, and leave an
optional comment. Reviews are only accepted 12:00-23:00 KST for today's
menu; resubmitting overwrites the previous review.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

// reviewStatusCmd shows the local submission history
var reviewStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your recent review submissions",
	RunE:  runReviewStatus,
}

func runReview(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	date := kst.Today(kst.Now())
	if len(args) == 1 {
		date = args[0]
		if _, err := time.ParseInLocation(kst.DateFormat, date, kst.Location); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
		}
	}

	if reviewMenuChoice != 1 && reviewMenuChoice != 2 {
		return fmt.Errorf("--menu must be 1 or 2")
	}

	// Same gate the wizard applies: while the window is closed nothing is
	// fetched, only the notice prints.
	if now := kst.Now(); !kst.InReviewWindow(now) || !kst.IsToday(date, now) {
		fmt.Println(review.ErrWindowClosed.Error())
		return nil
	}

	menus, err := a.menus.Get(cmd.Context(), date)
	if err != nil {
		return fmt.Errorf("failed to load menus for %s: %w", date, err)
	}
	target := menus.Menu1
	if reviewMenuChoice == 2 {
		target = menus.Menu2
	}

	local, err := a.openLocalStore()
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer local.Close()

	// Advisory only; the server decides whether this turns into an update.
	if reviewed, err := local.IsReviewed(date); err == nil && reviewed {
		fmt.Printf("You already reviewed %s - submitting again overwrites it.\n", date)
	}

	flow := review.NewFlow(review.Config{
		Session:       a.session,
		Menus:         a.menus,
		Submitter:     a.client,
		Markers:       local,
		SubmitTimeout: a.cfg.GetSubmitTimeout(),
	}, date, target.MenuID)

	model := ui.NewWizard(flow, a.styles())
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}

	final, ok := finalModel.(ui.WizardModel)
	if !ok {
		return nil
	}

	switch final.FinalState() {
	case review.StateSuccess:
		if err := local.LogSubmission(store.SubmissionRecord{
			Date:       date,
			MenuID:     target.MenuID,
			Satisfied:  final.SubmittedSatisfied,
			RatedItems: final.SubmittedItems,
		}); err != nil {
			logger.Warn("failed to log submission locally", zap.Error(err))
		}
		fmt.Printf("Review submitted for %s.\n", date)
	case review.StateRedirectLogin:
		fmt.Println("Not logged in. Run 'ssabab login' first.")
	}

	return nil
}

func runReviewStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	local, err := a.openLocalStore()
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer local.Close()

	today := kst.Today(kst.Now())
	if reviewed, err := local.IsReviewed(today); err == nil {
		if reviewed {
			fmt.Printf("Today (%s): reviewed ✓\n\n", today)
		} else {
			fmt.Printf("Today (%s): not reviewed yet\n\n", today)
		}
	}

	recs, err := local.RecentSubmissions(10)
	if err != nil {
		return fmt.Errorf("failed to read submission log: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println("No submissions recorded on this machine.")
		return nil
	}

	tbl := ui.NewSimpleTable("Recent submissions", []string{"Date", "Satisfied", "Rated dishes"}).AlignRight(2)
	for _, r := range recs {
		satisfied := "no"
		if r.Satisfied {
			satisfied = "yes"
		}
		tbl.AddRow(r.Date, satisfied, fmt.Sprintf("%d", r.RatedItems))
	}
	fmt.Print(tbl.View(a.styles()))
	return nil
}
