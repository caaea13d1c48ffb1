package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ssabab/cmd/ssabab/ui"
)

// statsCmd shows personal analytics; the monthly subcommand shows the
// aggregate view
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your personal rating statistics",
	Long: `Show rating analytics.

Without a subcommand, shows your personal summary: average score, review
count, and your best/worst rated dishes. 'stats monthly' shows the
aggregate across all users for the current month.`,
	RunE: runStatsPersonal,
}

var statsMonthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Show this month's aggregate statistics",
	RunE:  runStatsMonthly,
}

func runStatsPersonal(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	stats, err := a.client.PersonalAnalysis(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load personal analytics: %w", err)
	}

	styles := a.styles()

	fmt.Println("Your lunch reviews")
	fmt.Printf("  Average score: %s\n", ui.RenderAverage(styles, stats.AverageScore))
	fmt.Printf("  Reviews:       %d\n\n", stats.ReviewCount)

	if len(stats.BestFoods) > 0 {
		tbl := ui.NewSimpleTable("Best rated", []string{"Dish", "Score"}).AlignRight(1)
		for _, f := range stats.BestFoods {
			tbl.AddRow(f.FoodName, fmt.Sprintf("%.1f", f.FoodScore))
		}
		fmt.Print(tbl.View(styles))
	}

	if len(stats.WorstFoods) > 0 {
		tbl := ui.NewSimpleTable("Worst rated", []string{"Dish", "Score"}).AlignRight(1)
		for _, f := range stats.WorstFoods {
			tbl.AddRow(f.FoodName, fmt.Sprintf("%.1f", f.FoodScore))
		}
		fmt.Print(tbl.View(styles))
	}

	return nil
}

func runStatsMonthly(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	stats, err := a.client.MonthlyAnalysis(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load monthly analytics: %w", err)
	}

	styles := a.styles()

	fmt.Printf("Everyone's reviews for %s\n", stats.Month)
	fmt.Printf("  Average score: %s\n", ui.RenderAverage(styles, stats.AverageScore))
	fmt.Printf("  Total reviews: %d\n\n", stats.TotalReviews)

	if len(stats.TopFoods) > 0 {
		tbl := ui.NewSimpleTable("Top dishes", []string{"Dish", "Score"}).AlignRight(1)
		for _, f := range stats.TopFoods {
			tbl.AddRow(f.FoodName, fmt.Sprintf("%.1f", f.FoodScore))
		}
		fmt.Print(tbl.View(styles))
	}

	return nil
}
