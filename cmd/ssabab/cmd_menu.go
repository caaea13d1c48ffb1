package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ssabab/cmd/ssabab/ui"
	"ssabab/internal/api"
	"ssabab/internal/kst"
	"ssabab/internal/menu"
)

var menuWeek bool

// menuCmd shows the published menus
var menuCmd = &cobra.Command{
	Use:   "menu [date]",
	Short: "Show the lunch menus for a date (default today)",
	Long: `Show the two published lunch menus for a date.

Dates are YYYY-MM-DD in KST. With --week, shows all five weekdays of the
week containing the date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
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
	a.menus.Select(date)

	styles := a.styles()

	if menuWeek {
		week := a.menus.FetchWeek(cmd.Context(), date)
		if len(week) == 0 {
			fmt.Println("No menus published for this week.")
			return nil
		}
		for _, d := range menu.WeekdaysOf(date) {
			if menus, ok := week[d]; ok {
				fmt.Print(renderMenus(styles, d, menus))
			}
		}
		return nil
	}

	menus, err := a.menus.Get(cmd.Context(), date)
	if err != nil {
		return fmt.Errorf("failed to load menus for %s: %w", date, err)
	}
	fmt.Print(renderMenus(styles, date, menus))
	return nil
}

// renderMenus lays the two menus out side by side as a single table.
func renderMenus(styles ui.Styles, date string, menus *api.MenusResponse) string {
	tbl := ui.NewSimpleTable("Menus for "+date, []string{"Menu A", "Menu B"})

	rows := len(menus.Menu1.Foods)
	if len(menus.Menu2.Foods) > rows {
		rows = len(menus.Menu2.Foods)
	}
	for i := 0; i < rows; i++ {
		left, right := "", ""
		if i < len(menus.Menu1.Foods) {
			left = menus.Menu1.Foods[i].FoodName
		}
		if i < len(menus.Menu2.Foods) {
			right = menus.Menu2.Foods[i].FoodName
		}
		tbl.AddRow(left, right)
	}

	return tbl.View(styles)
}
