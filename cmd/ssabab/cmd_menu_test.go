package main

import (
	"strings"
	"testing"

	"ssabab/cmd/ssabab/ui"
	"ssabab/internal/api"
)

func TestRenderMenusSideBySide(t *testing.T) {
	menus := &api.MenusResponse{
		Menu1: &api.Menu{MenuID: 1, Foods: []api.Food{
			{FoodID: 1, FoodName: "Kimchi stew"},
			{FoodID: 2, FoodName: "Rice"},
		}},
		Menu2: &api.Menu{MenuID: 2, Foods: []api.Food{
			{FoodID: 3, FoodName: "Pasta"},
		}},
	}

	out := renderMenus(ui.NewStyles(ui.LightTheme()), "2024-06-10", menus)

	for _, want := range []string{"2024-06-10", "Menu A", "Menu B", "Kimchi stew", "Rice", "Pasta"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered menus missing %q:\n%s", want, out)
		}
	}
}
