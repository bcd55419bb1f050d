package visibility

import (
	"testing"

	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
)

type picks map[string]string

func (p picks) SelectedItem(panelID string) (string, bool) {
	id, ok := p[panelID]
	return id, ok
}

func strPtr(s string) *string { return &s }

func fixture() ([]model.Panel, []model.PanelItem) {
	panels := []model.Panel{
		{ID: "p-size", TemplateID: "t1", Kind: model.PanelKindSize, DisplayOrder: 1, IsActive: true},
		{ID: "p-crust", TemplateID: "t1", Kind: model.PanelKindFixedList, DisplayOrder: 2, IsActive: true},
		{ID: "p-top", TemplateID: "t1", Kind: model.PanelKindTopping, DisplayOrder: 3, IsActive: true},
	}
	items := []model.PanelItem{
		{ID: "small", PanelID: "p-size", Kind: model.PanelItemSizeRef, DisplayOrder: 1, IsActive: true},
		{ID: "large", PanelID: "p-size", Kind: model.PanelItemSizeRef, DisplayOrder: 2, IsActive: true},
		{ID: "thin", PanelID: "p-crust", Kind: model.PanelItemCustomValue, DisplayOrder: 2, IsActive: true},
		{ID: "deep", PanelID: "p-crust", Kind: model.PanelItemCustomValue, DisplayOrder: 1, IsActive: true},
		{ID: "stuffed", PanelID: "p-crust", Kind: model.PanelItemCustomValue, DisplayOrder: 3, IsActive: false},
	}
	return panels, items
}

func ids(items []model.PanelItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFirstPanelAlwaysVisible(t *testing.T) {
	panels, items := fixture()
	rules := NewRuleIndex([]model.VisibilityRule{
		{PanelID: "p-size", ParentItemID: "nothing", IsVisible: true},
	})

	if !IsPanelVisible(panels[0], 0, panels, rules, picks{}) {
		t.Fatal("expected first panel to be visible")
	}
	got := ids(VisibleItems(panels[0], 0, panels, items, rules, picks{}))
	if !equalIDs(got, []string{"small", "large"}) {
		t.Fatalf("unexpected first panel items: %v", got)
	}
}

func TestToppingPanelVisibleRegardlessOfSelections(t *testing.T) {
	panels, _ := fixture()
	rules := NewRuleIndex([]model.VisibilityRule{
		{PanelID: "p-top", ParentItemID: "thin", IsVisible: true},
	})

	for _, sel := range []Selections{nil, picks{}, picks{"p-crust": "deep"}} {
		if !IsPanelVisible(panels[2], 2, panels, rules, sel) {
			t.Fatalf("topping panel hidden for selections %v", sel)
		}
	}
}

func TestPanelLevelRules(t *testing.T) {
	panels, _ := fixture()

	tests := []struct {
		name  string
		rules []model.VisibilityRule
		sel   picks
		want  bool
	}{
		{"no rules is open", nil, picks{}, true},
		{"governed without previous selection", []model.VisibilityRule{{PanelID: "p-crust", ParentItemID: "large", IsVisible: true}}, picks{}, false},
		{"matching positive rule", []model.VisibilityRule{{PanelID: "p-crust", ParentItemID: "large", IsVisible: true}}, picks{"p-size": "large"}, true},
		{"no matching rule", []model.VisibilityRule{{PanelID: "p-crust", ParentItemID: "large", IsVisible: true}}, picks{"p-size": "small"}, false},
		{"matching negative rule", []model.VisibilityRule{{PanelID: "p-crust", ParentItemID: "small", IsVisible: false}}, picks{"p-size": "small"}, false},
		{"conflicting rules are an OR of positives", []model.VisibilityRule{
			{PanelID: "p-crust", ParentItemID: "small", IsVisible: false},
			{PanelID: "p-crust", ParentItemID: "small", IsVisible: true},
		}, picks{"p-size": "small"}, true},
		{"item rules do not govern the panel", []model.VisibilityRule{{PanelID: "p-crust", ParentItemID: "large", ChildItemID: strPtr("thin"), IsVisible: true}}, picks{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsPanelVisible(panels[1], 1, panels, NewRuleIndex(tt.rules), tt.sel)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestItemWithoutRulesVisibleUnderEveryParent(t *testing.T) {
	panels, items := fixture()
	rules := NewRuleIndex([]model.VisibilityRule{
		{PanelID: "p-crust", ParentItemID: "large", ChildItemID: strPtr("thin"), IsVisible: true},
	})

	for _, parent := range []string{"small", "large", "unknown"} {
		got := ids(VisibleItems(panels[1], 1, panels, items, rules, picks{"p-size": parent}))
		found := false
		for _, id := range got {
			if id == "deep" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected ungoverned item to be visible under parent %s, got %v", parent, got)
		}
	}
}

func TestGovernedItemHiddenWithoutMatchingRule(t *testing.T) {
	panels, items := fixture()
	rules := NewRuleIndex([]model.VisibilityRule{
		{PanelID: "p-crust", ParentItemID: "large", ChildItemID: strPtr("thin"), IsVisible: true},
	})

	got := ids(VisibleItems(panels[1], 1, panels, items, rules, picks{"p-size": "small"}))
	if !equalIDs(got, []string{"deep"}) {
		t.Fatalf("expected only deep, got %v", got)
	}

	got = ids(VisibleItems(panels[1], 1, panels, items, rules, picks{"p-size": "large"}))
	if !equalIDs(got, []string{"deep", "thin"}) {
		t.Fatalf("expected deep and thin, got %v", got)
	}
}

func TestItemsFallBackToAllWithoutPreviousSelection(t *testing.T) {
	panels, items := fixture()
	rules := NewRuleIndex([]model.VisibilityRule{
		{PanelID: "p-crust", ParentItemID: "large", ChildItemID: strPtr("thin"), IsVisible: true},
	})

	got := ids(VisibleItems(panels[1], 1, panels, items, rules, picks{}))
	if !equalIDs(got, []string{"deep", "thin"}) {
		t.Fatalf("expected all active items, got %v", got)
	}
}

func TestResolverOrdersAndFiltersPanels(t *testing.T) {
	panels, items := fixture()
	panels = append(panels,
		model.Panel{ID: "p-other", TemplateID: "t2", DisplayOrder: 0, IsActive: true},
		model.Panel{ID: "p-off", TemplateID: "t1", DisplayOrder: 0, IsActive: false},
	)
	// Reverse input order to prove sorting.
	reversed := []model.Panel{panels[4], panels[3], panels[2], panels[1], panels[0]}

	r := NewResolver("t1", reversed, items, nil)
	got := r.Panels()
	if len(got) != 3 || got[0].ID != "p-size" || got[1].ID != "p-crust" || got[2].ID != "p-top" {
		t.Fatalf("unexpected panel order: %+v", got)
	}
	if r.IndexOf("p-top") != 2 || r.IndexOf("p-off") != -1 {
		t.Fatal("unexpected panel index")
	}
	if !r.ItemVisible(1, "thin", picks{"p-size": "small"}) {
		t.Fatal("expected thin to be visible without rules")
	}
	if r.ItemVisible(1, "stuffed", picks{"p-size": "small"}) {
		t.Fatal("inactive item must never be visible")
	}
	if r.PanelVisible(7, picks{}) {
		t.Fatal("out of range panel must not be visible")
	}
}

// Scenario: an item gated on ItemA is hidden when ItemB is selected upstream.
func TestItemGatedOnOtherParentIsHidden(t *testing.T) {
	panels := []model.Panel{
		{ID: "panel1", TemplateID: "t", Kind: model.PanelKindFixedList, DisplayOrder: 1, IsActive: true},
		{ID: "panel2", TemplateID: "t", Kind: model.PanelKindFixedList, DisplayOrder: 2, IsActive: true},
	}
	items := []model.PanelItem{
		{ID: "itemA", PanelID: "panel1", IsActive: true},
		{ID: "itemB", PanelID: "panel1", IsActive: true},
		{ID: "X", PanelID: "panel2", IsActive: true},
	}
	r := NewResolver("t", panels, items, []model.VisibilityRule{
		{PanelID: "panel2", ParentItemID: "itemA", ChildItemID: strPtr("X"), IsVisible: true},
	})

	if r.ItemVisible(1, "X", picks{"panel1": "itemB"}) {
		t.Fatal("X must be hidden when itemB is selected")
	}
	if !r.ItemVisible(1, "X", picks{"panel1": "itemA"}) {
		t.Fatal("X must be visible when itemA is selected")
	}
}
