package visibility

import (
	"sort"

	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
)

// Selections exposes the item chosen in each panel.
type Selections interface {
	SelectedItem(panelID string) (string, bool)
}

// OrderedPanels returns the active panels of a template sorted by display order.
// Ties keep their input order.
func OrderedPanels(templateID string, panels []model.Panel) []model.Panel {
	out := make([]model.Panel, 0, len(panels))
	for _, p := range panels {
		if p.IsActive && p.TemplateID == templateID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

// ActiveItems returns the active items of a panel sorted by display order.
func ActiveItems(panelID string, items []model.PanelItem) []model.PanelItem {
	out := make([]model.PanelItem, 0)
	for _, it := range items {
		if it.IsActive && it.PanelID == panelID {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

// previousSelection returns the item chosen in the panel before index.
func previousSelection(index int, panels []model.Panel, sel Selections) (string, bool) {
	if index <= 0 || index > len(panels) || sel == nil {
		return "", false
	}
	return sel.SelectedItem(panels[index-1].ID)
}

// IsPanelVisible reports whether the panel at index is shown. panels must be
// the ordered active panels of the template.
func IsPanelVisible(panel model.Panel, index int, panels []model.Panel, rules *RuleIndex, sel Selections) bool {
	if index <= 0 || panel.Kind == model.PanelKindTopping {
		return true
	}
	if !panel.IsActive {
		return false
	}
	if !rules.PanelGoverned(panel.ID) {
		return true
	}
	parent, ok := previousSelection(index, panels, sel)
	if !ok {
		return false
	}
	return rules.PanelAllows(panel.ID, parent)
}

// VisibleItems returns the active items of the panel at index that are shown
// for the current selections.
func VisibleItems(panel model.Panel, index int, panels []model.Panel, items []model.PanelItem, rules *RuleIndex, sel Selections) []model.PanelItem {
	active := ActiveItems(panel.ID, items)
	if index <= 0 || panel.Kind == model.PanelKindTopping {
		return active
	}

	parent, ok := previousSelection(index, panels, sel)
	if !ok {
		// Nothing chosen upstream yet: show everything rather than an empty step.
		return active
	}

	out := make([]model.PanelItem, 0, len(active))
	for _, it := range active {
		if !rules.ItemGoverned(panel.ID, it.ID) || rules.ItemAllows(panel.ID, it.ID, parent) {
			out = append(out, it)
		}
	}
	return out
}

// Resolver binds one template's panels, items and rules so callers only pass
// the selections. It holds no state derived from selections.
type Resolver struct {
	panels []model.Panel
	items  []model.PanelItem
	rules  *RuleIndex
}

func NewResolver(templateID string, panels []model.Panel, items []model.PanelItem, rules []model.VisibilityRule) *Resolver {
	return &Resolver{
		panels: OrderedPanels(templateID, panels),
		items:  items,
		rules:  NewRuleIndex(rules),
	}
}

// Panels returns the ordered active panels.
func (r *Resolver) Panels() []model.Panel {
	return r.panels
}

func (r *Resolver) IndexOf(panelID string) int {
	for i, p := range r.panels {
		if p.ID == panelID {
			return i
		}
	}
	return -1
}

func (r *Resolver) PanelVisible(index int, sel Selections) bool {
	if index < 0 || index >= len(r.panels) {
		return false
	}
	return IsPanelVisible(r.panels[index], index, r.panels, r.rules, sel)
}

func (r *Resolver) Items(index int, sel Selections) []model.PanelItem {
	if index < 0 || index >= len(r.panels) {
		return nil
	}
	return VisibleItems(r.panels[index], index, r.panels, r.items, r.rules, sel)
}

// ItemVisible reports whether itemID is among the visible items of the panel at index.
func (r *Resolver) ItemVisible(index int, itemID string, sel Selections) bool {
	for _, it := range r.Items(index, sel) {
		if it.ID == itemID {
			return true
		}
	}
	return false
}
