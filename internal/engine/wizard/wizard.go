// Package wizard ties visibility, selection and pricing together for one
// menu item's catalog snapshot. Everything is recomputed from the selection
// map on every call.
package wizard

import (
	"sort"

	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/pricing"
	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/selection"
	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/visibility"
	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
)

type Wizard struct {
	snap     *model.Snapshot
	resolver *visibility.Resolver
	cfg      pricing.Config
	prices   map[string]map[string]float64
}

func New(snap *model.Snapshot, cfg pricing.Config) *Wizard {
	templateID := ""
	if snap.MenuItem.TemplateID != nil {
		templateID = *snap.MenuItem.TemplateID
	}
	return &Wizard{
		snap:     snap,
		resolver: visibility.NewResolver(templateID, snap.Panels, snap.Items, snap.Rules),
		cfg:      cfg,
		prices:   snap.ToppingPriceTable(),
	}
}

func (w *Wizard) Panels() []model.Panel {
	return w.resolver.Panels()
}

// Initial seeds the selections for a new session.
func (w *Wizard) Initial(sizeHint string, editing *model.Line) selection.Map {
	return w.Prune(selection.BuildInitial(w.snap, sizeHint, editing))
}

// SizeID returns the size chosen in the first size panel that has a selection.
func (w *Wizard) SizeID(m selection.Map) string {
	for _, p := range w.Panels() {
		if p.Kind != model.PanelKindSize {
			continue
		}
		itemID, ok := m.SelectedItem(p.ID)
		if !ok {
			continue
		}
		if it, ok := w.snap.Item(itemID); ok && it.SizeID != nil {
			return *it.SizeID
		}
	}
	return ""
}

// Choose selects itemID in panelID. It reports false when the panel or the
// item is not currently shown.
func (w *Wizard) Choose(m selection.Map, panelID, itemID string) (selection.Map, bool) {
	idx := w.resolver.IndexOf(panelID)
	if idx < 0 || w.Panels()[idx].Kind == model.PanelKindTopping {
		return m, false
	}
	if !w.resolver.PanelVisible(idx, m) {
		return m, false
	}
	for _, it := range w.resolver.Items(idx, m) {
		if it.ID != itemID {
			continue
		}
		name, price := w.snap.ResolveItem(it)
		next := m.With(panelID, selection.PanelSelection{ItemID: it.ID, Name: name, Price: price})
		return w.Prune(next), true
	}
	return m, false
}

// SetTopping adds a topping or changes the placement and amount of one
// already selected. It reports false for toppings not offered by any topping panel.
func (w *Wizard) SetTopping(m selection.Map, toppingID string, placement model.Placement, amount model.Amount) (selection.Map, bool) {
	if !placement.Valid() || !amount.Valid() {
		return m, false
	}
	offered := false
	for _, p := range w.Panels() {
		if p.Kind != model.PanelKindTopping {
			continue
		}
		for _, t := range w.toppingOptions(p) {
			if t.ID == toppingID {
				offered = true
			}
		}
	}
	if !offered {
		return m, false
	}

	return m.WithTopping(selection.CatalogTopping(w.snap, toppingID, placement, amount)), true
}

// RemoveTopping reports false when the topping is not selected.
func (w *Wizard) RemoveTopping(m selection.Map, toppingID string) (selection.Map, bool) {
	if _, ok := m.Topping(toppingID); !ok {
		return m, false
	}
	return m.WithoutTopping(toppingID), true
}

// Prune drops selections of panels, or of items, that are no longer shown.
// Panels are walked in order so hiding one can cascade downstream.
func (w *Wizard) Prune(m selection.Map) selection.Map {
	for i, p := range w.Panels() {
		if p.Kind == model.PanelKindTopping {
			continue
		}
		itemID, ok := m.SelectedItem(p.ID)
		if !ok {
			continue
		}
		if !w.resolver.PanelVisible(i, m) || !w.resolver.ItemVisible(i, itemID, m) {
			m = m.Without(p.ID)
		}
	}
	return m
}

// toppingOptions lists what a topping panel offers: its topping items if
// it has any, else the active toppings of the menu item's category or its
// parent categories.
func (w *Wizard) toppingOptions(panel model.Panel) []model.Topping {
	var out []model.Topping
	for _, it := range visibility.ActiveItems(panel.ID, w.snap.Items) {
		if it.Kind != model.PanelItemToppingRef || it.ToppingID == nil {
			continue
		}
		if t, ok := w.snap.Topping(*it.ToppingID); ok && t.IsActive {
			out = append(out, t)
		}
	}
	if len(out) > 0 {
		return out
	}

	categoryOrder := make(map[string]int, len(w.snap.ToppingCategories))
	for _, c := range w.snap.ToppingCategories {
		if c.IsActive {
			categoryOrder[c.ID] = c.DisplayOrder
		}
	}
	for _, t := range w.snap.Toppings {
		if !t.IsActive || (t.MenuCategoryID != "" && !w.snap.InCategory(t.MenuCategoryID)) {
			continue
		}
		if len(categoryOrder) > 0 {
			if _, ok := categoryOrder[t.ToppingCategoryID]; !ok {
				continue
			}
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := categoryOrder[out[i].ToppingCategoryID], categoryOrder[out[j].ToppingCategoryID]
		if ci != cj {
			return ci < cj
		}
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

// Price computes the itemized price for the selections.
func (w *Wizard) Price(m selection.Map) pricing.Breakdown {
	var components []pricing.Component
	for _, p := range w.Panels() {
		if p.Kind == model.PanelKindTopping {
			continue
		}
		s, ok := m.Get(p.ID)
		if !ok {
			continue
		}
		components = append(components, pricing.Component{
			PanelID:    p.ID,
			PanelTitle: p.Title,
			ItemID:     s.ItemID,
			Name:       s.Name,
			Price:      s.Price,
		})
	}

	selected := m.Toppings()
	toppings := make([]pricing.Topping, len(selected))
	for i, t := range selected {
		toppings[i] = pricing.Topping{
			ToppingID: t.ToppingID,
			BasePrice: t.BasePrice,
			Placement: t.Placement,
			Amount:    t.Amount,
		}
	}

	alloc := pricing.Allocate(pricing.Input{
		Toppings:  toppings,
		Defaults:  w.snap.DefaultToppings,
		SizeID:    w.SizeID(m),
		Overrides: w.prices,
	}, w.cfg)
	return pricing.Aggregate(components, alloc)
}

// Ready reports whether every shown required panel has a shown selection,
// listing the IDs of those that do not.
func (w *Wizard) Ready(m selection.Map) (bool, []string) {
	var missing []string
	for i, p := range w.Panels() {
		if !p.Required || p.Kind == model.PanelKindTopping || !w.resolver.PanelVisible(i, m) {
			continue
		}
		itemID, ok := m.SelectedItem(p.ID)
		if !ok || !w.resolver.ItemVisible(i, itemID, m) {
			missing = append(missing, p.ID)
		}
	}
	return len(missing) == 0, missing
}

// Finalize converts the selections into a cart line. Topping prices are the
// chargeable prices after credits and placement.
func (w *Wizard) Finalize(m selection.Map) model.Line {
	breakdown := w.Price(m)
	line := model.Line{
		MenuItemID: w.snap.MenuItem.ID,
		Name:       w.snap.MenuItem.Name,
		UnitPrice:  breakdown.Total,
		Selections: []model.LineSelection{},
		Toppings:   []model.LineTopping{},
	}

	for _, p := range w.Panels() {
		s, ok := m.Get(p.ID)
		if !ok {
			continue
		}
		switch p.Kind {
		case model.PanelKindSize:
			if line.Size == "" {
				line.Size = s.Name
			}
		case model.PanelKindFixedList:
			line.Selections = append(line.Selections, model.LineSelection{
				PanelTitle: p.Title,
				ItemName:   s.Name,
				Price:      s.Price,
			})
		}
	}

	for i, t := range m.Toppings() {
		line.Toppings = append(line.Toppings, model.LineTopping{
			ID:        t.ToppingID,
			Name:      t.Name,
			Placement: t.Placement,
			Amount:    t.Amount,
			Price:     breakdown.Toppings.Charges[i].Price,
		})
	}
	return line
}
