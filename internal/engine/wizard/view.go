package wizard

import (
	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/pricing"
	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/selection"
	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
)

type ItemView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Selected bool    `json:"selected"`
}

type ToppingView struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id"`
	Price      float64         `json:"price"`
	Selected   bool            `json:"selected"`
	Placement  model.Placement `json:"placement,omitempty"`
	Amount     model.Amount    `json:"amount,omitempty"`
}

type PanelView struct {
	ID                    string                    `json:"id"`
	Kind                  model.PanelKind           `json:"kind"`
	Title                 string                    `json:"title"`
	Subtitle              string                    `json:"subtitle,omitempty"`
	Message               string                    `json:"message,omitempty"`
	Required              bool                      `json:"required"`
	ShowPlacementControls bool                      `json:"show_placement_controls"`
	Items                 []ItemView                `json:"items,omitempty"`
	Selection             *selection.PanelSelection `json:"selection,omitempty"`
	Toppings              []ToppingView             `json:"toppings,omitempty"`
}

// View is what the rendering layer needs to draw the wizard.
type View struct {
	MenuItemID   string            `json:"menu_item_id"`
	Name         string            `json:"name"`
	Panels       []PanelView       `json:"panels"`
	Breakdown    pricing.Breakdown `json:"breakdown"`
	DisplayTotal float64           `json:"display_total"`
	CanConfirm   bool              `json:"can_confirm"`
	Missing      []string          `json:"missing,omitempty"`
}

// View builds the visible panels with their visible items and the price.
func (w *Wizard) View(m selection.Map) View {
	breakdown := w.Price(m)
	ready, missing := w.Ready(m)
	v := View{
		MenuItemID:   w.snap.MenuItem.ID,
		Name:         w.snap.MenuItem.Name,
		Panels:       []PanelView{},
		Breakdown:    breakdown,
		DisplayTotal: breakdown.DisplayTotal(),
		CanConfirm:   ready,
		Missing:      missing,
	}

	sizeID := w.SizeID(m)
	for i, p := range w.Panels() {
		if !w.resolver.PanelVisible(i, m) {
			continue
		}
		pv := PanelView{
			ID:       p.ID,
			Kind:     p.Kind,
			Title:    p.Title,
			Subtitle: p.Subtitle,
			Message:  p.Message,
			Required: p.Required,
		}

		if p.Kind == model.PanelKindTopping {
			pv.ShowPlacementControls = p.ShowPlacementControls
			for _, t := range w.toppingOptions(p) {
				tv := ToppingView{
					ID:         t.ID,
					Name:       t.Name,
					CategoryID: t.ToppingCategoryID,
					Price:      pricing.UnitPrice(t.ID, t.Price, sizeID, w.prices),
				}
				if sel, ok := m.Topping(t.ID); ok {
					tv.Selected = true
					tv.Placement = sel.Placement
					tv.Amount = sel.Amount
				}
				pv.Toppings = append(pv.Toppings, tv)
			}
			v.Panels = append(v.Panels, pv)
			continue
		}

		current, hasCurrent := m.Get(p.ID)
		if hasCurrent {
			cp := current
			pv.Selection = &cp
		}
		for _, it := range w.resolver.Items(i, m) {
			name, price := w.snap.ResolveItem(it)
			pv.Items = append(pv.Items, ItemView{
				ID:       it.ID,
				Name:     name,
				Price:    price,
				Selected: hasCurrent && current.ItemID == it.ID,
			})
		}
		v.Panels = append(v.Panels, pv)
	}
	return v
}
