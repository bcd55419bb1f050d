// Package selection holds a buyer's in-progress choices for one customization
// session. A Map is never modified in place: every change returns a new Map.
package selection

import (
	"encoding/json"

	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
)

// PanelSelection is the item chosen in a non-topping panel.
type PanelSelection struct {
	ItemID string  `json:"item_id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
}

type ToppingSelection struct {
	ToppingID  string          `json:"topping_id"`
	Name       string          `json:"name"`
	BasePrice  float64         `json:"base_price"`
	CategoryID string          `json:"category_id"`
	Placement  model.Placement `json:"placement"`
	Amount     model.Amount    `json:"amount"`
}

type Map struct {
	panels   map[string]PanelSelection
	toppings []ToppingSelection
}

func New() Map {
	return Map{panels: map[string]PanelSelection{}}
}

func (m Map) Get(panelID string) (PanelSelection, bool) {
	s, ok := m.panels[panelID]
	return s, ok
}

// SelectedItem satisfies visibility.Selections.
func (m Map) SelectedItem(panelID string) (string, bool) {
	s, ok := m.panels[panelID]
	return s.ItemID, ok
}

// Len is the number of panels with a selection.
func (m Map) Len() int {
	return len(m.panels)
}

// Toppings returns a copy of the topping list in selection order.
func (m Map) Toppings() []ToppingSelection {
	out := make([]ToppingSelection, len(m.toppings))
	copy(out, m.toppings)
	return out
}

func (m Map) Topping(toppingID string) (ToppingSelection, bool) {
	for _, t := range m.toppings {
		if t.ToppingID == toppingID {
			return t, true
		}
	}
	return ToppingSelection{}, false
}

func (m Map) clone() Map {
	out := Map{
		panels:   make(map[string]PanelSelection, len(m.panels)+1),
		toppings: make([]ToppingSelection, len(m.toppings)),
	}
	for k, v := range m.panels {
		out.panels[k] = v
	}
	copy(out.toppings, m.toppings)
	return out
}

// With returns a copy with panelID set to s.
func (m Map) With(panelID string, s PanelSelection) Map {
	out := m.clone()
	out.panels[panelID] = s
	return out
}

// Without returns a copy with no selection for panelID.
func (m Map) Without(panelID string) Map {
	out := m.clone()
	delete(out.panels, panelID)
	return out
}

// WithTopping adds t, or replaces the existing entry for the same topping in place.
func (m Map) WithTopping(t ToppingSelection) Map {
	out := m.clone()
	for i := range out.toppings {
		if out.toppings[i].ToppingID == t.ToppingID {
			out.toppings[i] = t
			return out
		}
	}
	out.toppings = append(out.toppings, t)
	return out
}

// WithoutTopping removes every entry for toppingID.
func (m Map) WithoutTopping(toppingID string) Map {
	out := m.clone()
	kept := out.toppings[:0]
	for _, t := range out.toppings {
		if t.ToppingID != toppingID {
			kept = append(kept, t)
		}
	}
	out.toppings = kept
	return out
}

// WithToppings replaces the whole topping list.
func (m Map) WithToppings(toppings []ToppingSelection) Map {
	out := m.clone()
	out.toppings = make([]ToppingSelection, len(toppings))
	copy(out.toppings, toppings)
	return out
}

type mapJSON struct {
	Panels   map[string]PanelSelection `json:"panels"`
	Toppings []ToppingSelection        `json:"toppings"`
}

func (m Map) MarshalJSON() ([]byte, error) {
	panels := m.panels
	if panels == nil {
		panels = map[string]PanelSelection{}
	}
	toppings := m.toppings
	if toppings == nil {
		toppings = []ToppingSelection{}
	}
	return json.Marshal(mapJSON{Panels: panels, Toppings: toppings})
}

func (m *Map) UnmarshalJSON(data []byte) error {
	var raw mapJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Panels == nil {
		raw.Panels = map[string]PanelSelection{}
	}
	m.panels = raw.Panels
	m.toppings = raw.Toppings
	return nil
}
