package model

// Labels are shown in place of references that no longer resolve.
type Labels struct {
	UnknownSize    string `json:"unknown_size"`
	UnknownTopping string `json:"unknown_topping"`
}

var DefaultLabels = Labels{
	UnknownSize:    "Unknown Size",
	UnknownTopping: "Unknown Topping",
}

// Snapshot is the read-only catalog data needed to customize one menu item.
// It is never mutated once built.
type Snapshot struct {
	MenuItem          MenuItem            `json:"menu_item"`
	Categories        []Category          `json:"categories"`
	Panels            []Panel             `json:"panels"`
	Items             []PanelItem         `json:"items"`
	Rules             []VisibilityRule    `json:"rules"`
	Sizes             []Size              `json:"sizes"`
	SizePrices        []MenuItemSizePrice `json:"size_prices"`
	Toppings          []Topping           `json:"toppings"`
	ToppingCategories []ToppingCategory   `json:"topping_categories"`
	ToppingPrices     []SizeToppingPrice  `json:"topping_prices"`
	DefaultToppings   []DefaultTopping    `json:"default_toppings"`
	DefaultSelections []DefaultSelection  `json:"default_selections"`
	Labels            Labels              `json:"labels"`
}

func (s *Snapshot) labels() Labels {
	l := s.Labels
	if l.UnknownSize == "" {
		l.UnknownSize = DefaultLabels.UnknownSize
	}
	if l.UnknownTopping == "" {
		l.UnknownTopping = DefaultLabels.UnknownTopping
	}
	return l
}

// InCategory reports whether categoryID is the menu item's category or one
// of its ancestors.
func (s *Snapshot) InCategory(categoryID string) bool {
	if categoryID == s.MenuItem.CategoryID {
		return true
	}
	for _, c := range s.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}

func (s *Snapshot) Size(id string) (Size, bool) {
	for _, sz := range s.Sizes {
		if sz.ID == id {
			return sz, true
		}
	}
	return Size{}, false
}

func (s *Snapshot) Topping(id string) (Topping, bool) {
	for _, t := range s.Toppings {
		if t.ID == id {
			return t, true
		}
	}
	return Topping{}, false
}

func (s *Snapshot) Panel(id string) (Panel, bool) {
	for _, p := range s.Panels {
		if p.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

func (s *Snapshot) Item(id string) (PanelItem, bool) {
	for _, it := range s.Items {
		if it.ID == id {
			return it, true
		}
	}
	return PanelItem{}, false
}

// ToppingName falls back to the unknown-topping label.
func (s *Snapshot) ToppingName(id string) string {
	if t, ok := s.Topping(id); ok {
		return t.Name
	}
	return s.labels().UnknownTopping
}

// SizePrice returns the menu item's price for a size, 0 if not priced.
func (s *Snapshot) SizePrice(sizeID string) float64 {
	for _, p := range s.SizePrices {
		if p.MenuItemID == s.MenuItem.ID && p.SizeID == sizeID {
			return p.Price
		}
	}
	return 0
}

// ResolveItem returns the display name and price of a panel item.
func (s *Snapshot) ResolveItem(item PanelItem) (string, float64) {
	switch item.Kind {
	case PanelItemSizeRef:
		if item.SizeID == nil {
			return s.labels().UnknownSize, 0
		}
		sz, ok := s.Size(*item.SizeID)
		if !ok {
			return s.labels().UnknownSize, 0
		}
		return sz.Name, s.SizePrice(sz.ID)
	case PanelItemToppingRef:
		if item.ToppingID == nil {
			return s.labels().UnknownTopping, 0
		}
		return s.ToppingName(*item.ToppingID), 0
	default:
		return item.Name, item.Price
	}
}

// ToppingPriceTable indexes size overrides as size -> topping -> price.
func (s *Snapshot) ToppingPriceTable() map[string]map[string]float64 {
	table := make(map[string]map[string]float64)
	for _, p := range s.ToppingPrices {
		bySize, ok := table[p.SizeID]
		if !ok {
			bySize = make(map[string]float64)
			table[p.SizeID] = bySize
		}
		bySize[p.ToppingID] = p.Price
	}
	return table
}

// DefaultSelectionFor returns the item declared as default for a list panel.
func (s *Snapshot) DefaultSelectionFor(panelID string) (string, bool) {
	for _, d := range s.DefaultSelections {
		if d.PanelID == panelID {
			return d.ItemID, true
		}
	}
	return "", false
}
