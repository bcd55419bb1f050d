package selection

import (
	"strings"

	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/visibility"
	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
)

// BuildInitial seeds a Map for a new session. When editing is non-nil the
// stored cart line is restored, otherwise the menu item's defaults are used.
// A panel without active items never gets a key.
func BuildInitial(snap *model.Snapshot, sizeHint string, editing *model.Line) Map {
	if editing != nil {
		return restoreLine(snap, editing)
	}
	return seedDefaults(snap, sizeHint)
}

func templatePanels(snap *model.Snapshot) []model.Panel {
	if snap.MenuItem.TemplateID == nil {
		return nil
	}
	return visibility.OrderedPanels(*snap.MenuItem.TemplateID, snap.Panels)
}

func selectionOf(snap *model.Snapshot, item model.PanelItem) PanelSelection {
	name, price := snap.ResolveItem(item)
	return PanelSelection{ItemID: item.ID, Name: name, Price: price}
}

func seedDefaults(snap *model.Snapshot, sizeHint string) Map {
	m := New()
	toppingsSeeded := false

	for _, panel := range templatePanels(snap) {
		switch panel.Kind {
		case model.PanelKindTopping:
			if toppingsSeeded {
				continue
			}
			m.toppings = defaultToppings(snap)
			toppingsSeeded = true
		case model.PanelKindSize:
			items := visibility.ActiveItems(panel.ID, snap.Items)
			if len(items) == 0 {
				continue
			}
			chosen := items[0]
			if sizeHint != "" {
				hint := strings.ToLower(sizeHint)
				for _, it := range items {
					name, _ := snap.ResolveItem(it)
					if strings.Contains(strings.ToLower(name), hint) {
						chosen = it
						break
					}
				}
			}
			m.panels[panel.ID] = selectionOf(snap, chosen)
		default:
			items := visibility.ActiveItems(panel.ID, snap.Items)
			if len(items) == 0 {
				continue
			}
			chosen := items[0]
			if itemID, ok := snap.DefaultSelectionFor(panel.ID); ok {
				for _, it := range items {
					if it.ID == itemID {
						chosen = it
						break
					}
				}
			}
			m.panels[panel.ID] = selectionOf(snap, chosen)
		}
	}
	return m
}

// defaultToppings lists the built-in toppings at no charge, whole placement.
func defaultToppings(snap *model.Snapshot) []ToppingSelection {
	out := make([]ToppingSelection, 0, len(snap.DefaultToppings))
	for _, d := range snap.DefaultToppings {
		amount := d.Amount
		if !amount.Valid() {
			amount = model.AmountNormal
		}
		ts := ToppingSelection{
			ToppingID: d.ToppingID,
			Name:      snap.ToppingName(d.ToppingID),
			BasePrice: 0,
			Placement: model.PlacementWhole,
			Amount:    amount,
		}
		if t, ok := snap.Topping(d.ToppingID); ok {
			ts.CategoryID = t.ToppingCategoryID
		}
		out = append(out, ts)
	}
	return out
}

// restoreLine matches a stored line back onto the template. Panels whose
// stored value no longer matches an item stay unseeded.
func restoreLine(snap *model.Snapshot, line *model.Line) Map {
	m := New()
	toppingsRestored := false

	for _, panel := range templatePanels(snap) {
		if panel.Kind == model.PanelKindTopping {
			if toppingsRestored {
				continue
			}
			m.toppings = restoreToppings(snap, line.Toppings)
			toppingsRestored = true
			continue
		}

		want := ""
		if panel.Kind == model.PanelKindSize {
			want = line.Size
		} else {
			for _, s := range line.Selections {
				if s.PanelTitle == panel.Title {
					want = s.ItemName
					break
				}
			}
		}
		if want == "" {
			continue
		}

		for _, it := range visibility.ActiveItems(panel.ID, snap.Items) {
			if name, _ := snap.ResolveItem(it); name == want {
				m.panels[panel.ID] = selectionOf(snap, it)
				break
			}
		}
	}
	return m
}

// restoreToppings keeps the stored name, placement and amount, and prices
// each topping the way SetTopping would. A topping missing from the catalog
// keeps its stored price.
func restoreToppings(snap *model.Snapshot, stored []model.LineTopping) []ToppingSelection {
	out := make([]ToppingSelection, 0, len(stored))
	for _, lt := range stored {
		ts := ToppingSelection{
			ToppingID: lt.ID,
			Name:      lt.Name,
			BasePrice: lt.Price,
			Placement: lt.Placement,
			Amount:    lt.Amount,
		}
		if _, ok := snap.Topping(lt.ID); ok {
			priced := CatalogTopping(snap, lt.ID, lt.Placement, lt.Amount)
			ts.BasePrice = priced.BasePrice
			ts.CategoryID = priced.CategoryID
		}
		out = append(out, ts)
	}
	return out
}

// CatalogTopping builds a selection priced from the catalog. A default
// topping left whole at its declared amount keeps the base price 0 it is
// seeded with.
func CatalogTopping(snap *model.Snapshot, toppingID string, placement model.Placement, amount model.Amount) ToppingSelection {
	ts := ToppingSelection{
		ToppingID: toppingID,
		Name:      snap.ToppingName(toppingID),
		Placement: placement,
		Amount:    amount,
	}
	if t, ok := snap.Topping(toppingID); ok {
		ts.BasePrice = t.Price
		ts.CategoryID = t.ToppingCategoryID
	}
	if placement == model.PlacementWhole && amount == declaredAmount(snap, toppingID) {
		ts.BasePrice = 0
	}
	return ts
}

// declaredAmount is the seeded amount of a default topping, empty for any
// other topping.
func declaredAmount(snap *model.Snapshot, toppingID string) model.Amount {
	for _, d := range snap.DefaultToppings {
		if d.ToppingID != toppingID {
			continue
		}
		if !d.Amount.Valid() {
			return model.AmountNormal
		}
		return d.Amount
	}
	return ""
}
