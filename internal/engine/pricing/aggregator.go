package pricing

// Component is the price contributed by one non-topping panel selection.
type Component struct {
	PanelID    string  `json:"panel_id"`
	PanelTitle string  `json:"panel_title"`
	ItemID     string  `json:"item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
}

// Breakdown is the itemized price of a configured item. Amounts are unrounded.
type Breakdown struct {
	Components   []Component `json:"components"`
	Toppings     Allocation  `json:"toppings"`
	Subtotal     float64     `json:"subtotal"`
	ToppingTotal float64     `json:"topping_total"`
	Total        float64     `json:"total"`
}

func Aggregate(components []Component, toppings Allocation) Breakdown {
	b := Breakdown{
		Components:   components,
		Toppings:     toppings,
		ToppingTotal: toppings.Total,
	}
	for _, c := range components {
		b.Subtotal += c.Price
	}
	b.Total = b.Subtotal + b.ToppingTotal
	return b
}

// DisplayTotal rounds every component and topping charge to cents and sums
// them, which is what the buyer sees itemized on screen.
func (b Breakdown) DisplayTotal() float64 {
	var total float64
	for _, c := range b.Components {
		total += RoundCents(c.Price)
	}
	for _, ch := range b.Toppings.Charges {
		total += RoundCents(ch.Price)
	}
	return RoundCents(total)
}
