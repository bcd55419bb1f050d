package model

// Line is a configured menu item as the cart stores it. Topping prices are
// final chargeable prices, not base prices.
type Line struct {
	ID         string          `json:"id,omitempty"`
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	UnitPrice  float64         `json:"unit_price"`
	Size       string          `json:"size,omitempty"`
	Selections []LineSelection `json:"selections"`
	Toppings   []LineTopping   `json:"toppings"`
}

type LineSelection struct {
	PanelTitle string  `json:"panel_title"`
	ItemName   string  `json:"item_name"`
	Price      float64 `json:"price"`
}

type LineTopping struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Placement Placement `json:"placement"`
	Amount    Amount    `json:"amount"`
	Price     float64   `json:"price"`
}
