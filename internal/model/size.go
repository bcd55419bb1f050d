package model

type Size struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
	IsActive     bool   `db:"is_active" json:"is_active"`
}

// MenuItemSizePrice is the price of a menu item in a given size.
type MenuItemSizePrice struct {
	MenuItemID string  `db:"menu_item_id" json:"menu_item_id"`
	SizeID     string  `db:"size_id" json:"size_id"`
	Price      float64 `db:"price" json:"price"`
}
