package model

type MenuItem struct {
	BaseModel
	CategoryID  string  `db:"category_id" json:"category_id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	TemplateID  *string `db:"template_id" json:"template_id"` // Nullable: item is not customizable
	IsActive    bool    `db:"is_active" json:"is_active"`
}

// DefaultTopping is a topping that comes built in to a menu item.
type DefaultTopping struct {
	MenuItemID string `db:"menu_item_id" json:"menu_item_id"`
	ToppingID  string `db:"topping_id" json:"topping_id"`
	Amount     Amount `db:"amount" json:"amount"`
}

// DefaultSelection is the item pre-selected for a list panel.
type DefaultSelection struct {
	MenuItemID string `db:"menu_item_id" json:"menu_item_id"`
	PanelID    string `db:"panel_id" json:"panel_id"`
	ItemID     string `db:"item_id" json:"item_id"`
}
