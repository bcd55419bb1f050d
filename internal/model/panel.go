package model

type PanelKind string

const (
	PanelKindSize      PanelKind = "size"
	PanelKindFixedList PanelKind = "fixed_list"
	PanelKindTopping   PanelKind = "topping"
)

// Panel is one step of a customizer template.
type Panel struct {
	ID                    string    `db:"id" json:"id"`
	TemplateID            string    `db:"template_id" json:"template_id"`
	Kind                  PanelKind `db:"kind" json:"kind"`
	Title                 string    `db:"title" json:"title"`
	Subtitle              string    `db:"subtitle" json:"subtitle"`
	Message               string    `db:"message" json:"message"`
	DisplayOrder          int       `db:"display_order" json:"display_order"`
	IsActive              bool      `db:"is_active" json:"is_active"`
	Required              bool      `db:"is_required" json:"required"`
	ShowPlacementControls bool      `db:"show_placement_controls" json:"show_placement_controls"` // Topping panels only
}

type PanelItemKind string

const (
	PanelItemSizeRef     PanelItemKind = "size_ref"
	PanelItemCustomValue PanelItemKind = "custom_value"
	PanelItemToppingRef  PanelItemKind = "topping_ref"
)

type PanelItem struct {
	ID           string        `db:"id" json:"id"`
	PanelID      string        `db:"panel_id" json:"panel_id"`
	Kind         PanelItemKind `db:"kind" json:"kind"`
	SizeID       *string       `db:"size_id" json:"size_id,omitempty"`
	ToppingID    *string       `db:"topping_id" json:"topping_id,omitempty"`
	Name         string        `db:"name" json:"name"`   // CustomValue only
	Price        float64       `db:"price" json:"price"` // CustomValue only
	DisplayOrder int           `db:"display_order" json:"display_order"`
	IsActive     bool          `db:"is_active" json:"is_active"`
}

// VisibilityRule ties a panel (ChildItemID nil) or one of its items to the
// item chosen in the previous panel.
type VisibilityRule struct {
	ID           string  `db:"id" json:"id"`
	PanelID      string  `db:"panel_id" json:"panel_id"`
	ParentItemID string  `db:"parent_item_id" json:"parent_item_id"`
	ChildItemID  *string `db:"child_item_id" json:"child_item_id,omitempty"`
	IsVisible    bool    `db:"is_visible" json:"is_visible"`
}
