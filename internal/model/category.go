package model

// Category is a menu category. Sub-categories point at their parent and
// inherit the parent's toppings.
type Category struct {
	BaseModel
	ParentID  *string `db:"parent_id" json:"parent_id"` // Nullable
	Name      string  `db:"name" json:"name"`
	SortOrder int     `db:"sort_order" json:"sort_order"`
	IsActive  bool    `db:"is_active" json:"is_active"`
}

type ToppingCategory struct {
	ID           string `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
	IsActive     bool   `db:"is_active" json:"is_active"`
}
