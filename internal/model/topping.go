package model

type Placement string

const (
	PlacementWhole Placement = "whole"
	PlacementLeft  Placement = "left"
	PlacementRight Placement = "right"
)

func (p Placement) Valid() bool {
	switch p {
	case PlacementWhole, PlacementLeft, PlacementRight:
		return true
	}
	return false
}

// IsHalf reports whether the topping covers only one half of the item.
func (p Placement) IsHalf() bool {
	return p == PlacementLeft || p == PlacementRight
}

type Amount string

const (
	AmountNormal Amount = "normal"
	AmountExtra  Amount = "extra"
)

func (a Amount) Valid() bool {
	return a == AmountNormal || a == AmountExtra
}

type Topping struct {
	ID                string  `db:"id" json:"id"`
	Name              string  `db:"name" json:"name"`
	Price             float64 `db:"price" json:"price"`
	ToppingCategoryID string  `db:"topping_category_id" json:"topping_category_id"`
	MenuCategoryID    string  `db:"menu_category_id" json:"menu_category_id"`
	DisplayOrder      int     `db:"display_order" json:"display_order"`
	IsActive          bool    `db:"is_active" json:"is_active"`
}

// SizeToppingPrice overrides a topping's base price for one size.
type SizeToppingPrice struct {
	ToppingID string  `db:"topping_id" json:"topping_id"`
	SizeID    string  `db:"size_id" json:"size_id"`
	Price     float64 `db:"price" json:"price"`
}
