package customizer

import (
	"errors"
	"time"

	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/selection"
	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
)

var (
	ErrSessionNotFound   = errors.New("customization session not found")
	ErrItemNotSelectable = errors.New("item is not selectable in this panel")
	ErrToppingNotFound   = errors.New("topping not found")
	ErrInvalidTopping    = errors.New("invalid topping placement or amount")
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotReady          = errors.New("required panels are missing a selection")
)

// Session is one buyer's in-progress customization of a menu item.
type Session struct {
	ID            string        `json:"id"`
	MenuItemID    string        `json:"menu_item_id"`
	SizeHint      string        `json:"size_hint,omitempty"`
	EditingLineID string        `json:"editing_line_id,omitempty"`
	Selections    selection.Map `json:"selections"`
	// Snapshot is the catalog the session started on. It is kept for the
	// whole session so every step is priced against the same data.
	Snapshot  *model.Snapshot `json:"snapshot"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
