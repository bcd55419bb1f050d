package dto

import "github.com/RandalBristow/pizza-palace-sub000/internal/model"

// StartSessionInput opens a session. A non-nil EditingLine switches the
// session to edit mode, restoring the line's choices.
type StartSessionInput struct {
	MenuItemID  string      `json:"menu_item_id"`
	SizeHint    string      `json:"size_hint"`
	EditingLine *model.Line `json:"editing_line"`
}

type ChooseItemInput struct {
	SessionID string `json:"session_id"`
	PanelID   string `json:"panel_id"`
	ItemID    string `json:"item_id"`
}

type SetToppingInput struct {
	SessionID string          `json:"session_id"`
	ToppingID string          `json:"topping_id"`
	Placement model.Placement `json:"placement"`
	Amount    model.Amount    `json:"amount"`
}

type RemoveToppingInput struct {
	SessionID string `json:"session_id"`
	ToppingID string `json:"topping_id"`
}
