package dto

import "github.com/RandalBristow/pizza-palace-sub000/internal/engine/wizard"

type SessionView struct {
	SessionID     string `json:"session_id"`
	EditingLineID string `json:"editing_line_id,omitempty"`
	wizard.View
}
