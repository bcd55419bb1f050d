package cart

import (
	"context"

	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
)

const EventLineFinalized = "LineFinalized"

// Publisher hands a confirmed line to the cart. Replacing an existing line
// is signalled by ReplacesLineID.
type Publisher interface {
	PublishLine(ctx context.Context, line model.Line, replacesLineID string) error
}
