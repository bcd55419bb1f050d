package catalog

import (
	"context"
	"errors"

	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrNotCustomizable  = errors.New("menu item has no customizer template")
)

type UseCase interface {
	// GetSnapshot returns the catalog data needed to customize a menu item.
	GetSnapshot(ctx context.Context, menuItemID string) (*model.Snapshot, error)
	// InvalidateSnapshots drops the cached snapshot of one menu item, or of all when menuItemID is empty.
	InvalidateSnapshots(ctx context.Context, menuItemID string) error
}
