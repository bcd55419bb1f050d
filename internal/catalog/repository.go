package catalog

import (
	"context"

	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
)

type Repository interface {
	FindMenuItem(ctx context.Context, id string) (*model.MenuItem, error)
	ListPanels(ctx context.Context, templateID string) ([]model.Panel, error)
	ListPanelItems(ctx context.Context, templateID string) ([]model.PanelItem, error)
	ListVisibilityRules(ctx context.Context, templateID string) ([]model.VisibilityRule, error)
	ListSizes(ctx context.Context) ([]model.Size, error)
	ListMenuItemSizePrices(ctx context.Context, menuItemID string) ([]model.MenuItemSizePrice, error)
	ListCategoryAncestors(ctx context.Context, categoryID string) ([]model.Category, error)

	// Toppings of the item's menu category and its ancestors, plus any the
	// item or its template references.
	ListToppingsForMenuItem(ctx context.Context, item *model.MenuItem) ([]model.Topping, error)
	ListToppingCategories(ctx context.Context) ([]model.ToppingCategory, error)
	ListSizeToppingPrices(ctx context.Context) ([]model.SizeToppingPrice, error)

	ListDefaultToppings(ctx context.Context, menuItemID string) ([]model.DefaultTopping, error)
	ListDefaultSelections(ctx context.Context, menuItemID string) ([]model.DefaultSelection, error)
}
