package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindMenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	// ids are uuid columns; anything else cannot match.
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var item model.MenuItem
	query := `
        SELECT id, category_id, name, description, template_id, is_active, created_at, updated_at
        FROM menu_items WHERE id = $1 LIMIT 1
    `
	err := r.DB.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) ListPanels(ctx context.Context, templateID string) ([]model.Panel, error) {
	panels := []model.Panel{}
	query := `
        SELECT id, template_id, kind, title, subtitle, message, display_order,
               is_active, is_required, show_placement_controls
        FROM panels
        WHERE template_id = $1
        ORDER BY display_order ASC, id ASC
    `
	err := r.DB.SelectContext(ctx, &panels, query, templateID)
	return panels, err
}

func (r *PGRepository) ListPanelItems(ctx context.Context, templateID string) ([]model.PanelItem, error) {
	items := []model.PanelItem{}
	query := `
        SELECT pi.id, pi.panel_id, pi.kind, pi.size_id, pi.topping_id, pi.name, pi.price,
               pi.display_order, pi.is_active
        FROM panel_items pi
        INNER JOIN panels p ON p.id = pi.panel_id
        WHERE p.template_id = $1
        ORDER BY pi.display_order ASC, pi.id ASC
    `
	err := r.DB.SelectContext(ctx, &items, query, templateID)
	return items, err
}

func (r *PGRepository) ListVisibilityRules(ctx context.Context, templateID string) ([]model.VisibilityRule, error) {
	rules := []model.VisibilityRule{}
	query := `
        SELECT r.id, r.panel_id, r.parent_item_id, r.child_item_id, r.is_visible
        FROM panel_visibility_rules r
        INNER JOIN panels p ON p.id = r.panel_id
        WHERE p.template_id = $1
    `
	err := r.DB.SelectContext(ctx, &rules, query, templateID)
	return rules, err
}

func (r *PGRepository) ListSizes(ctx context.Context) ([]model.Size, error) {
	sizes := []model.Size{}
	query := `SELECT id, name, display_order, is_active FROM sizes ORDER BY display_order ASC, name ASC`
	err := r.DB.SelectContext(ctx, &sizes, query)
	return sizes, err
}

func (r *PGRepository) ListMenuItemSizePrices(ctx context.Context, menuItemID string) ([]model.MenuItemSizePrice, error) {
	prices := []model.MenuItemSizePrice{}
	query := `SELECT menu_item_id, size_id, price FROM menu_item_size_prices WHERE menu_item_id = $1`
	err := r.DB.SelectContext(ctx, &prices, query, menuItemID)
	return prices, err
}

func (r *PGRepository) ListToppingsForMenuItem(ctx context.Context, item *model.MenuItem) ([]model.Topping, error) {
	toppings := []model.Topping{}
	templateID := ""
	if item.TemplateID != nil {
		templateID = *item.TemplateID
	}

	query := `
        WITH RECURSIVE chain AS (
            SELECT id, parent_id FROM categories WHERE id = :category_id
            UNION ALL
            SELECT c.id, c.parent_id FROM categories c INNER JOIN chain ON c.id = chain.parent_id
        )
        SELECT t.id, t.name, t.price,
               COALESCE(t.topping_category_id::text, '') AS topping_category_id,
               COALESCE(t.menu_category_id::text, '') AS menu_category_id,
               t.display_order, t.is_active
        FROM toppings t
        WHERE t.menu_category_id IN (SELECT id FROM chain)
           OR t.id IN (
                SELECT pi.topping_id FROM panel_items pi
                INNER JOIN panels p ON p.id = pi.panel_id
                WHERE p.template_id = :template_id AND pi.topping_id IS NOT NULL
           )
           OR t.id IN (
                SELECT topping_id FROM menu_item_default_toppings WHERE menu_item_id = :menu_item_id
           )
        ORDER BY t.display_order ASC, t.name ASC
    `
	args := map[string]interface{}{
		"category_id":  item.CategoryID,
		"template_id":  templateID,
		"menu_item_id": item.ID,
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &toppings, args)
	return toppings, err
}

// ListCategoryAncestors returns the parents of categoryID, nearest first.
func (r *PGRepository) ListCategoryAncestors(ctx context.Context, categoryID string) ([]model.Category, error) {
	categories := []model.Category{}
	query := `
        WITH RECURSIVE chain AS (
            SELECT c.*, 0 AS depth FROM categories c WHERE c.id = $1
            UNION ALL
            SELECT p.*, chain.depth + 1 FROM categories p INNER JOIN chain ON p.id = chain.parent_id
        )
        SELECT id, parent_id, name, sort_order, is_active, created_at, updated_at
        FROM chain
        WHERE depth > 0
        ORDER BY depth ASC
    `
	err := r.DB.SelectContext(ctx, &categories, query, categoryID)
	return categories, err
}

func (r *PGRepository) ListToppingCategories(ctx context.Context) ([]model.ToppingCategory, error) {
	categories := []model.ToppingCategory{}
	query := `SELECT id, name, display_order, is_active FROM topping_categories ORDER BY display_order ASC, name ASC`
	err := r.DB.SelectContext(ctx, &categories, query)
	return categories, err
}

func (r *PGRepository) ListSizeToppingPrices(ctx context.Context) ([]model.SizeToppingPrice, error) {
	prices := []model.SizeToppingPrice{}
	query := `SELECT topping_id, size_id, price FROM size_topping_prices`
	err := r.DB.SelectContext(ctx, &prices, query)
	return prices, err
}

func (r *PGRepository) ListDefaultToppings(ctx context.Context, menuItemID string) ([]model.DefaultTopping, error) {
	defaults := []model.DefaultTopping{}
	query := `
        SELECT menu_item_id, topping_id, amount
        FROM menu_item_default_toppings
        WHERE menu_item_id = $1
        ORDER BY position ASC
    `
	err := r.DB.SelectContext(ctx, &defaults, query, menuItemID)
	return defaults, err
}

func (r *PGRepository) ListDefaultSelections(ctx context.Context, menuItemID string) ([]model.DefaultSelection, error) {
	defaults := []model.DefaultSelection{}
	query := `SELECT menu_item_id, panel_id, item_id FROM menu_item_default_selections WHERE menu_item_id = $1`
	err := r.DB.SelectContext(ctx, &defaults, query, menuItemID)
	return defaults, err
}
