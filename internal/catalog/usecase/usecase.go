package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RandalBristow/pizza-palace-sub000/internal/catalog"
	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/cache"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/logger"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const snapshotKeyPrefix = "catalog:snapshot:"

type catalogUseCase struct {
	repo   catalog.Repository
	cache  *cache.RedisClient // optional shared tier
	local  *gocache.Cache
	ttl    time.Duration
	labels model.Labels
	logger logger.ZapLogger
}

// NewCatalogUseCase builds the snapshot loader. redis may be nil, in which
// case only the in-process cache is used.
func NewCatalogUseCase(repo catalog.Repository, redis *cache.RedisClient, ttl time.Duration, labels model.Labels, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		cache:  redis,
		local:  gocache.New(ttl, 2*ttl),
		ttl:    ttl,
		labels: labels,
		logger: log,
	}
}

func snapshotKey(menuItemID string) string {
	return snapshotKeyPrefix + menuItemID
}

func (uc *catalogUseCase) GetSnapshot(ctx context.Context, menuItemID string) (*model.Snapshot, error) {
	key := snapshotKey(menuItemID)

	// 1. In-process cache
	if v, ok := uc.local.Get(key); ok {
		return v.(*model.Snapshot), nil
	}

	// 2. Shared cache
	if uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, key).Result()
		if err == nil {
			var snap model.Snapshot
			if err := json.Unmarshal([]byte(val), &snap); err == nil {
				uc.local.Set(key, &snap, gocache.DefaultExpiration)
				return &snap, nil
			}
		}
	}

	// 3. Database
	snap, err := uc.load(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	uc.local.Set(key, snap, gocache.DefaultExpiration)
	if uc.cache != nil {
		if data, err := json.Marshal(snap); err == nil {
			if err := uc.cache.Client.Set(ctx, key, data, uc.ttl).Err(); err != nil {
				uc.logger.Warn("failed to cache snapshot", zap.String("menu_item_id", menuItemID), zap.Error(err))
			}
		}
	}
	return snap, nil
}

func (uc *catalogUseCase) load(ctx context.Context, menuItemID string) (*model.Snapshot, error) {
	item, err := uc.repo.FindMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("find menu item: %w", err)
	}
	if item == nil || !item.IsActive {
		return nil, catalog.ErrMenuItemNotFound
	}
	if item.TemplateID == nil || *item.TemplateID == "" {
		return nil, catalog.ErrNotCustomizable
	}
	templateID := *item.TemplateID

	snap := &model.Snapshot{MenuItem: *item, Labels: uc.labels}

	if snap.Panels, err = uc.repo.ListPanels(ctx, templateID); err != nil {
		return nil, fmt.Errorf("list panels: %w", err)
	}
	if snap.Items, err = uc.repo.ListPanelItems(ctx, templateID); err != nil {
		return nil, fmt.Errorf("list panel items: %w", err)
	}
	if snap.Rules, err = uc.repo.ListVisibilityRules(ctx, templateID); err != nil {
		return nil, fmt.Errorf("list visibility rules: %w", err)
	}
	if snap.Sizes, err = uc.repo.ListSizes(ctx); err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	if snap.SizePrices, err = uc.repo.ListMenuItemSizePrices(ctx, item.ID); err != nil {
		return nil, fmt.Errorf("list size prices: %w", err)
	}
	if snap.Categories, err = uc.repo.ListCategoryAncestors(ctx, item.CategoryID); err != nil {
		return nil, fmt.Errorf("list category ancestors: %w", err)
	}
	if snap.Toppings, err = uc.repo.ListToppingsForMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("list toppings: %w", err)
	}
	if snap.ToppingCategories, err = uc.repo.ListToppingCategories(ctx); err != nil {
		return nil, fmt.Errorf("list topping categories: %w", err)
	}
	if snap.ToppingPrices, err = uc.repo.ListSizeToppingPrices(ctx); err != nil {
		return nil, fmt.Errorf("list size topping prices: %w", err)
	}
	if snap.DefaultToppings, err = uc.repo.ListDefaultToppings(ctx, item.ID); err != nil {
		return nil, fmt.Errorf("list default toppings: %w", err)
	}
	if snap.DefaultSelections, err = uc.repo.ListDefaultSelections(ctx, item.ID); err != nil {
		return nil, fmt.Errorf("list default selections: %w", err)
	}

	uc.logger.Debug("loaded catalog snapshot",
		zap.String("menu_item_id", item.ID),
		zap.Int("panels", len(snap.Panels)),
		zap.Int("items", len(snap.Items)),
		zap.Int("toppings", len(snap.Toppings)),
	)
	return snap, nil
}

func (uc *catalogUseCase) InvalidateSnapshots(ctx context.Context, menuItemID string) error {
	if menuItemID == "" {
		uc.local.Flush()
		if uc.cache != nil {
			return uc.cache.DeleteByPattern(ctx, snapshotKeyPrefix+"*")
		}
		return nil
	}

	key := snapshotKey(menuItemID)
	uc.local.Delete(key)
	if uc.cache != nil {
		return uc.cache.Client.Del(ctx, key).Err()
	}
	return nil
}
