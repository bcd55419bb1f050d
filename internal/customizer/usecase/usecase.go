package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RandalBristow/pizza-palace-sub000/internal/cart"
	"github.com/RandalBristow/pizza-palace-sub000/internal/catalog"
	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer"
	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer/dto"
	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/pricing"
	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/selection"
	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/wizard"
	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type customizerUseCase struct {
	catalog   catalog.UseCase
	sessions  customizer.SessionRepository
	publisher cart.Publisher
	pricing   pricing.Config
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewCustomizerUseCase(
	cat catalog.UseCase,
	sessions customizer.SessionRepository,
	publisher cart.Publisher,
	cfg pricing.Config,
	log logger.ZapLogger,
) customizer.UseCase {
	return &customizerUseCase{
		catalog:   cat,
		sessions:  sessions,
		publisher: publisher,
		pricing:   cfg,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *customizerUseCase) StartSession(ctx context.Context, input *dto.StartSessionInput) (*dto.SessionView, error) {
	menuItemID := input.MenuItemID
	if menuItemID == "" && input.EditingLine != nil {
		menuItemID = input.EditingLine.MenuItemID
	}
	if menuItemID == "" {
		return nil, fmt.Errorf("%w: menu_item_id is required", customizer.ErrInvalidInput)
	}

	snap, err := uc.catalog.GetSnapshot(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	w := wizard.New(snap, uc.pricing)

	now := uc.now()
	s := &customizer.Session{
		ID:         uuid.New().String(),
		MenuItemID: menuItemID,
		SizeHint:   input.SizeHint,
		Selections: w.Initial(input.SizeHint, input.EditingLine),
		Snapshot:   snap,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if input.EditingLine != nil {
		s.EditingLineID = input.EditingLine.ID
	}

	if err := uc.sessions.Save(ctx, s); err != nil {
		uc.logger.Error("failed to save session", zap.String("menu_item_id", menuItemID), zap.Error(err))
		return nil, fmt.Errorf("save session: %w", err)
	}

	uc.logger.Info("customization session started",
		zap.String("session_id", s.ID),
		zap.String("menu_item_id", menuItemID),
		zap.Bool("editing", s.EditingLineID != ""),
	)
	return sessionView(s, w), nil
}

func (uc *customizerUseCase) GetSession(ctx context.Context, id string) (*dto.SessionView, error) {
	s, w, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return sessionView(s, w), nil
}

func (uc *customizerUseCase) ChooseItem(ctx context.Context, input *dto.ChooseItemInput) (*dto.SessionView, error) {
	s, w, err := uc.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	next, ok := w.Choose(s.Selections, input.PanelID, input.ItemID)
	if !ok {
		return nil, fmt.Errorf("%w: panel %s item %s", customizer.ErrItemNotSelectable, input.PanelID, input.ItemID)
	}
	return uc.update(ctx, s, w, next)
}

func (uc *customizerUseCase) SetTopping(ctx context.Context, input *dto.SetToppingInput) (*dto.SessionView, error) {
	placement := input.Placement
	if placement == "" {
		placement = model.PlacementWhole
	}
	amount := input.Amount
	if amount == "" {
		amount = model.AmountNormal
	}
	if !placement.Valid() || !amount.Valid() {
		return nil, fmt.Errorf("%w: placement %q amount %q", customizer.ErrInvalidTopping, input.Placement, input.Amount)
	}

	s, w, err := uc.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	next, ok := w.SetTopping(s.Selections, input.ToppingID, placement, amount)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not offered", customizer.ErrToppingNotFound, input.ToppingID)
	}
	return uc.update(ctx, s, w, next)
}

func (uc *customizerUseCase) RemoveTopping(ctx context.Context, input *dto.RemoveToppingInput) (*dto.SessionView, error) {
	s, w, err := uc.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	next, ok := w.RemoveTopping(s.Selections, input.ToppingID)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not selected", customizer.ErrToppingNotFound, input.ToppingID)
	}
	return uc.update(ctx, s, w, next)
}

func (uc *customizerUseCase) Confirm(ctx context.Context, id string) (*model.Line, error) {
	s, w, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if ready, missing := w.Ready(s.Selections); !ready {
		return nil, fmt.Errorf("%w: %s", customizer.ErrNotReady, strings.Join(missing, ", "))
	}

	line := w.Finalize(s.Selections)
	line.ID = s.EditingLineID
	if line.ID == "" {
		line.ID = uuid.New().String()
	}

	if err := uc.publisher.PublishLine(ctx, line, s.EditingLineID); err != nil {
		uc.logger.Error("failed to publish line",
			zap.String("session_id", s.ID),
			zap.String("line_id", line.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("publish line: %w", err)
	}

	if err := uc.sessions.Delete(ctx, s.ID); err != nil {
		// The line is already in the cart; an orphaned session just expires.
		uc.logger.Warn("failed to delete confirmed session", zap.String("session_id", s.ID), zap.Error(err))
	}

	uc.logger.Info("customization confirmed",
		zap.String("session_id", s.ID),
		zap.String("line_id", line.ID),
		zap.Float64("unit_price", line.UnitPrice),
	)
	return &line, nil
}

func (uc *customizerUseCase) Abandon(ctx context.Context, id string) error {
	s, err := uc.sessions.Find(ctx, id)
	if err != nil {
		return fmt.Errorf("find session: %w", err)
	}
	if s == nil {
		return customizer.ErrSessionNotFound
	}
	if err := uc.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	uc.logger.Info("customization abandoned", zap.String("session_id", id))
	return nil
}

// load fetches the session and builds a wizard over the snapshot it was
// started on. Catalog changes only reach buyers who start a new session.
func (uc *customizerUseCase) load(ctx context.Context, id string) (*customizer.Session, *wizard.Wizard, error) {
	s, err := uc.sessions.Find(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find session: %w", err)
	}
	if s == nil {
		return nil, nil, customizer.ErrSessionNotFound
	}

	if s.Snapshot == nil {
		// Sessions saved before snapshots were stored.
		snap, err := uc.catalog.GetSnapshot(ctx, s.MenuItemID)
		if err != nil {
			return nil, nil, err
		}
		s.Snapshot = snap
	}
	return s, wizard.New(s.Snapshot, uc.pricing), nil
}

func (uc *customizerUseCase) update(ctx context.Context, s *customizer.Session, w *wizard.Wizard, next selection.Map) (*dto.SessionView, error) {
	s.Selections = next
	s.UpdatedAt = uc.now()
	if err := uc.sessions.Save(ctx, s); err != nil {
		uc.logger.Error("failed to save session", zap.String("session_id", s.ID), zap.Error(err))
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sessionView(s, w), nil
}

func sessionView(s *customizer.Session, w *wizard.Wizard) *dto.SessionView {
	return &dto.SessionView{
		SessionID:     s.ID,
		EditingLineID: s.EditingLineID,
		View:          w.View(s.Selections),
	}
}
