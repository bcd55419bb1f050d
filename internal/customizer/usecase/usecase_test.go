package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/RandalBristow/pizza-palace-sub000/internal/catalog"
	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer"
	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer/dto"
	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/pricing"
	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/logger"
)

// --------------------------------------------------
// Fakes
// --------------------------------------------------

type fakeCatalog struct {
	snapshots map[string]*model.Snapshot
}

func (f *fakeCatalog) GetSnapshot(ctx context.Context, menuItemID string) (*model.Snapshot, error) {
	snap, ok := f.snapshots[menuItemID]
	if !ok {
		return nil, catalog.ErrMenuItemNotFound
	}
	return snap, nil
}

func (f *fakeCatalog) InvalidateSnapshots(ctx context.Context, menuItemID string) error {
	return nil
}

type fakeSessions struct {
	data    map[string]customizer.Session
	saveErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{data: map[string]customizer.Session{}}
}

func (f *fakeSessions) Save(ctx context.Context, s *customizer.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[s.ID] = *s
	return nil
}

func (f *fakeSessions) Find(ctx context.Context, id string) (*customizer.Session, error) {
	s, ok := f.data[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSessions) Delete(ctx context.Context, id string) error {
	delete(f.data, id)
	return nil
}

type published struct {
	line     model.Line
	replaces string
}

type fakePublisher struct {
	lines []published
	err   error
}

func (f *fakePublisher) PublishLine(ctx context.Context, line model.Line, replacesLineID string) error {
	if f.err != nil {
		return f.err
	}
	f.lines = append(f.lines, published{line: line, replaces: replacesLineID})
	return nil
}

// --------------------------------------------------
// Fixture
// --------------------------------------------------

func ptr(s string) *string { return &s }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func pizzaSnapshot() *model.Snapshot {
	return &model.Snapshot{
		MenuItem: model.MenuItem{
			BaseModel:  model.BaseModel{ID: "margherita"},
			CategoryID: "pizza",
			Name:       "Margherita",
			TemplateID: ptr("tpl"),
			IsActive:   true,
		},
		Panels: []model.Panel{
			{ID: "p-size", TemplateID: "tpl", Kind: model.PanelKindSize, Title: "Size", DisplayOrder: 1, IsActive: true, Required: true},
			{ID: "p-crust", TemplateID: "tpl", Kind: model.PanelKindFixedList, Title: "Crust", DisplayOrder: 2, IsActive: true, Required: true},
			{ID: "p-top", TemplateID: "tpl", Kind: model.PanelKindTopping, Title: "Toppings", DisplayOrder: 3, IsActive: true, ShowPlacementControls: true},
		},
		Items: []model.PanelItem{
			{ID: "i-small", PanelID: "p-size", Kind: model.PanelItemSizeRef, SizeID: ptr("s-small"), DisplayOrder: 1, IsActive: true},
			{ID: "i-large", PanelID: "p-size", Kind: model.PanelItemSizeRef, SizeID: ptr("s-large"), DisplayOrder: 2, IsActive: true},
			{ID: "i-thin", PanelID: "p-crust", Kind: model.PanelItemCustomValue, Name: "Thin", DisplayOrder: 1, IsActive: true},
			{ID: "i-stuffed", PanelID: "p-crust", Kind: model.PanelItemCustomValue, Name: "Stuffed", Price: 2.5, DisplayOrder: 2, IsActive: true},
		},
		Rules: []model.VisibilityRule{
			{ID: "r1", PanelID: "p-crust", ParentItemID: "i-large", ChildItemID: ptr("i-stuffed"), IsVisible: true},
		},
		Sizes: []model.Size{
			{ID: "s-small", Name: "Small", IsActive: true},
			{ID: "s-large", Name: "Large", IsActive: true},
		},
		SizePrices: []model.MenuItemSizePrice{
			{MenuItemID: "margherita", SizeID: "s-small", Price: 10},
			{MenuItemID: "margherita", SizeID: "s-large", Price: 14},
		},
		Toppings: []model.Topping{
			{ID: "cheese", Name: "Cheese", Price: 1, MenuCategoryID: "pizza", IsActive: true},
			{ID: "pepperoni", Name: "Pepperoni", Price: 1.5, MenuCategoryID: "pizza", IsActive: true},
		},
		ToppingPrices: []model.SizeToppingPrice{
			{ToppingID: "pepperoni", SizeID: "s-large", Price: 2},
		},
		DefaultToppings: []model.DefaultTopping{
			{MenuItemID: "margherita", ToppingID: "cheese", Amount: model.AmountNormal},
		},
	}
}

type testEnv struct {
	uc        customizer.UseCase
	catalog   *fakeCatalog
	sessions  *fakeSessions
	publisher *fakePublisher
}

func newTestEnv() *testEnv {
	sessions := newFakeSessions()
	publisher := &fakePublisher{}
	cat := &fakeCatalog{snapshots: map[string]*model.Snapshot{"margherita": pizzaSnapshot()}}
	return &testEnv{
		uc:        NewCustomizerUseCase(cat, sessions, publisher, pricing.DefaultConfig(), logger.NewNop()),
		catalog:   cat,
		sessions:  sessions,
		publisher: publisher,
	}
}

func (e *testEnv) start(t *testing.T) *dto.SessionView {
	t.Helper()
	view, err := e.uc.StartSession(context.Background(), &dto.StartSessionInput{MenuItemID: "margherita"})
	if err != nil {
		t.Fatal(err)
	}
	return view
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestStartSession(t *testing.T) {
	env := newTestEnv()
	view := env.start(t)

	if view.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if _, ok := env.sessions.data[view.SessionID]; !ok {
		t.Fatal("expected session to be saved")
	}
	if !almostEqual(view.Breakdown.Total, 10) || !view.CanConfirm {
		t.Fatalf("expected a confirmable 10.00 pizza, got total=%v canConfirm=%v", view.Breakdown.Total, view.CanConfirm)
	}
	if len(view.Panels) != 3 {
		t.Fatalf("expected 3 visible panels, got %d", len(view.Panels))
	}
}

func TestStartSessionErrors(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.uc.StartSession(ctx, &dto.StartSessionInput{})
	if !errors.Is(err, customizer.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, err = env.uc.StartSession(ctx, &dto.StartSessionInput{MenuItemID: "calzone"})
	if !errors.Is(err, catalog.ErrMenuItemNotFound) {
		t.Fatalf("expected ErrMenuItemNotFound, got %v", err)
	}

	env.sessions.saveErr = errors.New("redis down")
	_, err = env.uc.StartSession(ctx, &dto.StartSessionInput{MenuItemID: "margherita"})
	if !errors.Is(err, env.sessions.saveErr) {
		t.Fatalf("expected wrapped save error, got %v", err)
	}
}

func TestChooseItem(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	id := env.start(t).SessionID

	_, err := env.uc.ChooseItem(ctx, &dto.ChooseItemInput{SessionID: id, PanelID: "p-crust", ItemID: "i-stuffed"})
	if !errors.Is(err, customizer.ErrItemNotSelectable) {
		t.Fatalf("expected stuffed crust to be hidden for small, got %v", err)
	}

	if _, err := env.uc.ChooseItem(ctx, &dto.ChooseItemInput{SessionID: id, PanelID: "p-size", ItemID: "i-large"}); err != nil {
		t.Fatal(err)
	}
	view, err := env.uc.ChooseItem(ctx, &dto.ChooseItemInput{SessionID: id, PanelID: "p-crust", ItemID: "i-stuffed"})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(view.Breakdown.Total, 16.5) {
		t.Fatalf("expected 16.50, got %v", view.Breakdown.Total)
	}

	// Back to small drops the stuffed crust and blocks confirmation.
	view, err = env.uc.ChooseItem(ctx, &dto.ChooseItemInput{SessionID: id, PanelID: "p-size", ItemID: "i-small"})
	if err != nil {
		t.Fatal(err)
	}
	if view.CanConfirm || len(view.Missing) != 1 || view.Missing[0] != "p-crust" {
		t.Fatalf("expected crust to be missing, got canConfirm=%v missing=%v", view.CanConfirm, view.Missing)
	}

	_, err = env.uc.Confirm(ctx, id)
	if !errors.Is(err, customizer.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if len(env.publisher.lines) != 0 {
		t.Fatal("nothing must be published for an incomplete session")
	}
}

func TestToppings(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	id := env.start(t).SessionID

	if _, err := env.uc.ChooseItem(ctx, &dto.ChooseItemInput{SessionID: id, PanelID: "p-size", ItemID: "i-large"}); err != nil {
		t.Fatal(err)
	}

	view, err := env.uc.SetTopping(ctx, &dto.SetToppingInput{SessionID: id, ToppingID: "pepperoni"})
	if err != nil {
		t.Fatal(err)
	}
	// Cheese uses the free credit, pepperoni is charged at the large price.
	if !almostEqual(view.Breakdown.Total, 16) {
		t.Fatalf("expected 16.00, got %v", view.Breakdown.Total)
	}

	view, err = env.uc.RemoveTopping(ctx, &dto.RemoveToppingInput{SessionID: id, ToppingID: "cheese"})
	if err != nil {
		t.Fatal(err)
	}
	// Pepperoni now takes the credit cheese left behind.
	if !almostEqual(view.Breakdown.Total, 14) {
		t.Fatalf("expected 14.00 after swapping cheese for pepperoni, got %v", view.Breakdown.Total)
	}

	view, err = env.uc.SetTopping(ctx, &dto.SetToppingInput{SessionID: id, ToppingID: "pepperoni", Placement: model.PlacementLeft, Amount: model.AmountExtra})
	if err != nil {
		t.Fatal(err)
	}
	// Two units at 2.00, one covered by the credit, half placement.
	if !almostEqual(view.Breakdown.Total, 15) {
		t.Fatalf("expected 15.00, got %v", view.Breakdown.Total)
	}

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"bad placement", func() error {
			_, err := env.uc.SetTopping(ctx, &dto.SetToppingInput{SessionID: id, ToppingID: "pepperoni", Placement: "top"})
			return err
		}, customizer.ErrInvalidTopping},
		{"unknown topping", func() error {
			_, err := env.uc.SetTopping(ctx, &dto.SetToppingInput{SessionID: id, ToppingID: "anchovy"})
			return err
		}, customizer.ErrToppingNotFound},
		{"remove unselected", func() error {
			_, err := env.uc.RemoveTopping(ctx, &dto.RemoveToppingInput{SessionID: id, ToppingID: "cheese"})
			return err
		}, customizer.ErrToppingNotFound},
		{"unknown session", func() error {
			_, err := env.uc.SetTopping(ctx, &dto.SetToppingInput{SessionID: "nope", ToppingID: "cheese"})
			return err
		}, customizer.ErrSessionNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestConfirm(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	id := env.start(t).SessionID

	if _, err := env.uc.SetTopping(ctx, &dto.SetToppingInput{SessionID: id, ToppingID: "pepperoni", Placement: model.PlacementRight}); err != nil {
		t.Fatal(err)
	}

	line, err := env.uc.Confirm(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if line.ID == "" || line.Size != "Small" || !almostEqual(line.UnitPrice, 10.75) {
		t.Fatalf("unexpected line: %+v", line)
	}
	if len(env.publisher.lines) != 1 || env.publisher.lines[0].line.ID != line.ID || env.publisher.lines[0].replaces != "" {
		t.Fatalf("expected the line to be published once, got %+v", env.publisher.lines)
	}

	if _, err := env.uc.GetSession(ctx, id); !errors.Is(err, customizer.ErrSessionNotFound) {
		t.Fatalf("expected the session to be gone, got %v", err)
	}
}

func TestSessionKeepsStartingCatalog(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	id := env.start(t).SessionID

	if _, err := env.uc.ChooseItem(ctx, &dto.ChooseItemInput{SessionID: id, PanelID: "p-size", ItemID: "i-large"}); err != nil {
		t.Fatal(err)
	}

	// The menu is repriced and stuffed crust is retired mid-session.
	changed := pizzaSnapshot()
	changed.SizePrices[1].Price = 20
	changed.ToppingPrices[0].Price = 5
	changed.Items[3].IsActive = false
	env.catalog.snapshots["margherita"] = changed

	if _, err := env.uc.ChooseItem(ctx, &dto.ChooseItemInput{SessionID: id, PanelID: "p-crust", ItemID: "i-stuffed"}); err != nil {
		t.Fatalf("expected stuffed crust to stay selectable, got %v", err)
	}
	view, err := env.uc.SetTopping(ctx, &dto.SetToppingInput{SessionID: id, ToppingID: "pepperoni", Placement: model.PlacementRight})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(view.Breakdown.Total, 17.5) {
		t.Fatalf("expected view total 17.5, got %v", view.Breakdown.Total)
	}

	line, err := env.uc.Confirm(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(line.UnitPrice, 17.5) {
		t.Fatalf("expected line priced on the starting catalog at 17.5, got %v", line.UnitPrice)
	}
	for _, tp := range line.Toppings {
		if tp.ID == "pepperoni" && !almostEqual(tp.Price, 1) {
			t.Errorf("expected pepperoni at 1, got %v", tp.Price)
		}
	}

	// New sessions see the change.
	fresh, err := env.uc.StartSession(ctx, &dto.StartSessionInput{MenuItemID: "margherita", SizeHint: "large"})
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(fresh.Breakdown.Total, 20) {
		t.Fatalf("expected a new session at 20, got %v", fresh.Breakdown.Total)
	}
}

func TestConfirmPublishFailureKeepsSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	id := env.start(t).SessionID
	env.publisher.err = errors.New("kafka unavailable")

	if _, err := env.uc.Confirm(ctx, id); !errors.Is(err, env.publisher.err) {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
	if _, err := env.uc.GetSession(ctx, id); err != nil {
		t.Fatalf("expected session to survive a failed publish, got %v", err)
	}
}

func TestEditExistingLine(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	editing := &model.Line{
		ID:         "line-7",
		MenuItemID: "margherita",
		Name:       "Margherita",
		Size:       "Large",
		Selections: []model.LineSelection{{PanelTitle: "Crust", ItemName: "Stuffed", Price: 2.5}},
		Toppings: []model.LineTopping{
			{ID: "pepperoni", Name: "Pepperoni", Placement: model.PlacementWhole, Amount: model.AmountNormal, Price: 0},
		},
	}
	view, err := env.uc.StartSession(ctx, &dto.StartSessionInput{EditingLine: editing})
	if err != nil {
		t.Fatal(err)
	}
	if view.EditingLineID != "line-7" {
		t.Fatalf("expected editing line id, got %q", view.EditingLineID)
	}

	line, err := env.uc.Confirm(ctx, view.SessionID)
	if err != nil {
		t.Fatal(err)
	}
	if line.ID != "line-7" || line.Size != "Large" {
		t.Fatalf("unexpected line: %+v", line)
	}
	if len(line.Selections) != 1 || line.Selections[0].ItemName != "Stuffed" {
		t.Fatalf("expected stuffed crust to be restored, got %+v", line.Selections)
	}
	if got := env.publisher.lines[0].replaces; got != "line-7" {
		t.Fatalf("expected the published line to replace line-7, got %q", got)
	}
}

func TestAbandon(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	id := env.start(t).SessionID

	if err := env.uc.Abandon(ctx, id); err != nil {
		t.Fatal(err)
	}
	if len(env.sessions.data) != 0 {
		t.Fatal("expected session to be deleted")
	}
	if err := env.uc.Abandon(ctx, id); !errors.Is(err, customizer.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
