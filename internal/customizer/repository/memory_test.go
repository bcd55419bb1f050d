package repository

import (
	"context"
	"testing"
	"time"

	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer"
	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/selection"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(time.Minute)

	s := &customizer.Session{
		ID:         "s1",
		MenuItemID: "pizza",
		Selections: selection.New().With("p-size", selection.PanelSelection{ItemID: "i-large", Name: "Large", Price: 12}),
	}
	if err := repo.Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's copy must not leak into the store.
	s.MenuItemID = "changed"

	got, err := repo.Find(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.MenuItemID != "pizza" {
		t.Fatalf("unexpected session: %+v", got)
	}
	if id, ok := got.Selections.SelectedItem("p-size"); !ok || id != "i-large" {
		t.Fatalf("selections not kept, got %q", id)
	}

	if err := repo.Delete(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	got, err = repo.Find(ctx, "s1")
	if err != nil || got != nil {
		t.Fatalf("expected nil, nil after delete, got %+v, %v", got, err)
	}
}

func TestMemoryRepositoryExpires(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(10 * time.Millisecond)
	if err := repo.Save(ctx, &customizer.Session{ID: "s1"}); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)

	got, err := repo.Find(ctx, "s1")
	if err != nil || got != nil {
		t.Fatalf("expected expired session, got %+v, %v", got, err)
	}
}
