package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Rl0h4w/mealty-food-creator/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	t.Run("EmptyNeedsRefresh", func(t *testing.T) {
		stale, err := store.NeedsRefresh(ctx)
		if err != nil {
			t.Fatalf("NeedsRefresh failed: %v", err)
		}
		if !stale {
			t.Error("Expected an empty catalog to need a refresh")
		}
	})

	items := []Item{
		{Name: "Гречка с курицей", Proteins: 25, Fats: 8, Carbs: 40, Calories: 330, Weight: 250, Price: 280},
		{Name: "Овсяная каша", Proteins: 7, Fats: 5, Carbs: 35, Calories: 210, Weight: 200, Price: 150},
	}

	t.Run("ReplaceAndLoad", func(t *testing.T) {
		if err := store.Replace(ctx, items); err != nil {
			t.Fatalf("Replace failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(loaded) != 2 {
			t.Fatalf("Expected 2 items, got %d", len(loaded))
		}
		if loaded[0].Name != "Гречка с курицей" {
			t.Errorf("Expected first item name to survive round trip, got '%s'", loaded[0].Name)
		}
		if loaded[0].Price != 280 {
			t.Errorf("Expected price 280, got %f", loaded[0].Price)
		}
	})

	t.Run("FreshAfterReplace", func(t *testing.T) {
		stale, err := store.NeedsRefresh(ctx)
		if err != nil {
			t.Fatalf("NeedsRefresh failed: %v", err)
		}
		if stale {
			t.Error("Expected a just-saved catalog to be fresh")
		}
	})

	t.Run("Count", func(t *testing.T) {
		n, err := store.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 2 {
			t.Errorf("Expected count 2, got %d", n)
		}
	})

	t.Run("ReplaceOverwrites", func(t *testing.T) {
		if err := store.Replace(ctx, items[:1]); err != nil {
			t.Fatalf("Replace failed: %v", err)
		}
		n, err := store.Count(ctx)
		if err != nil {
			t.Fatalf("Count failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected replace to drop old rows, got count %d", n)
		}
	})
}
