package catalog

import "testing"

func sampleItems() []Item {
	return []Item{
		{ID: 1, Name: "Куриная грудка с рисом"},
		{ID: 2, Name: "Творожная запеканка"},
		{ID: 3, Name: "Лосось с овощами"},
		{ID: 4, Name: "Суп куриный"},
	}
}

func TestFilter(t *testing.T) {
	t.Run("EmptyExclusions", func(t *testing.T) {
		items := sampleItems()
		filtered := Filter(items, nil)
		if len(filtered) != len(items) {
			t.Errorf("Expected all %d items, got %d", len(items), len(filtered))
		}
	})

	t.Run("CaseInsensitiveSubstring", func(t *testing.T) {
		filtered := Filter(sampleItems(), []string{"КУРИН"})
		if len(filtered) != 2 {
			t.Fatalf("Expected 2 items after exclusion, got %d", len(filtered))
		}
		for _, it := range filtered {
			if it.ID == 1 || it.ID == 4 {
				t.Errorf("Item %d should have been excluded", it.ID)
			}
		}
	})

	t.Run("WhitespaceOnlyExclusionIgnored", func(t *testing.T) {
		filtered := Filter(sampleItems(), []string{"  ", ""})
		if len(filtered) != 4 {
			t.Errorf("Expected blank exclusions to be a no-op, got %d items", len(filtered))
		}
	})

	t.Run("MatchesEverything", func(t *testing.T) {
		filtered := Filter(sampleItems(), []string{"о", "куриный"})
		if len(filtered) != 0 {
			t.Errorf("Expected empty catalog, got %d items", len(filtered))
		}
	})
}
