package catalog

import (
	"context"
	"fmt"
	"log"
)

// Source supplies a fresh catalog, typically by scraping the storefront.
type Source interface {
	FetchItems(ctx context.Context) ([]Item, error)
}

// Service combines the persistent store with a Source and enforces the
// freshness policy: reload when the stored catalog is empty or stale.
type Service struct {
	store  *Store
	source Source
}

// NewService creates a new Service.
func NewService(store *Store, source Source) *Service {
	return &Service{store: store, source: source}
}

// Ensure returns a ready catalog, refreshing it from the source first if the
// stored one is stale or empty.
func (s *Service) Ensure(ctx context.Context) ([]Item, error) {
	stale, err := s.store.NeedsRefresh(ctx)
	if err != nil {
		return nil, err
	}
	if !stale {
		return s.store.Load(ctx)
	}

	log.Printf("Catalog is stale or empty, refreshing from source...")
	items, err := s.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Refresh fetches the catalog from the source and replaces the stored one.
func (s *Service) Refresh(ctx context.Context) ([]Item, error) {
	items, err := s.source.FetchItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("source returned an empty catalog")
	}
	if err := s.store.Replace(ctx, items); err != nil {
		return nil, err
	}
	log.Printf("Catalog refreshed: %d products saved.", len(items))
	return s.store.Load(ctx)
}
