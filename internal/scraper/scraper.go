// Package scraper acquires the product catalog from the mealty.ru
// storefront. Nutrients on the site are listed per 100 g; they are scaled by
// the portion weight so stored items carry per-portion values.
package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Rl0h4w/mealty-food-creator/internal/catalog"
)

// Scraper fetches and parses the menu page.
type Scraper struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a Scraper for the given storefront base URL.
func New(baseURL string) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
	}
}

// FetchItems downloads the menu and extracts all product cards. Cards with
// missing or malformed fields are skipped.
func (s *Scraper) FetchItems(ctx context.Context) ([]catalog.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("menu fetch failed: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse menu HTML: %w", err)
	}

	var items []catalog.Item
	doc.Find(".meal-card").Each(func(i int, card *goquery.Selection) {
		item, err := extractItem(card)
		if err != nil {
			log.Printf("Skipping product card #%d: %v", i+1, err)
			return
		}
		items = append(items, item)
	})

	log.Printf("Scraped %d products from %s", len(items), s.baseURL)
	return items, nil
}

func extractItem(card *goquery.Selection) (catalog.Item, error) {
	name := strings.TrimSpace(card.Find(".meal-card__name").First().Text())
	if name == "" {
		return catalog.Item{}, fmt.Errorf("missing product name")
	}

	weight, err := parseNumber(card, ".meal-card__weight")
	if err != nil {
		return catalog.Item{}, fmt.Errorf("product %q: %w", name, err)
	}
	calories, err := parseNumber(card, ".meal-card__calories__portion")
	if err != nil {
		return catalog.Item{}, fmt.Errorf("product %q: %w", name, err)
	}
	proteinsPer100, err := parseNumber(card, ".meal-card__proteins")
	if err != nil {
		return catalog.Item{}, fmt.Errorf("product %q: %w", name, err)
	}
	fatsPer100, err := parseNumber(card, ".meal-card__fats")
	if err != nil {
		return catalog.Item{}, fmt.Errorf("product %q: %w", name, err)
	}
	carbsPer100, err := parseNumber(card, ".meal-card__carbohydrates")
	if err != nil {
		return catalog.Item{}, fmt.Errorf("product %q: %w", name, err)
	}
	price, err := parseNumber(card, ".meal-card__price")
	if err != nil {
		return catalog.Item{}, fmt.Errorf("product %q: %w", name, err)
	}

	if weight <= 0 || price <= 0 {
		return catalog.Item{}, fmt.Errorf("product %q: non-positive weight or price", name)
	}

	return catalog.Item{
		Name:     name,
		Proteins: proteinsPer100 * weight / 100,
		Fats:     fatsPer100 * weight / 100,
		Carbs:    carbsPer100 * weight / 100,
		Calories: calories,
		Weight:   weight,
		Price:    price,
	}, nil
}
