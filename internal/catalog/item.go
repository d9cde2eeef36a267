// Package catalog holds the priced, nutrition-tagged product catalog the
// diet engine consumes: the persistent store, its freshness policy, and the
// per-session filtered view.
package catalog

// Item is a single catalog product. Nutrient values are per portion, price
// is in rubles per portion. Items are immutable for a planning session.
type Item struct {
	ID       int64
	Name     string
	Proteins float64
	Fats     float64
	Carbs    float64
	Calories float64
	Weight   float64
	Price    float64
}
