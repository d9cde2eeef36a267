// Package diet contains the diet solution search engine: it formulates the
// daily diet as an integer program over the filtered catalog and repeatedly
// re-solves it, excluding every combination already seen or rejected.
package diet

import (
	"github.com/Rl0h4w/mealty-food-creator/internal/catalog"
)

// Portion is one selected catalog item with its portion count.
type Portion struct {
	Item     catalog.Item
	Quantity int
}

// Solution is one feasible diet: the selected portions, the support set
// (sorted positions within the filtered catalog) and the total cost. Two
// solutions are the same iff their support sets are identical, regardless of
// quantities.
type Solution struct {
	Portions []Portion
	Support  []int
	Cost     float64
}

// Totals are the nutrient sums of a solution.
type Totals struct {
	Proteins float64
	Fats     float64
	Carbs    float64
	Calories float64
}

// Totals computes the quantity-weighted nutrient sums. An empty solution
// yields zero totals.
func (s *Solution) Totals() Totals {
	var t Totals
	for _, p := range s.Portions {
		q := float64(p.Quantity)
		t.Proteins += p.Item.Proteins * q
		t.Fats += p.Item.Fats * q
		t.Carbs += p.Item.Carbs * q
		t.Calories += p.Item.Calories * q
	}
	return t
}
