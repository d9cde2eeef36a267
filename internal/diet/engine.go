package diet

import (
	"context"
	"fmt"
	"log"

	"github.com/Rl0h4w/mealty-food-creator/internal/catalog"
	"github.com/Rl0h4w/mealty-food-creator/internal/nutrition"
	"github.com/Rl0h4w/mealty-food-creator/internal/solver"
)

// Options tune a search. Zero values fall back to the reference defaults.
type Options struct {
	// Tolerance is the symmetric fractional slack around each nutrient
	// target (0.05 means ±5%).
	Tolerance float64
	// PortionCap bounds every item's quantity. The cap enforces variety:
	// without it the solver satisfies targets with one cheap bulk item.
	PortionCap int
	// MaxSolutions is the batch size of one search call.
	MaxSolutions int
	// MaxAttempts bounds solver invocations per search call.
	MaxAttempts int
}

const (
	defaultTolerance    = 0.05
	defaultPortionCap   = 3
	defaultMaxSolutions = 5
	defaultMaxAttempts  = 50
)

func (o Options) withDefaults() Options {
	if o.Tolerance <= 0 {
		o.Tolerance = defaultTolerance
	}
	if o.PortionCap <= 0 {
		o.PortionCap = defaultPortionCap
	}
	if o.MaxSolutions <= 0 {
		o.MaxSolutions = defaultMaxSolutions
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultMaxAttempts
	}
	return o
}

// Engine formulates and repeatedly solves the diet integer program.
type Engine struct {
	solver solver.Solver
	opts   Options
}

// NewEngine creates an Engine on the given solver backend.
func NewEngine(s solver.Solver, opts Options) *Engine {
	return &Engine{solver: s, opts: opts.withDefaults()}
}

// Search returns an ordered batch of distinct feasible diets for one day.
// Every returned solution's support set is inserted into the ledger, so no
// later call of the same session can surface it again. An empty result means
// no feasible diet exists under the current catalog, targets, tolerance and
// ledger state.
//
// The only error condition is cancellation; solver infeasibility and
// timeouts simply end the search.
func (e *Engine) Search(ctx context.Context, items []catalog.Item, target nutrition.Target, ledger *Ledger) ([]Solution, error) {
	var solutions []Solution

	base := e.baseProblem(items, target)

	for attempts := 0; len(solutions) < e.opts.MaxSolutions && attempts < e.opts.MaxAttempts; attempts++ {
		if err := ctx.Err(); err != nil {
			return solutions, fmt.Errorf("search cancelled: %w", err)
		}

		p := base
		p.Constraints = append(append([]solver.Constraint(nil), base.Constraints...), noGoodCuts(ledger)...)

		res, err := e.solver.Solve(ctx, p)
		if err != nil {
			return solutions, fmt.Errorf("solver failed: %w", err)
		}
		if res.Status != solver.StatusOptimal {
			log.Printf("Search stopped after %d solutions: solver status %s.", len(solutions), res.Status)
			break
		}

		sol := buildSolution(items, res)
		if len(sol.Support) == 0 {
			break
		}

		// The ledger may have been seeded by an earlier call; a re-surfaced
		// support set already has an equivalent cut, so just burn an attempt.
		if !ledger.Add(sol.Support) {
			continue
		}
		solutions = append(solutions, sol)
	}

	return solutions, nil
}

// baseProblem builds the formulation shared by all attempts: minimum-cost
// objective, portion bounds and the four nutrient windows.
func (e *Engine) baseProblem(items []catalog.Item, target nutrition.Target) solver.Problem {
	n := len(items)
	p := solver.Problem{
		Objective:   make([]float64, n),
		UpperBounds: make([]int, n),
	}

	proteins := make([]solver.Term, n)
	fats := make([]solver.Term, n)
	carbs := make([]solver.Term, n)
	calories := make([]solver.Term, n)
	for i, it := range items {
		p.Objective[i] = it.Price
		p.UpperBounds[i] = e.opts.PortionCap
		proteins[i] = solver.Term{Var: i, Coeff: it.Proteins}
		fats[i] = solver.Term{Var: i, Coeff: it.Fats}
		carbs[i] = solver.Term{Var: i, Coeff: it.Carbs}
		calories[i] = solver.Term{Var: i, Coeff: it.Calories}
	}

	window := func(terms []solver.Term, target float64) []solver.Constraint {
		return []solver.Constraint{
			{Terms: terms, Rel: solver.GE, RHS: target * (1 - e.opts.Tolerance)},
			{Terms: terms, Rel: solver.LE, RHS: target * (1 + e.opts.Tolerance)},
		}
	}
	p.Constraints = append(p.Constraints, window(proteins, target.Proteins)...)
	p.Constraints = append(p.Constraints, window(fats, target.Fats)...)
	p.Constraints = append(p.Constraints, window(carbs, target.Carbs)...)
	p.Constraints = append(p.Constraints, window(calories, target.Calories)...)

	return p
}

// noGoodCuts forbids re-selecting all members of any ledgered support set
// simultaneously: for each set S, sum of qty over S <= |S| - 1. Membership
// only; reusing a subset of S stays allowed.
func noGoodCuts(ledger *Ledger) []solver.Constraint {
	sets := ledger.Sets()
	cuts := make([]solver.Constraint, 0, len(sets))
	for _, set := range sets {
		terms := make([]solver.Term, len(set))
		for i, v := range set {
			terms[i] = solver.Term{Var: v, Coeff: 1}
		}
		cuts = append(cuts, solver.Constraint{
			Terms: terms,
			Rel:   solver.LE,
			RHS:   float64(len(set) - 1),
		})
	}
	return cuts
}

func buildSolution(items []catalog.Item, res solver.Result) Solution {
	var sol Solution
	for i, qty := range res.Values {
		if qty <= 0 {
			continue
		}
		sol.Portions = append(sol.Portions, Portion{Item: items[i], Quantity: qty})
		sol.Support = append(sol.Support, i)
		sol.Cost += items[i].Price * float64(qty)
	}
	return sol
}
