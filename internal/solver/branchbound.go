package solver

import (
	"context"
	"fmt"
	"sort"
	"time"
)

const eps = 1e-6

// checkInterval is how many explored nodes pass between deadline checks.
const checkInterval = 1024

// BranchBound is a depth-first branch-and-bound backend. Variables are
// explored cheapest-objective first; subtrees are cut when the remaining
// variables cannot repair a violated constraint or undercut the incumbent.
type BranchBound struct {
	// TimeLimit bounds a single solve. Zero means no limit beyond the
	// context's own deadline.
	TimeLimit time.Duration
}

// NewBranchBound creates a solver with the given per-solve wall-clock limit.
func NewBranchBound(timeLimit time.Duration) *BranchBound {
	return &BranchBound{TimeLimit: timeLimit}
}

// Solve runs the search to completion or until the time limit fires.
func (s *BranchBound) Solve(ctx context.Context, p Problem) (Result, error) {
	n := p.NumVars()
	if len(p.UpperBounds) != n {
		return Result{}, fmt.Errorf("solver: %d objective coefficients but %d variable bounds", n, len(p.UpperBounds))
	}
	for i, ub := range p.UpperBounds {
		if ub < 0 {
			return Result{}, fmt.Errorf("solver: negative upper bound for variable %d", i)
		}
	}

	// Dense coefficient matrix; duplicate terms on the same variable sum up.
	m := len(p.Constraints)
	coeff := make([][]float64, m)
	for c, con := range p.Constraints {
		coeff[c] = make([]float64, n)
		for _, t := range con.Terms {
			if t.Var < 0 || t.Var >= n {
				return Result{}, fmt.Errorf("solver: constraint %d references unknown variable %d", c, t.Var)
			}
			coeff[c][t.Var] += t.Coeff
		}
	}

	// Branch on cheap variables first so the first incumbent is already
	// close to the optimum and the cost bound cuts early.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.Objective[order[a]] < p.Objective[order[b]]
	})

	// Suffix bounds: the most a not-yet-assigned tail can add to (or subtract
	// from) each constraint's left-hand side, and the least it can cost.
	maxRest := make([][]float64, m)
	minRest := make([][]float64, m)
	for c := 0; c < m; c++ {
		maxRest[c] = make([]float64, n+1)
		minRest[c] = make([]float64, n+1)
		for pos := n - 1; pos >= 0; pos-- {
			v := order[pos]
			full := coeff[c][v] * float64(p.UpperBounds[v])
			maxRest[c][pos] = maxRest[c][pos+1] + max(0, full)
			minRest[c][pos] = minRest[c][pos+1] + min(0, full)
		}
	}
	minCostRest := make([]float64, n+1)
	for pos := n - 1; pos >= 0; pos-- {
		v := order[pos]
		minCostRest[pos] = minCostRest[pos+1] + min(0, p.Objective[v]*float64(p.UpperBounds[v]))
	}

	st := &bbState{
		problem:     p,
		coeff:       coeff,
		order:       order,
		maxRest:     maxRest,
		minRest:     minRest,
		minCostRest: minCostRest,
		values:      make([]int, n),
		lhs:         make([]float64, m),
		ctx:         ctx,
	}
	if s.TimeLimit > 0 {
		st.deadline = time.Now().Add(s.TimeLimit)
		st.hasDeadline = true
	}

	if ctx.Err() != nil {
		return Result{Status: StatusTimeout}, nil
	}
	st.dfs(0, 0)

	if st.stopped {
		return Result{Status: StatusTimeout}, nil
	}
	if !st.found {
		return Result{Status: StatusInfeasible}, nil
	}
	return Result{Status: StatusOptimal, Values: st.best, Objective: st.bestCost}, nil
}

type bbState struct {
	problem     Problem
	coeff       [][]float64
	order       []int
	maxRest     [][]float64
	minRest     [][]float64
	minCostRest []float64

	values []int
	lhs    []float64

	found    bool
	best     []int
	bestCost float64

	ctx         context.Context
	deadline    time.Time
	hasDeadline bool
	nodes       int
	stopped     bool
}

func (st *bbState) dfs(pos int, cost float64) {
	if st.stopped {
		return
	}
	st.nodes++
	if st.nodes%checkInterval == 0 {
		if st.ctx.Err() != nil || (st.hasDeadline && time.Now().After(st.deadline)) {
			st.stopped = true
			return
		}
	}

	if st.found && cost+st.minCostRest[pos] >= st.bestCost-eps {
		return
	}
	for c, con := range st.problem.Constraints {
		switch con.Rel {
		case LE:
			if st.lhs[c]+st.minRest[c][pos] > con.RHS+eps {
				return
			}
		case GE:
			if st.lhs[c]+st.maxRest[c][pos] < con.RHS-eps {
				return
			}
		}
	}

	if pos == len(st.order) {
		// The suffix bounds are exact here, so the assignment is feasible.
		if !st.found || cost < st.bestCost {
			st.found = true
			st.bestCost = cost
			st.best = append(st.best[:0], st.values...)
		}
		return
	}

	v := st.order[pos]
	for q := 0; q <= st.problem.UpperBounds[v]; q++ {
		st.values[v] = q
		for c := range st.coeff {
			st.lhs[c] += st.coeff[c][v] * float64(q)
		}
		st.dfs(pos+1, cost+st.problem.Objective[v]*float64(q))
		for c := range st.coeff {
			st.lhs[c] -= st.coeff[c][v] * float64(q)
		}
		if st.stopped {
			break
		}
	}
	st.values[v] = 0
}
