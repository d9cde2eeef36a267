// Package solver provides a minimal integer linear programming capability:
// minimize a linear objective over bounded non-negative integer variables
// subject to linear inequality constraints.
package solver

import "context"

// Status is the outcome of a solve attempt.
type Status int

const (
	// StatusOptimal means an assignment was found and proven optimal.
	StatusOptimal Status = iota
	// StatusInfeasible means no assignment satisfies all constraints.
	StatusInfeasible
	// StatusTimeout means the wall-clock limit or cancellation fired before
	// optimality was proven. Any incumbent found so far is discarded.
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Relation is the direction of a linear constraint.
type Relation int

const (
	// LE constrains the weighted sum to be <= RHS.
	LE Relation = iota
	// GE constrains the weighted sum to be >= RHS.
	GE
)

// Term is a single coefficient applied to a variable.
type Term struct {
	Var   int
	Coeff float64
}

// Constraint is a linear inequality over the problem's variables.
type Constraint struct {
	Terms []Term
	Rel   Relation
	RHS   float64
}

// Problem describes one integer program. Every variable is an integer in
// [0, UpperBounds[i]] and the objective is minimized.
type Problem struct {
	Objective   []float64
	UpperBounds []int
	Constraints []Constraint
}

// NumVars returns the number of decision variables.
func (p Problem) NumVars() int {
	return len(p.Objective)
}

// Result is the outcome of a solve.
type Result struct {
	Status    Status
	Values    []int
	Objective float64
}

// Solver is a black-box integer program backend. Implementations must honor
// context cancellation and report StatusTimeout rather than block.
type Solver interface {
	Solve(ctx context.Context, p Problem) (Result, error)
}
