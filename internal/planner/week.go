// Package planner drives the weekly planning protocol: one engine search per
// day and per retry, accept/reject decisions, a bounded retry budget and
// graceful degradation on infeasible days.
package planner

import (
	"context"
	"fmt"
	"sync"

	"github.com/Rl0h4w/mealty-food-creator/internal/catalog"
	"github.com/Rl0h4w/mealty-food-creator/internal/diet"
	"github.com/Rl0h4w/mealty-food-creator/internal/nutrition"
)

const (
	// DaysInWeek is the number of days a session plans.
	DaysInWeek = 7
	// MaxRejections is the per-day retry budget: after this many user
	// rejections the day is abandoned without further solver calls.
	MaxRejections = 5
)

// State of the weekly planning state machine.
type State int

const (
	// StateAwaitingSearch means the current day still needs a proposal.
	StateAwaitingSearch State = iota
	// StatePresenting means a proposal awaits the user's decision.
	StatePresenting
	// StateComplete means all seven days are resolved.
	StateComplete
)

// DayPlan is one resolved day: an accepted solution or a failure marker
// (nil solution, zero cost).
type DayPlan struct {
	Day      int
	Solution *diet.Solution
	Cost     float64
}

// Failed reports whether the day ended without an accepted diet.
func (d DayPlan) Failed() bool {
	return d.Solution == nil
}

// WeeklyPlan is the terminal result of a session: exactly seven day plans.
type WeeklyPlan struct {
	Days []DayPlan
}

// TotalCost sums the day costs; failed days contribute zero.
func (w WeeklyPlan) TotalCost() float64 {
	var total float64
	for _, d := range w.Days {
		total += d.Cost
	}
	return total
}

// Proposal is a candidate diet presented to the user for one day.
type Proposal struct {
	Day      int
	Solution *diet.Solution
}

// SearchEngine produces ordered batches of candidate diets. Implemented by
// diet.Engine.
type SearchEngine interface {
	Search(ctx context.Context, items []catalog.Item, target nutrition.Target, ledger *diet.Ledger) ([]diet.Solution, error)
}

// Week is one planning session. The filtered catalog, the targets and the
// rejection ledger are fixed at construction and belong exclusively to this
// session. Week is safe for concurrent use: Telegram delivers duplicate
// callback taps as separate updates, so decisions for one chat can arrive on
// two goroutines at once.
type Week struct {
	engine SearchEngine
	items  []catalog.Item
	target nutrition.Target
	ledger *diet.Ledger

	mu         sync.Mutex
	state      State
	day        int
	rejections int
	pending    *diet.Solution
	days       []DayPlan
}

// NewWeek starts a session over an already-filtered catalog.
func NewWeek(engine SearchEngine, items []catalog.Item, target nutrition.Target) *Week {
	return &Week{
		engine: engine,
		items:  items,
		target: target,
		ledger: diet.NewLedger(),
		state:  StateAwaitingSearch,
		day:    1,
	}
}

// State returns the current machine state.
func (w *Week) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Day returns the day currently being planned (1..7).
func (w *Week) Day() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.day
}

// Complete reports whether all seven days are resolved.
func (w *Week) Complete() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state == StateComplete
}

// Propose advances the machine until a proposal is available or the week is
// complete. Days with no feasible diet are marked failed immediately — a
// hard infeasibility consumes no retry budget. A nil proposal with a nil
// error means the week is complete.
func (w *Week) Propose(ctx context.Context) (*Proposal, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StatePresenting {
		return nil, fmt.Errorf("a proposal for day %d is already awaiting a decision", w.day)
	}

	for w.state == StateAwaitingSearch {
		solutions, err := w.engine.Search(ctx, w.items, w.target, w.ledger)
		if err != nil {
			return nil, err
		}
		if len(solutions) == 0 {
			w.failDay()
			continue
		}

		w.pending = &solutions[0]
		w.state = StatePresenting
		return &Proposal{Day: w.day, Solution: w.pending}, nil
	}

	return nil, nil
}

// Accept records the pending proposal as the current day's diet.
func (w *Week) Accept() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StatePresenting {
		return fmt.Errorf("no proposal to accept")
	}
	w.days = append(w.days, DayPlan{Day: w.day, Solution: w.pending, Cost: w.pending.Cost})
	w.pending = nil
	w.advance()
	return nil
}

// Reject discards the pending proposal, ledgers its support set and charges
// the day's retry budget. Exhausting the budget marks the day failed.
func (w *Week) Reject() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StatePresenting {
		return fmt.Errorf("no proposal to reject")
	}

	// Usually redundant: the engine ledgers everything it emits. Explicit
	// anyway, since the rejected solution may come from an earlier batch.
	w.ledger.Add(w.pending.Support)
	w.pending = nil
	w.rejections++

	if w.rejections >= MaxRejections {
		w.failDay()
		return nil
	}
	w.state = StateAwaitingSearch
	return nil
}

// Rejections returns the retry budget consumed for the current day.
func (w *Week) Rejections() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rejections
}

// Days returns a copy of the day plans resolved so far.
func (w *Week) Days() []DayPlan {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]DayPlan(nil), w.days...)
}

// Plan returns the finished weekly plan. It is only valid once Complete.
func (w *Week) Plan() (WeeklyPlan, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateComplete {
		return WeeklyPlan{}, fmt.Errorf("week is not complete yet (day %d)", w.day)
	}
	return WeeklyPlan{Days: w.days}, nil
}

func (w *Week) failDay() {
	w.days = append(w.days, DayPlan{Day: w.day})
	w.advance()
}

func (w *Week) advance() {
	w.day++
	w.rejections = 0
	if w.day > DaysInWeek {
		w.state = StateComplete
		return
	}
	w.state = StateAwaitingSearch
}
