package diet

import (
	"sort"
	"strconv"
	"strings"
)

// Ledger is the append-only set of support sets that must never be proposed
// again. It collects every solution the engine emits and every solution the
// user rejects, and lives for one whole planning session.
type Ledger struct {
	seen map[string]struct{}
	sets [][]int
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{seen: make(map[string]struct{})}
}

func supportKey(support []int) string {
	var sb strings.Builder
	for i, id := range support {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}

// Add records a support set. It returns false when the set was already
// present. The stored copy is sorted; the caller's slice is not modified.
func (l *Ledger) Add(support []int) bool {
	sorted := append([]int(nil), support...)
	sort.Ints(sorted)

	key := supportKey(sorted)
	if _, ok := l.seen[key]; ok {
		return false
	}
	l.seen[key] = struct{}{}
	l.sets = append(l.sets, sorted)
	return true
}

// Contains reports whether the support set is already ledgered.
func (l *Ledger) Contains(support []int) bool {
	sorted := append([]int(nil), support...)
	sort.Ints(sorted)
	_, ok := l.seen[supportKey(sorted)]
	return ok
}

// Sets returns the ledgered support sets in insertion order. The result must
// not be mutated.
func (l *Ledger) Sets() [][]int {
	return l.sets
}

// Len returns the number of ledgered support sets.
func (l *Ledger) Len() int {
	return len(l.sets)
}
