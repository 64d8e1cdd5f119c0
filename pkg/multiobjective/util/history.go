package util

import (
	"sync"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/algorithms"
)

// Record is the per-generation summary kept by History.
type Record struct {
	Generation  int
	Evaluations int
	FrontSize   int
	Hypervolume float64
}

// History accumulates generation summaries of a run. Its Observe method can be
// registered with algorithms.WithObserver.
type History struct {
	mu      sync.Mutex
	records []Record
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Observe(s algorithms.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, Record{
		Generation:  s.Generation,
		Evaluations: s.Evaluations,
		FrontSize:   len(s.ParetoFront),
		Hypervolume: s.Hypervolume,
	})
}

// Records returns a copy of everything observed so far.
func (h *History) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// Last returns the most recent record, if any.
func (h *History) Last() (Record, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1], true
}
