// Package report collects, filters and renders diagnostics. The sink
// is the single shared mutable structure of a lint pass: every check
// appends to it concurrently and nothing reads it until the pass has
// joined all tasks.
package report

import (
	"sort"
	"sync"

	"github.com/packlint/packlint/internal/domain"
)

// Sink is an append-only collection of diagnostics, safe for
// concurrent appends
type Sink struct {
	mu    sync.Mutex
	diags []domain.Diagnostic
}

// NewSink creates an empty sink
func NewSink() *Sink {
	return &Sink{diags: make([]domain.Diagnostic, 0)}
}

// Add appends a diagnostic
func (s *Sink) Add(d domain.Diagnostic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, d)
}

// Len returns the number of collected diagnostics
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.diags)
}

// Finalize snapshots the sink into a stable-sorted slice. Strict mode
// promotes every warning to an error before the minimum-severity
// filter applies; this is the single severity mutation of a pass.
// Emission order across tasks carries no meaning, so the snapshot is
// sorted by each diagnostic's stable key.
func (s *Sink) Finalize(min domain.Severity, strict bool) []domain.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Diagnostic, 0, len(s.diags))
	for _, d := range s.diags {
		if strict && d.Severity == domain.SeverityWarning {
			d.Severity = domain.SeverityError
		}
		if d.Severity.Rank() < min.Rank() {
			continue
		}
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := out[i].Severity.Rank(), out[j].Severity.Rank(); ri != rj {
			return ri > rj
		}
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}
