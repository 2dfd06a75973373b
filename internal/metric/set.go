package metric

// #region set

// Set is an acronym-keyed metric collection. Insertion order is preserved
// and the first metric registered under an acronym wins; re-inserting the
// same acronym is a no-op, which is what makes goal mapping idempotent.
type Set struct {
	byAcronym map[string]Metric
	order     []string
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{byAcronym: make(map[string]Metric)}
}

// Add inserts m unless a metric with the same acronym is already present.
// Reports whether the metric was inserted.
func (s *Set) Add(m Metric) bool {
	if _, exists := s.byAcronym[m.Acronym()]; exists {
		return false
	}
	s.byAcronym[m.Acronym()] = m
	s.order = append(s.order, m.Acronym())
	return true
}

// Union inserts every metric of other, keeping existing entries on acronym
// conflict.
func (s *Set) Union(other *Set) {
	if other == nil {
		return
	}
	for _, m := range other.All() {
		s.Add(m)
	}
}

// Get returns the metric registered under acronym.
func (s *Set) Get(acronym string) (Metric, bool) {
	m, ok := s.byAcronym[acronym]
	return m, ok
}

// All returns the metrics in insertion order.
func (s *Set) All() []Metric {
	out := make([]Metric, 0, len(s.order))
	for _, acr := range s.order {
		out = append(out, s.byAcronym[acr])
	}
	return out
}

// Len returns the number of metrics in the set.
func (s *Set) Len() int { return len(s.order) }

// Required returns the deduplicated union of telemetry categories required
// by the set's metrics.
func (s *Set) Required() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, acr := range s.order {
		for _, cat := range s.byAcronym[acr].Required() {
			if _, ok := seen[cat]; ok {
				continue
			}
			seen[cat] = struct{}{}
			out = append(out, cat)
		}
	}
	return out
}

// #endregion set
