// Package interpret turns raw metric values into comparable contributions:
// each value is normalized against a benchmark maximum and assigned a
// weight inside its goal context.
package interpret

import (
	"strings"

	"github.com/danielpatrickdp/quality-assessor/internal/metric"
	"github.com/danielpatrickdp/quality-assessor/internal/model"
)

// #region benchmarks

// Benchmarks maps metric acronyms to benchmark maxima, the denominators of
// normalization.
type Benchmarks map[string]float64

// DefaultBenchmarks returns the static benchmark table for the built-in
// catalog. Deployment-specific overrides merge over these.
func DefaultBenchmarks() Benchmarks {
	return Benchmarks{
		metric.AcrAvgResponseTime:     1000,
		metric.AcrResponseTimeP95:     2000,
		metric.AcrThroughput:          100,
		metric.AcrDBQueryTime:         250,
		metric.AcrDBQueriesPerRequest: 20,
		metric.AcrDistinctSessions:    100,
		metric.AcrDistinctUsers:       50,
		metric.AcrDistinctVisits:      200,
		metric.AcrSessionDuration:     600_000,
		metric.AcrEventsPerVisit:      50,
		metric.AcrVisitsPerUser:       5,
		metric.AcrEventsPerSession:    100,
		metric.AcrErrorCount:          50,
		metric.AcrRequestCount:        1000,
		metric.AcrErrorRate:           1,
		metric.AcrAvailability:        1,
		metric.AcrLoginCount:          100,
		metric.AcrFailedLogins:        20,
		metric.AcrFailedLoginRatio:    1,
		metric.AcrUserAttribution:     1,
	}
}

// For returns the benchmark for an acronym, defaulting to 1 so an unknown
// metric normalizes to its raw value instead of dividing by zero.
func (b Benchmarks) For(acronym string) float64 {
	if v, ok := b[acronym]; ok && v != 0 {
		return v
	}
	return 1
}

// Merge overlays deployment overrides onto the table.
func (b Benchmarks) Merge(overrides map[string]float64) {
	for acr, v := range overrides {
		b[acr] = v
	}
}

// #endregion benchmarks

// #region interpreter

// defaultMetricWeight is the fallback weight for metrics whose goal is not
// part of the selection context.
const defaultMetricWeight = 1.0

// Interpreter binds one metric to the goal it is interpreted under. It is
// constructed per interpretation pass and not persisted.
type Interpreter struct {
	metric    metric.Metric
	goal      *model.Goal
	benchmark float64
	dynamic   bool
}

// New builds an interpreter with an initial benchmark maximum. With
// dynamic enabled, Interpret first raises the benchmark to the metric's
// historical maximum.
func New(m metric.Metric, goal *model.Goal, benchmark float64, dynamic bool) *Interpreter {
	return &Interpreter{metric: m, goal: goal, benchmark: benchmark, dynamic: dynamic}
}

// Benchmark returns the current benchmark maximum.
func (i *Interpreter) Benchmark() float64 { return i.benchmark }

// Interpret normalizes the metric's current value against the benchmark
// maximum. The quotient is deliberately not clamped to [0,1]: a value
// beyond its benchmark reads as over-performance, not as an error. A zero
// benchmark yields 0.
func (i *Interpreter) Interpret() float64 {
	if i.dynamic {
		if max, ok := historyMax(i.metric.History()); ok && max > i.benchmark {
			i.benchmark = max
		}
	}
	if i.benchmark == 0 {
		return 0
	}
	return i.metric.Value() / i.benchmark
}

// Weight assigns the metric's weight within the selection context: when
// the owning goal is selected, the goal weight is split evenly across the
// goal's metrics, so sibling weights sum to the goal weight; otherwise the
// family default applies. selected holds normalized goal names.
func (i *Interpreter) Weight(selected map[string]struct{}) float64 {
	if i.goal == nil || i.goal.Metrics == nil || i.goal.Metrics.Len() == 0 {
		return defaultMetricWeight
	}
	if _, ok := selected[Normalize(i.goal.Name)]; !ok {
		return defaultMetricWeight
	}
	return i.goal.Weight / float64(i.goal.Metrics.Len())
}

// Normalize lowercases a goal name for selection-set membership.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func historyMax(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	best := values[0]
	for _, v := range values[1:] {
		if v > best {
			best = v
		}
	}
	return best, true
}

// #endregion interpreter
