// Package metric defines the computations that reduce a telemetry batch to
// numeric quality-metric values. Leaf metrics compute directly from records;
// composite metrics combine named children. All computations share one edge
// policy: missing attributes, empty filtered sets and zero denominators
// resolve to 0, never to an error or NaN.
package metric

import (
	"fmt"

	"github.com/danielpatrickdp/quality-assessor/internal/telemetry"
)

// #region categories
// Telemetry categories a metric can require. The union of required
// categories across mapped metrics tells the instrumentation generator what
// to instrument.
const (
	CategoryTracing    = "tracing"
	CategoryUserEvents = "user_events"
)

// #endregion categories

// #region interface

// Metric is a named, unit-tagged reduction of a telemetry batch to one
// number.
type Metric interface {
	Name() string
	Describe() string
	Unit() string
	// Acronym is the identity key: sets deduplicate by it, benchmarks and
	// stored values are keyed by it.
	Acronym() string
	// Required lists the telemetry categories this metric needs.
	Required() []string
	// Compute reduces the batch to a value and caches it. It is pure with
	// respect to the batch: same batch, same value, no hidden accumulation.
	Compute(batch *telemetry.Batch) float64
	// Value returns the most recently computed value.
	Value() float64
	// RecordValue appends the current value to the bounded history. Called
	// explicitly after an assessment pass, never from Compute.
	RecordValue()
	// History returns past recorded values, oldest first.
	History() []float64
}

// #endregion interface

// #region info

// Info carries the descriptive fields and cached state shared by every
// metric implementation.
type Info struct {
	name     string
	describe string
	unit     string
	acronym  string
	required []string
	value    float64
	history  *history
}

// NewInfo builds the shared metric header.
func NewInfo(name, acronym, unit, describe string, required []string) Info {
	return Info{
		name:     name,
		describe: describe,
		unit:     unit,
		acronym:  acronym,
		required: required,
		history:  newHistory(defaultHistorySize),
	}
}

func (i *Info) Name() string       { return i.name }
func (i *Info) Describe() string   { return i.describe }
func (i *Info) Unit() string       { return i.unit }
func (i *Info) Acronym() string    { return i.acronym }
func (i *Info) Required() []string { return i.required }
func (i *Info) Value() float64     { return i.value }

// RecordValue pushes the current value into the bounded history.
func (i *Info) RecordValue() { i.history.push(i.value) }

// History returns recorded values, oldest first.
func (i *Info) History() []float64 { return i.history.values() }

// HistoryMax returns the largest recorded value and whether any exists.
func (i *Info) HistoryMax() (float64, bool) { return i.history.max() }

// set caches and returns a computed value.
func (i *Info) set(v float64) float64 {
	i.value = v
	return v
}

// SetValue caches a computed value. Metric implementations outside this
// package call it from their Compute.
func (i *Info) SetValue(v float64) float64 { return i.set(v) }

// #endregion info

// #region leaf

// Func reduces a batch to a value.
type Func func(*telemetry.Batch) float64

type leaf struct {
	Info
	fn Func
}

// New builds a leaf metric from a computation function, usually one of the
// kernels in compute.go.
func New(name, acronym, unit, describe string, required []string, fn Func) Metric {
	return &leaf{Info: NewInfo(name, acronym, unit, describe, required), fn: fn}
}

func (l *leaf) Compute(batch *telemetry.Batch) float64 {
	return l.set(l.fn(batch))
}

// #endregion leaf

// #region invalid-state

// InvalidStateError reports a rejected metric mutation, e.g. an explicit
// zero denominator that would poison a later division.
type InvalidStateError struct {
	Metric string
	Reason string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("metric %s: %s", e.Metric, e.Reason)
}

// #endregion invalid-state
