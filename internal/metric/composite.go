package metric

import (
	"github.com/danielpatrickdp/quality-assessor/internal/telemetry"
)

// #region combine-mode

// Combine selects how a composite metric folds its children's values.
type Combine int

const (
	// CombineSum adds all child values.
	CombineSum Combine = iota
	// CombineAverage takes the arithmetic mean of child values.
	CombineAverage
	// CombineQuotient divides the first child by the second (insertion
	// order); a zero denominator yields 0.
	CombineQuotient
	// CombineWeighted sums child values scaled by per-child weights.
	CombineWeighted
)

// #endregion combine-mode

// #region composite

// Composite computes from the values of named child metrics, each child
// computed against the same input batch.
type Composite struct {
	Info
	children map[string]Metric
	order    []string
	weights  map[string]float64
	mode     Combine
}

// NewComposite builds a composite metric. Children are registered with
// AddChild before first use.
func NewComposite(name, acronym, unit, describe string, mode Combine) *Composite {
	return &Composite{
		Info:     NewInfo(name, acronym, unit, describe, nil),
		children: make(map[string]Metric),
		weights:  make(map[string]float64),
		mode:     mode,
	}
}

// AddChild registers a child under its metric name with weight 1.
func (c *Composite) AddChild(m Metric) *Composite {
	return c.AddWeighted(m, 1)
}

// AddWeighted registers a child with an explicit weight (only read by
// CombineWeighted). A child with a duplicate name is ignored.
func (c *Composite) AddWeighted(m Metric, weight float64) *Composite {
	if _, exists := c.children[m.Name()]; exists {
		return c
	}
	c.children[m.Name()] = m
	c.order = append(c.order, m.Name())
	c.weights[m.Name()] = weight
	return c
}

// Child returns the child metric registered under name.
func (c *Composite) Child(name string) (Metric, bool) {
	m, ok := c.children[name]
	return m, ok
}

// Required returns the union of the children's required categories.
func (c *Composite) Required() []string {
	set := NewSet()
	for _, name := range c.order {
		set.Add(c.children[name])
	}
	return set.Required()
}

// Compute evaluates every child against the batch, then folds the values
// according to the combine mode. No children ⇒ 0.
func (c *Composite) Compute(batch *telemetry.Batch) float64 {
	if len(c.order) == 0 {
		return c.set(0)
	}
	values := make([]float64, len(c.order))
	for i, name := range c.order {
		values[i] = c.children[name].Compute(batch)
	}
	switch c.mode {
	case CombineAverage:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return c.set(sum / float64(len(values)))
	case CombineQuotient:
		if len(values) < 2 || values[1] == 0 {
			return c.set(0)
		}
		return c.set(values[0] / values[1])
	case CombineWeighted:
		var sum float64
		for i, name := range c.order {
			sum += values[i] * c.weights[name]
		}
		return c.set(sum)
	default: // CombineSum
		var sum float64
		for _, v := range values {
			sum += v
		}
		return c.set(sum)
	}
}

// #endregion composite
