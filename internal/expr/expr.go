// Package expr compiles user-defined expression metrics: CEL predicates
// evaluated per telemetry record. They let a deployment count or rate
// domain events the built-in catalog does not know about, without code
// changes.
package expr

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/danielpatrickdp/quality-assessor/internal/metric"
	"github.com/danielpatrickdp/quality-assessor/internal/telemetry"
)

// #region definition

// Def declares one expression metric. When is a CEL expression over the
// record environment (attributes map, durationMs, name) and must evaluate
// to a boolean. An empty Per makes the metric a plain match count; a
// non-empty Per divides the match count by the distinct values of that
// attribute key.
type Def struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Acronym string `yaml:"acronym" mapstructure:"acronym"`
	Unit    string `yaml:"unit" mapstructure:"unit"`
	Goal    string `yaml:"goal" mapstructure:"goal"`
	When    string `yaml:"when" mapstructure:"when"`
	Per     string `yaml:"per" mapstructure:"per"`
}

// Validate checks that the definition is complete.
func (d Def) Validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("expression metric has no name")
	case d.Acronym == "":
		return fmt.Errorf("expression metric %q has no acronym", d.Name)
	case d.Goal == "":
		return fmt.Errorf("expression metric %q names no goal", d.Name)
	case d.When == "":
		return fmt.Errorf("expression metric %q has no when expression", d.Name)
	}
	return nil
}

// #endregion definition

// #region env

// newEnv declares the per-record CEL environment.
func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("attributes", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("durationMs", cel.DoubleType),
		cel.Variable("name", cel.StringType),
	)
}

// #endregion env

// #region compile

// Compile validates a definition and compiles its predicate. Syntax and
// type errors surface here, at configuration load, not mid-assessment.
func Compile(def Def) (metric.Metric, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("expression env: %w", err)
	}
	ast, iss := env.Parse(def.When)
	if iss.Err() != nil {
		return nil, fmt.Errorf("expression metric %q: %w", def.Name, iss.Err())
	}
	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return nil, fmt.Errorf("expression metric %q: %w", def.Name, iss.Err())
	}
	program, err := env.Program(checked)
	if err != nil {
		return nil, fmt.Errorf("expression metric %q: %w", def.Name, err)
	}

	unit := def.Unit
	if unit == "" {
		unit = "count"
		if def.Per != "" {
			unit = "ratio"
		}
	}
	m := &exprMetric{
		Info:    metric.NewInfo(def.Name, def.Acronym, unit, "expression metric: "+def.When, []string{metric.CategoryTracing}),
		program: program,
		per:     def.Per,
	}
	return m, nil
}

// CompileAll compiles every definition, failing on the first bad one.
func CompileAll(defs []Def) ([]metric.Metric, error) {
	out := make([]metric.Metric, 0, len(defs))
	for _, def := range defs {
		m, err := Compile(def)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// #endregion compile

// #region metric

type exprMetric struct {
	metric.Info
	program cel.Program
	per     string
}

// Compute counts records whose predicate holds; with a Per key the count is
// divided by the distinct values of that key across the batch. Evaluation
// errors count as "no match" so a bad record never aborts an assessment.
func (m *exprMetric) Compute(batch *telemetry.Batch) float64 {
	var matches int
	for _, r := range batch.Records() {
		if m.matches(r) {
			matches++
		}
	}
	if m.per == "" {
		return m.SetValue(float64(matches))
	}
	denom := metric.DistinctCount(m.per)(batch)
	if denom == 0 {
		return m.SetValue(0)
	}
	return m.SetValue(float64(matches) / denom)
}

func (m *exprMetric) matches(r telemetry.Record) bool {
	attrs := r.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	duration, _ := r.DurationMillis()
	result, _, err := m.program.Eval(map[string]any{
		"attributes": attrs,
		"durationMs": duration,
		"name":       r.Name,
	})
	if err != nil {
		return false
	}
	matched, ok := result.Value().(bool)
	return ok && matched
}

// #endregion metric
