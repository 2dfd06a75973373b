// Package mapper binds leaf goals of the quality model to the metric sets
// that can measure them. Each concrete mapper owns exactly one leaf goal
// name; a registry built at startup makes the mapped and unmapped goal
// names an enumerable configuration state.
package mapper

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/quality-assessor/internal/metric"
	"github.com/danielpatrickdp/quality-assessor/internal/model"
)

// #region application

// Application describes the instrumented target. Type conditions which
// metric sets a mapper contributes (e.g. database metrics only for
// backends).
type Application struct {
	Name string
	Type string
}

// IsBackend reports whether the declared type contains "backend".
func (a Application) IsBackend() bool {
	return strings.Contains(strings.ToLower(a.Type), "backend")
}

// IsFrontend reports whether the declared type contains "frontend".
func (a Application) IsFrontend() bool {
	return strings.Contains(strings.ToLower(a.Type), "frontend")
}

// #endregion application

// #region mapper-interface

// Mapper populates one leaf goal with its metric set.
type Mapper interface {
	// GoalName is the leaf goal this mapper is responsible for.
	GoalName() string
	// Map sets the goal's weight and inserts the mapper's metrics,
	// deduplicated by acronym so re-mapping never duplicates. Invoking a
	// mapper on the wrong goal is a configuration bug and fails with a
	// MismatchError.
	Map(tree *model.Tree, id model.NodeID, app Application) error
}

// MismatchError reports a mapper invoked against the wrong goal.
type MismatchError struct {
	Mapper string
	Goal   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("incorrect mapper: %q mapper invoked on goal %q", e.Mapper, e.Goal)
}

// normalize is the explicit name normalization used for all goal-name
// matching in this package.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// #endregion mapper-interface

// #region base

// base implements the shared mapper mechanics: name check, weight
// assignment, idempotent metric insertion and all-or-nothing application
// conditioning.
type base struct {
	goal    string
	weight  float64
	applies func(Application) bool
	build   func(Application) []metric.Metric
}

func (b base) GoalName() string { return b.goal }

func (b base) Map(tree *model.Tree, id model.NodeID, app Application) error {
	node := tree.Node(id)
	if node == nil || normalize(node.Name) != normalize(b.goal) {
		name := "<invalid node>"
		if node != nil {
			name = node.Name
		}
		return &MismatchError{Mapper: b.goal, Goal: name}
	}
	if b.applies != nil && !b.applies(app) {
		// conditioning is total: this application type gets none of the
		// mapper's metrics, and the goal weight stays untouched
		return nil
	}
	node.Weight = b.weight
	for _, m := range b.build(app) {
		node.Metrics.Add(m)
	}
	return nil
}

// #endregion base
