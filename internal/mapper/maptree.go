package mapper

import (
	"fmt"

	"github.com/danielpatrickdp/quality-assessor/internal/metric"
	"github.com/danielpatrickdp/quality-assessor/internal/model"
)

// #region map-tree

// MapTree populates every leaf goal from the registry and unions each
// sub-goal's resolved metric set into its composite parent, children first.
// A leaf without a registered mapper is left with an empty set; only a
// mismatched mapper invocation is an error.
func MapTree(tree *model.Tree, reg *Registry, app Application) error {
	var mapErr error
	tree.Walk(func(id model.NodeID, g *model.Goal) {
		if mapErr != nil {
			return
		}
		if g.IsLeaf() {
			m, ok := reg.Lookup(g.Name)
			if !ok {
				return
			}
			if err := m.Map(tree, id, app); err != nil {
				mapErr = err
			}
			return
		}
		// children-first walk guarantees every child set is resolved here;
		// union keeps the first occurrence on acronym conflict
		for _, cid := range g.Children {
			g.Metrics.Union(tree.Node(cid).Metrics)
		}
	})
	return mapErr
}

// Unmapped enumerates attached leaf goal names with no registered mapper.
func Unmapped(tree *model.Tree, reg *Registry) []string {
	var out []string
	for _, id := range tree.Leaves() {
		name := tree.Node(id).Name
		if _, ok := reg.factories[normalize(name)]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// #endregion map-tree

// #region attach

// AttachMetrics inserts externally built metrics (expression metrics from
// configuration) into a named goal before MapTree runs, so composite
// unions pick them up. The goal must exist in the tree.
func AttachMetrics(tree *model.Tree, goalName string, metrics []metric.Metric) error {
	id, ok := tree.Find(goalName)
	if !ok {
		return fmt.Errorf("metric attachment: no goal named %q in the model", goalName)
	}
	node := tree.Node(id)
	for _, m := range metrics {
		node.Metrics.Add(m)
	}
	return nil
}

// #endregion attach
