// Package assess runs one synchronous assessment pass: compute every
// selected metric against an immutable telemetry batch, interpret the
// values, and aggregate bottom-up into per-goal and overall scores.
package assess

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/quality-assessor/internal/interpret"
	"github.com/danielpatrickdp/quality-assessor/internal/mapper"
	"github.com/danielpatrickdp/quality-assessor/internal/model"
	"github.com/danielpatrickdp/quality-assessor/internal/telemetry"
)

// #region options

// Options tunes one engine instance.
type Options struct {
	// Benchmarks is the acronym→maximum normalization table.
	Benchmarks interpret.Benchmarks
	// Dynamic lets interpreters raise benchmarks to historical maxima.
	Dynamic bool
	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// #endregion options

// #region engine

// Engine assesses a mapped goal tree. The tree must already be populated
// by mapper.MapTree.
type Engine struct {
	tree *model.Tree
	app  mapper.Application
	opts Options
	log  *slog.Logger
}

// NewEngine wraps a mapped tree.
func NewEngine(tree *model.Tree, app mapper.Application, opts Options) *Engine {
	if opts.Benchmarks == nil {
		opts.Benchmarks = interpret.DefaultBenchmarks()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Engine{tree: tree, app: app, opts: opts, log: log}
}

// #endregion engine

// #region run

// Run performs one assessment pass. selection names the goals to assess
// (empty means all top-level characteristics); unknown names are reported
// in the result, a selection without any mapped metric fails with
// NoMetricsError.
func (e *Engine) Run(batch *telemetry.Batch, selection []string) (*Result, error) {
	roots, unknown := e.resolveSelection(selection)

	selectedNames := make(map[string]struct{})
	var total int
	for _, id := range roots {
		e.tree.WalkFrom(id, func(_ model.NodeID, g *model.Goal) {
			selectedNames[interpret.Normalize(g.Name)] = struct{}{}
			if g.IsLeaf() {
				total += g.Metrics.Len()
			}
		})
	}
	if total == 0 {
		return nil, &NoMetricsError{Selection: selection}
	}

	result := &Result{
		RunID:       uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Application: e.app,
		Unknown:     unknown,
	}

	scorer := &pass{
		engine:   e,
		batch:    batch,
		selected: selectedNames,
		result:   result,
		seen:     make(map[string]struct{}),
	}

	var weightedSum, weightTotal float64
	for _, id := range roots {
		score, ok := scorer.score(id)
		if !ok {
			continue
		}
		w := e.tree.Node(id).Weight
		weightedSum += score * w
		weightTotal += w
	}
	if weightTotal > 0 {
		result.Overall = weightedSum / weightTotal
	}

	result.Required = e.requiredFor(roots)
	for _, id := range roots {
		e.tree.AddResult(id, model.Outcome{
			RunID:     result.RunID,
			Score:     result.Overall,
			CreatedAt: result.CreatedAt,
		})
	}

	e.log.Info("assessment complete",
		"run", result.RunID,
		"overall", result.Overall,
		"goals", len(result.Goals),
		"metrics", len(result.Metrics),
		"records", batch.Len(),
	)
	return result, nil
}

// resolveSelection maps goal names to subtree roots, dropping nested
// duplicates (a goal inside another selected subtree).
func (e *Engine) resolveSelection(selection []string) ([]model.NodeID, []string) {
	if len(selection) == 0 {
		return e.tree.Roots(), nil
	}
	var ids []model.NodeID
	var unknown []string
	for _, name := range selection {
		id, ok := e.tree.Find(name)
		if !ok {
			e.log.Warn("selected goal not in model", "goal", name)
			unknown = append(unknown, name)
			continue
		}
		ids = append(ids, id)
	}
	var roots []model.NodeID
	for _, id := range ids {
		if !e.insideAny(id, ids) {
			roots = append(roots, id)
		}
	}
	return roots, unknown
}

// requiredFor unions the telemetry categories needed by the selected
// subtrees; the instrumentation generator consumes this to decide what to
// instrument.
func (e *Engine) requiredFor(roots []model.NodeID) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, id := range roots {
		e.tree.WalkFrom(id, func(_ model.NodeID, g *model.Goal) {
			for _, cat := range g.Metrics.Required() {
				if _, ok := seen[cat]; ok {
					continue
				}
				seen[cat] = struct{}{}
				out = append(out, cat)
			}
		})
	}
	return out
}

func (e *Engine) insideAny(id model.NodeID, ids []model.NodeID) bool {
	for cur := e.tree.Node(id).Parent; cur != model.None; cur = e.tree.Node(cur).Parent {
		for _, other := range ids {
			if cur == other {
				return true
			}
		}
	}
	return false
}

// #endregion run

// #region pass

// pass carries the state of one bottom-up scoring traversal.
type pass struct {
	engine   *Engine
	batch    *telemetry.Batch
	selected map[string]struct{}
	result   *Result
	seen     map[string]struct{} // acronyms already in the flattened list
}

// score aggregates one subtree bottom-up. The boolean reports whether the
// subtree contributed anything: empty subtrees are excluded from parent
// averages instead of dragging them to zero.
func (p *pass) score(id model.NodeID) (float64, bool) {
	tree := p.engine.tree
	node := tree.Node(id)

	if node.IsLeaf() {
		return p.scoreLeaf(id, node)
	}

	var weightedSum, weightTotal float64
	for _, cid := range node.Children {
		childScore, ok := p.score(cid)
		if !ok {
			continue
		}
		w := tree.Node(cid).Weight
		weightedSum += childScore * w
		weightTotal += w
	}
	if weightTotal == 0 {
		return 0, false
	}
	score := weightedSum / weightTotal
	p.record(id, node, score)
	return score, true
}

// scoreLeaf computes, interprets and weight-averages the leaf's metrics.
func (p *pass) scoreLeaf(id model.NodeID, node *model.Goal) (float64, bool) {
	if node.Metrics.Len() == 0 {
		p.result.EmptyLeaves = append(p.result.EmptyLeaves, node.Name)
		return 0, false
	}

	var weightedSum, weightTotal float64
	for _, m := range node.Metrics.All() {
		value := m.Compute(p.batch)

		in := interpret.New(m, node, p.engine.opts.Benchmarks.For(m.Acronym()), p.engine.opts.Dynamic)
		normalized := in.Interpret()
		weight := in.Weight(p.selected)
		// history gains the current value only after interpretation, so a
		// dynamic benchmark is the maximum of past passes, not of this one
		m.RecordValue()
		weightedSum += normalized * weight
		weightTotal += weight

		if _, dup := p.seen[m.Acronym()]; !dup {
			p.seen[m.Acronym()] = struct{}{}
			p.result.Metrics = append(p.result.Metrics, MetricValue{
				Name:        m.Name(),
				Acronym:     m.Acronym(),
				Unit:        m.Unit(),
				Value:       value,
				Interpreted: normalized,
				Weight:      weight,
				Goal:        node.Name,
			})
		}
	}
	if weightTotal == 0 {
		return 0, false
	}
	score := weightedSum / weightTotal
	p.record(id, node, score)
	return score, true
}

func (p *pass) record(id model.NodeID, node *model.Goal, score float64) {
	p.result.Goals = append(p.result.Goals, GoalScore{
		Name:    node.Name,
		Path:    p.engine.tree.Path(id),
		Score:   score,
		Weight:  node.Weight,
		Metrics: node.Metrics.Len(),
	})
}

// #endregion pass
