package mapper

import (
	"errors"
	"testing"

	"github.com/danielpatrickdp/quality-assessor/internal/metric"
	"github.com/danielpatrickdp/quality-assessor/internal/model"
)

func backend() Application  { return Application{Name: "shop", Type: "web backend"} }
func frontend() Application { return Application{Name: "shop-ui", Type: "frontend"} }

func mappedDefault(t *testing.T, app Application) *model.Tree {
	t.Helper()
	tree := model.DefaultModel()
	if err := MapTree(tree, DefaultRegistry(), app); err != nil {
		t.Fatalf("MapTree: %v", err)
	}
	return tree
}

func goalNode(t *testing.T, tree *model.Tree, name string) *model.Goal {
	t.Helper()
	id, ok := tree.Find(name)
	if !ok {
		t.Fatalf("goal %q not found", name)
	}
	return tree.Node(id)
}

func TestMapSetsWeightAndMetrics(t *testing.T) {
	tree := mappedDefault(t, backend())
	tb := goalNode(t, tree, model.GoalTimeBehavior)
	if tb.Weight != weightTimeBehavior {
		t.Fatalf("expected weight %d, got %v", weightTimeBehavior, tb.Weight)
	}
	for _, acr := range []string{metric.AcrAvgResponseTime, metric.AcrResponseTimeP95, metric.AcrThroughput} {
		if _, ok := tb.Metrics.Get(acr); !ok {
			t.Fatalf("missing metric %s on time behavior", acr)
		}
	}
}

func TestMapMismatch(t *testing.T) {
	tree := model.DefaultModel()
	capacity, _ := tree.Find(model.GoalCapacity)
	err := NewTimeBehavior().Map(tree, capacity, backend())
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %T", err)
	}
	if mismatch.Goal != model.GoalCapacity {
		t.Fatalf("error must name the offending goal, got %q", mismatch.Goal)
	}
}

func TestMapCaseInsensitiveGoalName(t *testing.T) {
	tree := model.NewTree()
	root, _ := tree.AddRoot("Performance", "", 1, model.KindComposite)
	id, _ := tree.AddChild(root, "time behavior", "", 1, model.KindLeaf)
	if err := NewTimeBehavior().Map(tree, id, backend()); err != nil {
		t.Fatalf("case-insensitive match failed: %v", err)
	}
	if tree.Node(id).Metrics.Len() == 0 {
		t.Fatal("metrics not attached")
	}
}

func TestMapIdempotent(t *testing.T) {
	tree := model.DefaultModel()
	id, _ := tree.Find(model.GoalTimeBehavior)
	m := NewTimeBehavior()
	if err := m.Map(tree, id, backend()); err != nil {
		t.Fatalf("Map: %v", err)
	}
	before := tree.Node(id).Metrics.Len()
	if err := m.Map(tree, id, backend()); err != nil {
		t.Fatalf("second Map: %v", err)
	}
	if got := tree.Node(id).Metrics.Len(); got != before {
		t.Fatalf("re-mapping duplicated metrics: %d -> %d", before, got)
	}
}

func TestApplicationConditioningIsTotal(t *testing.T) {
	backendTree := mappedDefault(t, backend())
	ru := goalNode(t, backendTree, model.GoalResourceUtilization)
	if ru.Metrics.Len() != 2 {
		t.Fatalf("backend must get the full resource set, got %d", ru.Metrics.Len())
	}

	frontendTree := mappedDefault(t, frontend())
	ru = goalNode(t, frontendTree, model.GoalResourceUtilization)
	if ru.Metrics.Len() != 0 {
		t.Fatalf("frontend must get none of the resource set, got %d", ru.Metrics.Len())
	}
	// an inapplicable mapper leaves the default weight untouched
	if ru.Weight != 1 {
		t.Fatalf("inapplicable mapper must not set weight, got %v", ru.Weight)
	}

	learn := goalNode(t, frontendTree, model.GoalLearnability)
	if learn.Metrics.Len() != 2 {
		t.Fatalf("frontend must get the full learnability set, got %d", learn.Metrics.Len())
	}
}

func TestCompositeUnionProperty(t *testing.T) {
	tree := mappedDefault(t, frontend())
	// for every composite, metrics == dedup-by-acronym union of children
	tree.Walk(func(_ model.NodeID, g *model.Goal) {
		if g.IsLeaf() {
			return
		}
		want := metric.NewSet()
		for _, cid := range g.Children {
			want.Union(tree.Node(cid).Metrics)
		}
		if g.Metrics.Len() != want.Len() {
			t.Fatalf("goal %q: union size %d, expected %d", g.Name, g.Metrics.Len(), want.Len())
		}
		for _, m := range want.All() {
			if _, ok := g.Metrics.Get(m.Acronym()); !ok {
				t.Fatalf("goal %q missing %s from child union", g.Name, m.Acronym())
			}
		}
	})
}

func TestUnionFirstOccurrenceWins(t *testing.T) {
	tree := mappedDefault(t, backend())
	// FLR is mapped by both Confidentiality and Authenticity; Security must
	// hold exactly one instance — the one from the first child in order.
	security := goalNode(t, tree, model.GoalSecurity)
	flr, ok := security.Metrics.Get(metric.AcrFailedLoginRatio)
	if !ok {
		t.Fatal("security missing FLR")
	}
	conf := goalNode(t, tree, model.GoalConfidentiality)
	confFLR, _ := conf.Metrics.Get(metric.AcrFailedLoginRatio)
	if flr != confFLR {
		t.Fatal("composite union must keep the first occurrence")
	}
}

func TestUnmappedGoalIsNotAnError(t *testing.T) {
	tree := model.NewTree()
	root, _ := tree.AddRoot("Quality", "", 1, model.KindComposite)
	if _, err := tree.AddChild(root, "Portability", "", 1, model.KindLeaf); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	reg := DefaultRegistry()
	if err := MapTree(tree, reg, backend()); err != nil {
		t.Fatalf("unmapped leaf must not fail mapping: %v", err)
	}
	id, _ := tree.Find("Portability")
	if tree.Node(id).Metrics.Len() != 0 {
		t.Fatal("unmapped leaf must stay empty")
	}
	unmapped := Unmapped(tree, reg)
	if len(unmapped) != 1 || unmapped[0] != "Portability" {
		t.Fatalf("expected [Portability], got %v", unmapped)
	}
}

func TestRegistryDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(model.GoalCapacity, NewCapacity); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("capacity", NewCapacity); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if _, ok := r.Lookup("CAPACITY"); !ok {
		t.Fatal("lookup must normalize case")
	}
}

func TestAttachMetrics(t *testing.T) {
	tree := model.DefaultModel()
	custom := metric.New("checkouts", "CHK", "count", "", nil, nil)
	if err := AttachMetrics(tree, model.GoalOperability, []metric.Metric{custom}); err != nil {
		t.Fatalf("AttachMetrics: %v", err)
	}
	if err := MapTree(tree, DefaultRegistry(), frontend()); err != nil {
		t.Fatalf("MapTree: %v", err)
	}
	// attached metric propagates into the composite union
	usability := goalNode(t, tree, model.GoalUsability)
	if _, ok := usability.Metrics.Get("CHK"); !ok {
		t.Fatal("attached metric not unioned upward")
	}
	if err := AttachMetrics(tree, "No Such Goal", nil); err == nil {
		t.Fatal("expected error for unknown goal")
	}
}
