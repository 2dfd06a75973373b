package model

import (
	"testing"
	"time"
)

func twoLevel(t *testing.T) (*Tree, NodeID, NodeID, NodeID) {
	t.Helper()
	tree := NewTree()
	root, err := tree.AddRoot("Performance", "", 1, KindComposite)
	if err != nil {
		t.Fatalf("AddRoot: %v", err)
	}
	timeBehavior, err := tree.AddChild(root, "Time Behavior", "", 2, KindLeaf)
	if err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	capacity, err := tree.AddChild(root, "Capacity", "", 1, KindLeaf)
	if err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	return tree, root, timeBehavior, capacity
}

func TestAddChildSetsParent(t *testing.T) {
	tree, root, timeBehavior, _ := twoLevel(t)
	if tree.Node(timeBehavior).Parent != root {
		t.Fatal("child parent back-reference not set")
	}
	if len(tree.Node(root).Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(tree.Node(root).Children))
	}
}

func TestAddChildToLeafFails(t *testing.T) {
	tree, _, timeBehavior, _ := twoLevel(t)
	if _, err := tree.AddChild(timeBehavior, "sub", "", 1, KindLeaf); err == nil {
		t.Fatal("expected error adding child to leaf")
	}
}

func TestDuplicateSiblingNameFails(t *testing.T) {
	tree, root, _, _ := twoLevel(t)
	if _, err := tree.AddChild(root, "Capacity", "", 1, KindLeaf); err == nil {
		t.Fatal("expected error for duplicate sibling name")
	}
}

func TestChildLookupIsDirectOnly(t *testing.T) {
	tree := NewTree()
	root, _ := tree.AddRoot("Root", "", 1, KindComposite)
	mid, _ := tree.AddChild(root, "Mid", "", 1, KindComposite)
	leaf, _ := tree.AddChild(mid, "Leaf", "", 1, KindLeaf)

	if _, ok := tree.Child(root, "Leaf"); ok {
		t.Fatal("Child must not search recursively")
	}
	if id, ok := tree.Child(mid, "Leaf"); !ok || id != leaf {
		t.Fatal("direct child lookup failed")
	}
	if !tree.Has(root, "Mid") || tree.Has(root, "Leaf") {
		t.Fatal("Has mismatch")
	}
}

func TestRemoveChildClearsParent(t *testing.T) {
	tree, root, timeBehavior, _ := twoLevel(t)
	if !tree.RemoveChild(root, "Time Behavior") {
		t.Fatal("expected removal to succeed")
	}
	if tree.Node(timeBehavior).Parent != None {
		t.Fatal("removed child parent not cleared")
	}
	if tree.Has(root, "Time Behavior") {
		t.Fatal("removed child still listed")
	}
	if tree.RemoveChild(root, "Time Behavior") {
		t.Fatal("second removal must report false")
	}
}

func TestClear(t *testing.T) {
	tree, root, timeBehavior, capacity := twoLevel(t)
	if err := tree.Clear(root); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(tree.Node(root).Children) != 0 {
		t.Fatal("children not cleared")
	}
	if tree.Node(timeBehavior).Parent != None || tree.Node(capacity).Parent != None {
		t.Fatal("cleared children keep parent reference")
	}
}

func TestWalkChildrenFirst(t *testing.T) {
	tree, _, _, _ := twoLevel(t)
	var order []string
	tree.Walk(func(_ NodeID, g *Goal) { order = append(order, g.Name) })
	want := []string{"Time Behavior", "Capacity", "Performance"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestFindCaseInsensitive(t *testing.T) {
	tree, _, timeBehavior, _ := twoLevel(t)
	id, ok := tree.Find("time behavior")
	if !ok || id != timeBehavior {
		t.Fatalf("expected %d, got %d ok=%v", timeBehavior, id, ok)
	}
	if _, ok := tree.Find("nonexistent"); ok {
		t.Fatal("expected no match")
	}
}

func TestDetachedNodeNotWalked(t *testing.T) {
	tree, root, _, _ := twoLevel(t)
	tree.RemoveChild(root, "Capacity")
	var names []string
	tree.Walk(func(_ NodeID, g *Goal) { names = append(names, g.Name) })
	for _, n := range names {
		if n == "Capacity" {
			t.Fatal("detached node must not be walked")
		}
	}
	if _, ok := tree.Find("Capacity"); ok {
		t.Fatal("detached node must not be found")
	}
}

func TestPath(t *testing.T) {
	tree, _, timeBehavior, _ := twoLevel(t)
	if got := tree.Path(timeBehavior); got != "Performance/Time Behavior" {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestAddResult(t *testing.T) {
	tree, _, timeBehavior, _ := twoLevel(t)
	tree.AddResult(timeBehavior, Outcome{RunID: "r1", Score: 0.8, CreatedAt: time.Now()})
	tree.AddResult(timeBehavior, Outcome{RunID: "r2", Score: 0.9, CreatedAt: time.Now()})
	results := tree.Node(timeBehavior).Results
	if len(results) != 2 || results[0].RunID != "r1" {
		t.Fatalf("unexpected results %+v", results)
	}
}

func TestDefaultModelShape(t *testing.T) {
	tree := DefaultModel()
	if len(tree.Roots()) != 4 {
		t.Fatalf("expected 4 characteristics, got %d", len(tree.Roots()))
	}
	for _, name := range []string{
		GoalTimeBehavior, GoalMaturity, GoalOperability, GoalConfidentiality,
	} {
		id, ok := tree.Find(name)
		if !ok {
			t.Fatalf("missing goal %q", name)
		}
		if !tree.Node(id).IsLeaf() {
			t.Fatalf("goal %q must be a leaf", name)
		}
	}
	for _, root := range tree.Roots() {
		if tree.Node(root).IsLeaf() {
			t.Fatalf("characteristic %q must be composite", tree.Node(root).Name)
		}
	}
}

func TestParseModelDocument(t *testing.T) {
	doc := `
goals:
  - name: Performance
    description: speed
    weight: 2
    goals:
      - name: Time Behavior
        weight: 3
      - name: Capacity
  - name: Reliability
`
	tree, err := ParseModel([]byte(doc))
	if err != nil {
		t.Fatalf("ParseModel: %v", err)
	}
	if len(tree.Roots()) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree.Roots()))
	}
	perf := tree.Node(tree.Roots()[0])
	if perf.Kind != KindComposite || perf.Weight != 2 {
		t.Fatalf("unexpected root %+v", perf)
	}
	tb, ok := tree.Find("Time Behavior")
	if !ok || tree.Node(tb).Weight != 3 || !tree.Node(tb).IsLeaf() {
		t.Fatal("time behavior leaf not parsed")
	}
	rel := tree.Node(tree.Roots()[1])
	if !rel.IsLeaf() || rel.Weight != 1 {
		t.Fatalf("childless root must be a leaf with default weight, got %+v", rel)
	}
}

func TestParseModelErrors(t *testing.T) {
	if _, err := ParseModel([]byte("goals: []")); err == nil {
		t.Fatal("expected error on empty document")
	}
	if _, err := ParseModel([]byte(":")); err == nil {
		t.Fatal("expected error on malformed yaml")
	}
	nameless := `
goals:
  - name: Root
    goals:
      - description: oops
`
	if _, err := ParseModel([]byte(nameless)); err == nil {
		t.Fatal("expected error on nameless goal")
	}
}
