package mapper

import (
	"fmt"
	"sort"
)

// #region registry

// Factory builds a fresh mapper instance.
type Factory func() Mapper

// Registry is the explicit goal-name → mapper-factory table built at
// startup. Unmapped goals are a detectable, enumerable state rather than a
// fallen-through switch default.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a goal name to a mapper factory. Registering the same
// goal twice is a configuration bug.
func (r *Registry) Register(goalName string, f Factory) error {
	key := normalize(goalName)
	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("mapper for goal %q already registered", goalName)
	}
	r.factories[key] = f
	return nil
}

// Lookup returns a fresh mapper for the goal name, if one is registered.
func (r *Registry) Lookup(goalName string) (Mapper, bool) {
	f, ok := r.factories[normalize(goalName)]
	if !ok {
		return nil, false
	}
	return f(), true
}

// GoalNames returns the registered (normalized) goal names, sorted.
func (r *Registry) GoalNames() []string {
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// #endregion registry

// #region default-registry

// DefaultRegistry binds every built-in mapper to its goal.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, f := range []Factory{
		NewTimeBehavior,
		NewResourceUtilization,
		NewCapacity,
		NewMaturity,
		NewAvailability,
		NewFaultTolerance,
		NewOperability,
		NewLearnability,
		NewConfidentiality,
		NewAccountability,
		NewAuthenticity,
	} {
		m := f()
		if err := r.Register(m.GoalName(), f); err != nil {
			// built-in goal names are distinct constants
			panic(err)
		}
	}
	return r
}

// #endregion default-registry
