package model

// Goal names of the built-in quality model. Mappers register under these
// names; selections and YAML documents may use any casing.
const (
	GoalPerformance         = "Performance Efficiency"
	GoalTimeBehavior        = "Time Behavior"
	GoalResourceUtilization = "Resource Utilization"
	GoalCapacity            = "Capacity"

	GoalReliability    = "Reliability"
	GoalMaturity       = "Maturity"
	GoalAvailability   = "Availability"
	GoalFaultTolerance = "Fault Tolerance"

	GoalUsability    = "Usability"
	GoalOperability  = "Operability"
	GoalLearnability = "Learnability"

	GoalSecurity        = "Security"
	GoalConfidentiality = "Confidentiality"
	GoalAccountability  = "Accountability"
	GoalAuthenticity    = "Authenticity"
)

// #region default-model

// DefaultModel builds the ISO/IEC-25010-style characteristic tree the
// engine assesses against when no custom model document is configured.
// Weights start at 1; mappers overwrite leaf weights when they populate
// metrics.
func DefaultModel() *Tree {
	t := NewTree()

	characteristics := []struct {
		name        string
		description string
		subs        []string
	}{
		{
			name:        GoalPerformance,
			description: "performance relative to the amount of resources used",
			subs:        []string{GoalTimeBehavior, GoalResourceUtilization, GoalCapacity},
		},
		{
			name:        GoalReliability,
			description: "degree to which the system performs its functions under stated conditions",
			subs:        []string{GoalMaturity, GoalAvailability, GoalFaultTolerance},
		},
		{
			name:        GoalUsability,
			description: "degree to which the system can be used effectively by its users",
			subs:        []string{GoalOperability, GoalLearnability},
		},
		{
			name:        GoalSecurity,
			description: "degree to which information and data are protected",
			subs:        []string{GoalConfidentiality, GoalAccountability, GoalAuthenticity},
		},
	}

	for _, c := range characteristics {
		root, err := t.AddRoot(c.name, c.description, 1, KindComposite)
		if err != nil {
			// names above are distinct constants
			panic(err)
		}
		for _, sub := range c.subs {
			if _, err := t.AddChild(root, sub, "", 1, KindLeaf); err != nil {
				panic(err)
			}
		}
	}
	return t
}

// #endregion default-model
