package mapper

import (
	"github.com/danielpatrickdp/quality-assessor/internal/metric"
	"github.com/danielpatrickdp/quality-assessor/internal/model"
)

// Concrete mappers, one per leaf goal of the built-in model. Weights are
// the fixed domain constants each goal carries once it is selected for
// assessment.

// Fixed goal weights.
const (
	weightTimeBehavior        = 3
	weightResourceUtilization = 2
	weightCapacity            = 2
	weightMaturity            = 2
	weightAvailability        = 3
	weightFaultTolerance      = 1
	weightOperability         = 2
	weightLearnability        = 1
	weightConfidentiality     = 3
	weightAccountability      = 1
	weightAuthenticity        = 2
)

// #region performance

// NewTimeBehavior maps response-time and throughput metrics.
func NewTimeBehavior() Mapper {
	return base{
		goal:   model.GoalTimeBehavior,
		weight: weightTimeBehavior,
		build: func(Application) []metric.Metric {
			return []metric.Metric{
				metric.NewAvgResponseTime(),
				metric.NewResponseTimeP95(),
				metric.NewThroughput(),
			}
		},
	}
}

// NewResourceUtilization maps database metrics; only backend applications
// issue traced database statements, so the mapper contributes nothing for
// other types.
func NewResourceUtilization() Mapper {
	return base{
		goal:    model.GoalResourceUtilization,
		weight:  weightResourceUtilization,
		applies: Application.IsBackend,
		build: func(Application) []metric.Metric {
			return []metric.Metric{
				metric.NewDBQueryTime(),
				metric.NewDBQueriesPerRequest(),
			}
		},
	}
}

// NewCapacity maps session population metrics.
func NewCapacity() Mapper {
	return base{
		goal:   model.GoalCapacity,
		weight: weightCapacity,
		build: func(Application) []metric.Metric {
			return []metric.Metric{
				metric.NewDistinctSessions(),
				metric.NewEventsPerSession(),
			}
		},
	}
}

// #endregion performance

// #region reliability

// NewMaturity maps the error-rate composite and its request denominator.
func NewMaturity() Mapper {
	return base{
		goal:   model.GoalMaturity,
		weight: weightMaturity,
		build: func(Application) []metric.Metric {
			return []metric.Metric{
				metric.NewErrorRate(),
				metric.NewRequestCount(),
			}
		},
	}
}

// NewAvailability maps the availability ratio.
func NewAvailability() Mapper {
	return base{
		goal:   model.GoalAvailability,
		weight: weightAvailability,
		build: func(Application) []metric.Metric {
			return []metric.Metric{metric.NewAvailability()}
		},
	}
}

// NewFaultTolerance maps the raw server-error count.
func NewFaultTolerance() Mapper {
	return base{
		goal:   model.GoalFaultTolerance,
		weight: weightFaultTolerance,
		build: func(Application) []metric.Metric {
			return []metric.Metric{metric.NewErrorCount()}
		},
	}
}

// #endregion reliability

// #region usability

// NewOperability maps session and visit flow metrics.
func NewOperability() Mapper {
	return base{
		goal:   model.GoalOperability,
		weight: weightOperability,
		build: func(Application) []metric.Metric {
			return []metric.Metric{
				metric.NewSessionDuration(),
				metric.NewEventsPerVisit(),
				metric.NewDistinctVisits(),
			}
		},
	}
}

// NewLearnability maps repeat-usage metrics; visit ids only exist for
// frontend applications.
func NewLearnability() Mapper {
	return base{
		goal:    model.GoalLearnability,
		weight:  weightLearnability,
		applies: Application.IsFrontend,
		build: func(Application) []metric.Metric {
			return []metric.Metric{
				metric.NewVisitsPerUser(),
				metric.NewEventsPerVisit(),
			}
		},
	}
}

// #endregion usability

// #region security

// NewConfidentiality maps login flow metrics.
func NewConfidentiality() Mapper {
	return base{
		goal:   model.GoalConfidentiality,
		weight: weightConfidentiality,
		build: func(Application) []metric.Metric {
			return []metric.Metric{
				metric.NewLoginCount(),
				metric.NewFailedLoginRatio(),
			}
		},
	}
}

// NewAccountability maps user attribution coverage.
func NewAccountability() Mapper {
	return base{
		goal:   model.GoalAccountability,
		weight: weightAccountability,
		build: func(Application) []metric.Metric {
			return []metric.Metric{metric.NewUserAttribution()}
		},
	}
}

// NewAuthenticity maps failed authentication metrics.
func NewAuthenticity() Mapper {
	return base{
		goal:   model.GoalAuthenticity,
		weight: weightAuthenticity,
		build: func(Application) []metric.Metric {
			return []metric.Metric{
				metric.NewFailedLogins(),
				metric.NewFailedLoginRatio(),
			}
		},
	}
}

// #endregion security
