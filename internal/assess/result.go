package assess

import (
	"fmt"
	"strings"
	"time"

	"github.com/danielpatrickdp/quality-assessor/internal/mapper"
)

// #region result-types

// GoalScore is one scored node of the assessed subtrees.
type GoalScore struct {
	Name    string  `json:"name"`
	Path    string  `json:"path"`
	Score   float64 `json:"score"`
	Weight  float64 `json:"weight"`
	Metrics int     `json:"metrics"`
}

// MetricValue is one computed metric in the flattened report list.
type MetricValue struct {
	Name        string  `json:"name"`
	Acronym     string  `json:"acronym"`
	Unit        string  `json:"unit"`
	Value       float64 `json:"value"`
	Interpreted float64 `json:"interpreted"`
	Weight      float64 `json:"weight"`
	Goal        string  `json:"goal"`
}

// Result is the output of one assessment pass.
type Result struct {
	RunID       string             `json:"run_id"`
	CreatedAt   time.Time          `json:"created_at"`
	Application mapper.Application `json:"application"`
	Overall     float64            `json:"overall"`
	Goals       []GoalScore        `json:"goals"`
	Metrics     []MetricValue      `json:"metrics"`
	// Required is the union of telemetry categories the selected metrics
	// need; the instrumentation generator consumes it.
	Required []string `json:"required_telemetry"`
	// Unknown lists selection names that matched no goal in the model.
	Unknown []string `json:"unknown_selections,omitempty"`
	// EmptyLeaves lists selected leaf goals that ended up with no metrics.
	EmptyLeaves []string `json:"empty_leaves,omitempty"`
}

// #endregion result-types

// #region no-metrics

// NoMetricsError reports a selection whose goals carry no metrics at all:
// an assessment would be an empty report, which the caller must see as an
// actionable condition, not silence.
type NoMetricsError struct {
	Selection []string
}

func (e *NoMetricsError) Error() string {
	return fmt.Sprintf("no metrics mapped for selected goals [%s]", strings.Join(e.Selection, ", "))
}

// #endregion no-metrics
