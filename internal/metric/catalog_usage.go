package metric

import (
	"github.com/danielpatrickdp/quality-assessor/internal/telemetry"
)

// Usage catalog: session, user and visit population metrics built from the
// correlation ids the collector attaches to every record.

// #region acronyms
const (
	AcrDistinctSessions = "DSC"
	AcrDistinctUsers    = "DUC"
	AcrDistinctVisits   = "DVC"
	AcrSessionDuration  = "SDU"
	AcrEventsPerVisit   = "EPV"
	AcrVisitsPerUser    = "VPU"
	AcrEventsPerSession = "EPS"
)

// #endregion acronyms

// #region constructors

// NewDistinctSessions counts distinct session ids.
func NewDistinctSessions() Metric {
	return New(
		"distinct sessions",
		AcrDistinctSessions,
		"sessions",
		"number of distinct session ids observed in the batch",
		[]string{CategoryTracing},
		DistinctCount(telemetry.KeySessionID),
	)
}

// NewDistinctUsers counts distinct user ids.
func NewDistinctUsers() Metric {
	return New(
		"distinct users",
		AcrDistinctUsers,
		"users",
		"number of distinct user ids observed in the batch",
		[]string{CategoryTracing},
		DistinctCount(telemetry.KeyUserID),
	)
}

// NewDistinctVisits counts distinct visit ids.
func NewDistinctVisits() Metric {
	return New(
		"distinct visits",
		AcrDistinctVisits,
		"visits",
		"number of distinct visit ids observed in the batch",
		[]string{CategoryUserEvents},
		DistinctCount(telemetry.KeyVisitID),
	)
}

// NewSessionDuration averages the first-to-last timestamp span per session.
func NewSessionDuration() Metric {
	return New(
		"session duration",
		AcrSessionDuration,
		"ms",
		"mean timestamp span of records grouped by session id",
		[]string{CategoryTracing},
		GroupedAverage(telemetry.KeySessionID, StatSpan),
	)
}

// NewEventsPerVisit averages the record count per visit.
func NewEventsPerVisit() Metric {
	return New(
		"events per visit",
		AcrEventsPerVisit,
		"events",
		"mean number of records grouped by visit id",
		[]string{CategoryUserEvents},
		GroupedAverage(telemetry.KeyVisitID, StatCount),
	)
}

// NewVisitsPerUser divides distinct visits by distinct users.
func NewVisitsPerUser() Metric {
	return New(
		"visits per user",
		AcrVisitsPerUser,
		"visits/user",
		"distinct visit count per distinct user",
		[]string{CategoryUserEvents},
		RatioOf(
			DistinctCount(telemetry.KeyVisitID),
			DistinctCount(telemetry.KeyUserID),
		),
	)
}

// #endregion constructors

// #region events-per-session

// EventsPerSession divides the batch record count by a session count. The
// session count defaults to the distinct sessions in the batch but can be
// pinned from an external source; pinning it to zero is rejected because it
// would poison the division.
type EventsPerSession struct {
	Info
	sessions int
	pinned   bool
}

// NewEventsPerSession builds the metric with the session count derived from
// the batch.
func NewEventsPerSession() *EventsPerSession {
	m := &EventsPerSession{}
	m.Info = NewInfo(
		"events per session",
		AcrEventsPerSession,
		"events",
		"records observed per session",
		[]string{CategoryTracing},
	)
	return m
}

// SetSessions pins the denominator to an externally known session count.
// An explicit zero is a configuration bug and raises immediately instead of
// deferring to a zero division at computation time.
func (m *EventsPerSession) SetSessions(n int) error {
	if n == 0 {
		return &InvalidStateError{Metric: m.Name(), Reason: "sessions cannot be zero"}
	}
	if n < 0 {
		return &InvalidStateError{Metric: m.Name(), Reason: "sessions cannot be negative"}
	}
	m.sessions = n
	m.pinned = true
	return nil
}

// Compute divides record count by the session count; no sessions ⇒ 0.
func (m *EventsPerSession) Compute(batch *telemetry.Batch) float64 {
	sessions := float64(m.sessions)
	if !m.pinned {
		sessions = DistinctCount(telemetry.KeySessionID)(batch)
	}
	if sessions == 0 {
		return m.set(0)
	}
	return m.set(float64(batch.Len()) / sessions)
}

// #endregion events-per-session
