package metric

import (
	"time"

	"github.com/danielpatrickdp/quality-assessor/internal/telemetry"
)

// Performance catalog: response times, throughput and database timing,
// all computed from http/db tagged trace records.

// #region acronyms
const (
	AcrAvgResponseTime     = "ART"
	AcrResponseTimeP95     = "RTP"
	AcrThroughput          = "THR"
	AcrDBQueryTime         = "DQT"
	AcrDBQueriesPerRequest = "DQR"
)

// #endregion acronyms

// throughputWindow clips the observed request span; a burst capture longer
// than this is rated against the window, not the full span.
const throughputWindow = 10 * time.Second

// #region constructors

// NewAvgResponseTime averages the duration of http-tagged records.
func NewAvgResponseTime() Metric {
	return New(
		"average response time",
		AcrAvgResponseTime,
		"ms",
		"mean duration of traced http requests",
		[]string{CategoryTracing},
		MeanOf(DurationWhere(HasAttr(telemetry.KeyHTTPMethod))),
	)
}

// NewResponseTimeP95 returns the 95th percentile of http request durations.
func NewResponseTimeP95() Metric {
	return New(
		"response time 95th percentile",
		AcrResponseTimeP95,
		"ms",
		"95th percentile duration of traced http requests",
		[]string{CategoryTracing},
		Percentile(0.95, DurationWhere(HasAttr(telemetry.KeyHTTPMethod))),
	)
}

// NewThroughput rates http requests per second over the clipped observation
// window.
func NewThroughput() Metric {
	return New(
		"request throughput",
		AcrThroughput,
		"req/s",
		"http requests per second inside the observed window",
		[]string{CategoryTracing},
		WindowedRate(HasAttr(telemetry.KeyHTTPMethod), throughputWindow),
	)
}

// NewDBQueryTime averages the duration of database statements.
func NewDBQueryTime() Metric {
	return New(
		"database query time",
		AcrDBQueryTime,
		"ms",
		"mean duration of traced database statements",
		[]string{CategoryTracing},
		MeanOf(DurationWhere(HasAttr(telemetry.KeyDBQuery))),
	)
}

// NewDBQueriesPerRequest divides database statement count by http request
// count.
func NewDBQueriesPerRequest() Metric {
	return New(
		"database queries per request",
		AcrDBQueriesPerRequest,
		"queries/req",
		"database statements issued per traced http request",
		[]string{CategoryTracing},
		RatioOf(
			CountWhere(HasAttr(telemetry.KeyDBQuery)),
			CountWhere(HasAttr(telemetry.KeyHTTPMethod)),
		),
	)
}

// #endregion constructors
