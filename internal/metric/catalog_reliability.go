package metric

import (
	"github.com/danielpatrickdp/quality-assessor/internal/telemetry"
)

// Reliability catalog: request and error populations plus the composite
// error-rate/availability pair derived from them.

// #region acronyms
const (
	AcrErrorCount   = "ERC"
	AcrRequestCount = "RQC"
	AcrErrorRate    = "ERR"
	AcrAvailability = "AVA"
)

// #endregion acronyms

// serverErrorStatus is the lowest http status treated as a server failure.
const serverErrorStatus = 500

// #region constructors

// NewErrorCount counts http records with a 5xx status.
func NewErrorCount() Metric {
	return New(
		"error count",
		AcrErrorCount,
		"errors",
		"traced http requests answered with a server error status",
		[]string{CategoryTracing},
		CountWhere(StatusAtLeast(serverErrorStatus)),
	)
}

// NewRequestCount counts http-tagged records.
func NewRequestCount() Metric {
	return New(
		"request count",
		AcrRequestCount,
		"requests",
		"traced http requests in the batch",
		[]string{CategoryTracing},
		CountWhere(HasAttr(telemetry.KeyHTTPMethod)),
	)
}

// NewErrorRate is the composite quotient error count ÷ request count. Both
// children compute against the same batch; zero requests ⇒ 0.
func NewErrorRate() Metric {
	c := NewComposite(
		"error rate",
		AcrErrorRate,
		"ratio",
		"server errors per traced http request",
		CombineQuotient,
	)
	c.AddChild(NewErrorCount())
	c.AddChild(NewRequestCount())
	return c
}

// NewAvailability is 1 − error rate, gated on requests being present at
// all: an empty batch yields 0, not a perfect score.
func NewAvailability() Metric {
	return New(
		"availability",
		AcrAvailability,
		"ratio",
		"share of traced http requests answered without a server error",
		[]string{CategoryTracing},
		Complement(
			RatioOf(
				CountWhere(StatusAtLeast(serverErrorStatus)),
				CountWhere(HasAttr(telemetry.KeyHTTPMethod)),
			),
			CountWhere(HasAttr(telemetry.KeyHTTPMethod)),
		),
	)
}

// #endregion constructors
