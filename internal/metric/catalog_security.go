package metric

import (
	"github.com/danielpatrickdp/quality-assessor/internal/telemetry"
)

// Security catalog: login outcomes and user attribution coverage.

// #region acronyms
const (
	AcrLoginCount       = "LGC"
	AcrFailedLogins     = "FLC"
	AcrFailedLoginRatio = "FLR"
	AcrUserAttribution  = "UAR"
)

// #endregion acronyms

// Event types emitted by the instrumented authentication flow.
const (
	eventLogin       = "login"
	eventLoginFailed = "login_failed"
)

// #region constructors

// NewLoginCount counts successful login events.
func NewLoginCount() Metric {
	return New(
		"login count",
		AcrLoginCount,
		"logins",
		"successful login events in the batch",
		[]string{CategoryUserEvents},
		CountWhere(AttrEquals(telemetry.KeyEventType, eventLogin)),
	)
}

// NewFailedLogins counts failed login events.
func NewFailedLogins() Metric {
	return New(
		"failed logins",
		AcrFailedLogins,
		"logins",
		"failed login events in the batch",
		[]string{CategoryUserEvents},
		CountWhere(AttrEquals(telemetry.KeyEventType, eventLoginFailed)),
	)
}

// NewFailedLoginRatio divides failed logins by all login attempts.
func NewFailedLoginRatio() Metric {
	attempts := Any(
		AttrEquals(telemetry.KeyEventType, eventLogin),
		AttrEquals(telemetry.KeyEventType, eventLoginFailed),
	)
	return New(
		"failed login ratio",
		AcrFailedLoginRatio,
		"ratio",
		"failed login events per login attempt",
		[]string{CategoryUserEvents},
		RatioOf(
			CountWhere(AttrEquals(telemetry.KeyEventType, eventLoginFailed)),
			CountWhere(attempts),
		),
	)
}

// NewUserAttribution measures how many records carry a user id, i.e. how
// much of the telemetry is accountable to a user.
func NewUserAttribution() Metric {
	return New(
		"user attribution ratio",
		AcrUserAttribution,
		"ratio",
		"share of records attributable to a user id",
		[]string{CategoryTracing},
		RatioOf(
			CountWhere(HasAttr(telemetry.KeyUserID)),
			func(b *telemetry.Batch) float64 { return float64(b.Len()) },
		),
	)
}

// #endregion constructors
