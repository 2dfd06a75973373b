package telemetry

// #region keys
// Well-known attribute keys produced by the collector.
const (
	KeySessionID  = "app.session.id"
	KeyUserID     = "app.user.id"
	KeyVisitID    = "app.visit.id"
	KeyEventType  = "event_type"
	KeyHTTPMethod = "http.method"
	KeyHTTPStatus = "http.status_code"
	KeyHTTPURL    = "http.url"
	KeyDBQuery    = "db.statement"
)

// #endregion keys

// #region record

// Record is one observed event or traced operation. Attributes and timing
// fields arrive as raw JSON values; read access goes through the typed
// accessors so that an absent attribute is an explicit case, never an
// untyped nil flowing into arithmetic.
type Record struct {
	Name       string         `json:"name,omitempty"`
	Attributes map[string]any `json:"attributes"`
	StartTime  any            `json:"startTime,omitempty"`
	EndTime    any            `json:"endTime,omitempty"`
	Duration   any            `json:"duration,omitempty"`
}

// #endregion record

// #region accessors

// Attr returns the raw attribute value and whether the key is present.
func (r Record) Attr(key string) (any, bool) {
	if r.Attributes == nil {
		return nil, false
	}
	v, ok := r.Attributes[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether the attribute key is present with a non-nil value.
func (r Record) Has(key string) bool {
	_, ok := r.Attr(key)
	return ok
}

// Str returns the attribute as a string. Non-string values report absent.
func (r Record) Str(key string) (string, bool) {
	v, ok := r.Attr(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Float returns the attribute as a float64, converting the numeric types
// JSON decoding or programmatic construction can produce.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r.Attr(key)
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

// Int returns the attribute as an int, truncating a float value.
func (r Record) Int(key string) (int, bool) {
	f, ok := r.Float(key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// #endregion accessors

// #region timing

// StartMillis returns the record start time in milliseconds since epoch.
func (r Record) StartMillis() (float64, bool) {
	return Millis(r.StartTime)
}

// EndMillis returns the record end time in milliseconds since epoch.
func (r Record) EndMillis() (float64, bool) {
	return Millis(r.EndTime)
}

// DurationMillis returns the record duration in milliseconds. An explicit
// duration field wins; otherwise the end−start span is used when both
// timestamps are present.
func (r Record) DurationMillis() (float64, bool) {
	if d, ok := Millis(r.Duration); ok {
		return d, true
	}
	start, okStart := r.StartMillis()
	end, okEnd := r.EndMillis()
	if !okStart || !okEnd {
		return 0, false
	}
	return end - start, true
}

// Millis normalizes a timestamp value to milliseconds. Accepted shapes are a
// plain millisecond number or a [seconds, nanoseconds] pair; every timing
// computation in the engine converts through here before arithmetic.
func Millis(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if f, ok := asFloat(v); ok {
		return f, true
	}
	pair, ok := asPair(v)
	if !ok {
		return 0, false
	}
	return pair[0]*1000 + pair[1]/1e6, true
}

// #endregion timing

// #region helpers

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// asPair extracts a [seconds, nanoseconds] pair from either a decoded JSON
// []any or a typed slice.
func asPair(v any) ([2]float64, bool) {
	switch p := v.(type) {
	case []any:
		if len(p) != 2 {
			return [2]float64{}, false
		}
		sec, okSec := asFloat(p[0])
		ns, okNs := asFloat(p[1])
		if !okSec || !okNs {
			return [2]float64{}, false
		}
		return [2]float64{sec, ns}, true
	case []float64:
		if len(p) != 2 {
			return [2]float64{}, false
		}
		return [2]float64{p[0], p[1]}, true
	case [2]float64:
		return p, true
	}
	return [2]float64{}, false
}

// #endregion helpers
