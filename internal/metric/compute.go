package metric

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/danielpatrickdp/quality-assessor/internal/telemetry"
)

// Generic computation kernels. Every concrete metric in the catalog is an
// instantiation of one of these, so the edge policy (empty set, missing
// attribute, zero denominator ⇒ 0) lives here once.

// #region predicates

// Predicate selects records for counting kernels.
type Predicate func(telemetry.Record) bool

// HasAttr matches records carrying the attribute key.
func HasAttr(key string) Predicate {
	return func(r telemetry.Record) bool { return r.Has(key) }
}

// AttrEquals matches records whose string attribute equals value.
func AttrEquals(key, value string) Predicate {
	return func(r telemetry.Record) bool {
		s, ok := r.Str(key)
		return ok && s == value
	}
}

// StatusAtLeast matches records whose http status code is >= min.
func StatusAtLeast(min int) Predicate {
	return func(r telemetry.Record) bool {
		code, ok := r.Int(telemetry.KeyHTTPStatus)
		return ok && code >= min
	}
}

// Any matches when any of the predicates matches.
func Any(preds ...Predicate) Predicate {
	return func(r telemetry.Record) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

// #endregion predicates

// #region extractors

// Extractor pulls one numeric value out of a record, reporting absence.
type Extractor func(telemetry.Record) (float64, bool)

// DurationWhere extracts the duration of records matching pred.
func DurationWhere(pred Predicate) Extractor {
	return func(r telemetry.Record) (float64, bool) {
		if !pred(r) {
			return 0, false
		}
		return r.DurationMillis()
	}
}

// #endregion extractors

// #region counting

// CountWhere counts records matching pred.
func CountWhere(pred Predicate) Func {
	return func(b *telemetry.Batch) float64 {
		var n int
		for _, r := range b.Records() {
			if pred(r) {
				n++
			}
		}
		return float64(n)
	}
}

// DistinctCount counts distinct values of one attribute key. Records
// without the key are skipped.
func DistinctCount(key string) Func {
	return func(b *telemetry.Batch) float64 {
		seen := make(map[string]struct{})
		for _, r := range b.Records() {
			v, ok := r.Attr(key)
			if !ok {
				continue
			}
			seen[attrKey(v)] = struct{}{}
		}
		return float64(len(seen))
	}
}

// attrKey stringifies an attribute value for identity comparison. Session
// and user ids are usually strings already; numbers group by their printed
// form.
func attrKey(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// #endregion counting

// #region ratio

// RatioOf divides the numerator kernel by the denominator kernel, yielding
// 0 when the denominator is 0.
func RatioOf(numerator, denominator Func) Func {
	return func(b *telemetry.Batch) float64 {
		denom := denominator(b)
		if denom == 0 {
			return 0
		}
		return numerator(b) / denom
	}
}

// Complement returns 1 − fn, but stays 0 when the gate kernel is 0 so that
// an empty batch still resolves to 0 (an availability of 1 with zero
// observed requests would be an invented signal).
func Complement(fn, gate Func) Func {
	return func(b *telemetry.Batch) float64 {
		if gate(b) == 0 {
			return 0
		}
		return 1 - fn(b)
	}
}

// #endregion ratio

// #region grouped

// GroupStat selects the per-group statistic for GroupedAverage.
type GroupStat int

const (
	// StatCount is the number of records in the group.
	StatCount GroupStat = iota
	// StatSpan is the max-end minus min-start timestamp span of the group
	// in milliseconds. Groups without timed records contribute 0.
	StatSpan
)

// GroupedAverage groups records by a correlation key, computes the per-group
// statistic and averages it across groups. No groups ⇒ 0.
func GroupedAverage(key string, stat GroupStat) Func {
	return func(b *telemetry.Batch) float64 {
		type span struct {
			count    int
			minStart float64
			maxEnd   float64
			timed    bool
		}
		groups := make(map[string]*span)
		for _, r := range b.Records() {
			v, ok := r.Attr(key)
			if !ok {
				continue
			}
			g := groups[attrKey(v)]
			if g == nil {
				g = &span{}
				groups[attrKey(v)] = g
			}
			g.count++
			start, okStart := r.StartMillis()
			end, okEnd := r.EndMillis()
			if !okStart {
				continue
			}
			if !okEnd {
				end = start
			}
			if !g.timed || start < g.minStart {
				g.minStart = start
			}
			if !g.timed || end > g.maxEnd {
				g.maxEnd = end
			}
			g.timed = true
		}
		if len(groups) == 0 {
			return 0
		}
		var sum float64
		for _, g := range groups {
			switch stat {
			case StatCount:
				sum += float64(g.count)
			case StatSpan:
				if g.timed {
					sum += g.maxEnd - g.minStart
				}
			}
		}
		return sum / float64(len(groups))
	}
}

// #endregion grouped

// #region windowed

// WindowedRate computes events-per-second for records matching pred over
// the observed min-start/max-end window, clipped to maxWindow when the
// actual span exceeds it. Only records starting inside the clipped window
// count. Zero or negative span ⇒ 0.
func WindowedRate(pred Predicate, maxWindow time.Duration) Func {
	windowMs := float64(maxWindow.Milliseconds())
	return func(b *telemetry.Batch) float64 {
		type timed struct{ start float64 }
		var matches []timed
		var minStart, maxEnd float64
		first := true
		for _, r := range b.Records() {
			if !pred(r) {
				continue
			}
			start, ok := r.StartMillis()
			if !ok {
				continue
			}
			end, ok := r.EndMillis()
			if !ok {
				end = start
			}
			matches = append(matches, timed{start: start})
			if first || start < minStart {
				minStart = start
			}
			if first || end > maxEnd {
				maxEnd = end
			}
			first = false
		}
		if len(matches) == 0 {
			return 0
		}
		span := maxEnd - minStart
		if span <= 0 {
			return 0
		}
		if span > windowMs {
			span = windowMs
		}
		var count int
		for _, m := range matches {
			if m.start <= minStart+span {
				count++
			}
		}
		return float64(count) / (span / 1000)
	}
}

// #endregion windowed

// #region percentile

// Percentile extracts values, sorts ascending and indexes at floor(p·n).
// Empty extraction ⇒ 0.
func Percentile(p float64, extract Extractor) Func {
	return func(b *telemetry.Batch) float64 {
		var values []float64
		for _, r := range b.Records() {
			if v, ok := extract(r); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			return 0
		}
		sort.Float64s(values)
		idx := int(math.Floor(p * float64(len(values))))
		if idx >= len(values) {
			idx = len(values) - 1
		}
		return values[idx]
	}
}

// MeanOf averages extracted values. Empty extraction ⇒ 0.
func MeanOf(extract Extractor) Func {
	return func(b *telemetry.Batch) float64 {
		var sum float64
		var n int
		for _, r := range b.Records() {
			if v, ok := extract(r); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			return 0
		}
		return sum / float64(n)
	}
}

// #endregion percentile
