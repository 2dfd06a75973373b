package telemetry

import (
	"math"
	"strings"
	"testing"
)

func TestAttrAbsent(t *testing.T) {
	rec := Record{Attributes: map[string]any{KeySessionID: "s1", "nil-value": nil}}

	if _, ok := rec.Attr("missing"); ok {
		t.Fatal("expected missing attribute to report absent")
	}
	if _, ok := rec.Attr("nil-value"); ok {
		t.Fatal("expected nil attribute to report absent")
	}
	if v, ok := rec.Attr(KeySessionID); !ok || v != "s1" {
		t.Fatalf("expected s1, got %v ok=%v", v, ok)
	}

	var empty Record
	if _, ok := empty.Attr(KeySessionID); ok {
		t.Fatal("expected absent on nil attribute map")
	}
}

func TestTypedAccessors(t *testing.T) {
	rec := Record{Attributes: map[string]any{
		KeyHTTPMethod: "GET",
		KeyHTTPStatus: float64(503),
		"count":       7,
	}}

	if s, ok := rec.Str(KeyHTTPMethod); !ok || s != "GET" {
		t.Fatalf("Str: got %q ok=%v", s, ok)
	}
	if _, ok := rec.Str(KeyHTTPStatus); ok {
		t.Fatal("Str on numeric attribute must report absent")
	}
	if f, ok := rec.Float(KeyHTTPStatus); !ok || f != 503 {
		t.Fatalf("Float: got %v ok=%v", f, ok)
	}
	if n, ok := rec.Int("count"); !ok || n != 7 {
		t.Fatalf("Int: got %d ok=%v", n, ok)
	}
	if !rec.Has(KeyHTTPMethod) || rec.Has(KeyDBQuery) {
		t.Fatal("Has mismatch")
	}
}

func TestMillisPlainNumber(t *testing.T) {
	ms, ok := Millis(float64(1500))
	if !ok || ms != 1500 {
		t.Fatalf("expected 1500, got %v ok=%v", ms, ok)
	}
	if _, ok := Millis(nil); ok {
		t.Fatal("nil must not normalize")
	}
	if _, ok := Millis("12"); ok {
		t.Fatal("string must not normalize")
	}
}

func TestMillisSecNanosPair(t *testing.T) {
	// 2 seconds + 500ms expressed as nanoseconds
	ms, ok := Millis([]any{float64(2), float64(500_000_000)})
	if !ok || math.Abs(ms-2500) > 1e-9 {
		t.Fatalf("expected 2500, got %v ok=%v", ms, ok)
	}

	ms, ok = Millis([2]float64{1, 0})
	if !ok || ms != 1000 {
		t.Fatalf("expected 1000, got %v ok=%v", ms, ok)
	}

	if _, ok := Millis([]any{float64(1)}); ok {
		t.Fatal("one-element pair must not normalize")
	}
	if _, ok := Millis([]any{"1", "2"}); ok {
		t.Fatal("non-numeric pair must not normalize")
	}
}

func TestDurationMillis(t *testing.T) {
	// Explicit duration wins over timestamps.
	rec := Record{Duration: float64(42), StartTime: float64(0), EndTime: float64(1000)}
	if d, ok := rec.DurationMillis(); !ok || d != 42 {
		t.Fatalf("expected explicit duration 42, got %v ok=%v", d, ok)
	}

	// Fallback to end − start, mixed timestamp shapes.
	rec = Record{StartTime: []any{float64(1), float64(0)}, EndTime: float64(1250)}
	if d, ok := rec.DurationMillis(); !ok || d != 250 {
		t.Fatalf("expected 250, got %v ok=%v", d, ok)
	}

	// Missing both: absent.
	rec = Record{StartTime: float64(1000)}
	if _, ok := rec.DurationMillis(); ok {
		t.Fatal("expected absent without end time")
	}
}

func TestDecodeBareArray(t *testing.T) {
	input := `[{"attributes":{"app.session.id":"a"},"startTime":100,"endTime":150},
	           {"attributes":{"app.session.id":"b"},"duration":25}]`
	batch, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if batch.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", batch.Len())
	}
	if d, ok := batch.Records()[0].DurationMillis(); !ok || d != 50 {
		t.Fatalf("expected 50, got %v ok=%v", d, ok)
	}
}

func TestDecodeEnvelope(t *testing.T) {
	input := `{"records":[{"attributes":{"event_type":"login"}}]}`
	batch, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if batch.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", batch.Len())
	}
	if s, ok := batch.Records()[0].Str(KeyEventType); !ok || s != "login" {
		t.Fatalf("expected login, got %q ok=%v", s, ok)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"records": 5}`)); err == nil {
		t.Fatal("expected decode error")
	}
}
