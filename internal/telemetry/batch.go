package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// #region batch

// Batch is one immutable assessment input: the ordered records captured by
// the collector. It is passed by reference into every metric computation and
// never mutated after decode.
type Batch struct {
	records []Record
}

// NewBatch wraps records into a batch. The slice is not copied; callers hand
// over ownership.
func NewBatch(records []Record) *Batch {
	return &Batch{records: records}
}

// Records returns the ordered records. Callers must treat the slice as
// read-only.
func (b *Batch) Records() []Record {
	if b == nil {
		return nil
	}
	return b.records
}

// Len returns the number of records in the batch.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.records)
}

// #endregion batch

// #region decode

// batchEnvelope is the wrapped file form produced by the collector's
// exporter. A bare JSON array is accepted as well.
type batchEnvelope struct {
	Records []Record `json:"records"`
}

// Decode reads a JSON batch from r, accepting either a bare array of records
// or a {"records": [...]} envelope.
func Decode(r io.Reader) (*Batch, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read batch: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(raw, &records); err == nil {
		return NewBatch(records), nil
	}

	var env batchEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	return NewBatch(env.Records), nil
}

// Load reads a JSON batch file from disk.
func Load(path string) (*Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// #endregion decode
