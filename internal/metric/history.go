package metric

// defaultHistorySize bounds per-metric history; only the benchmark refresh
// reads it, so a short window is enough.
const defaultHistorySize = 32

// #region history

// history is a fixed-size ring of past metric values, oldest overwritten
// first. Single-pass computation never shares a metric between goroutines,
// so no locking.
type history struct {
	data  []float64
	size  int
	count int
	head  int
	tail  int
}

func newHistory(size int) *history {
	if size <= 0 {
		size = defaultHistorySize
	}
	return &history{data: make([]float64, size), size: size}
}

// push appends a value, evicting the oldest when full.
func (h *history) push(v float64) {
	h.data[h.tail] = v
	h.tail = (h.tail + 1) % h.size
	if h.count < h.size {
		h.count++
	} else {
		h.head = (h.head + 1) % h.size
	}
}

// values returns the recorded values, oldest first.
func (h *history) values() []float64 {
	out := make([]float64, 0, h.count)
	for i := 0; i < h.count; i++ {
		out = append(out, h.data[(h.head+i)%h.size])
	}
	return out
}

// max returns the largest recorded value and whether any value exists.
func (h *history) max() (float64, bool) {
	if h.count == 0 {
		return 0, false
	}
	best := h.data[h.head]
	for i := 1; i < h.count; i++ {
		if v := h.data[(h.head+i)%h.size]; v > best {
			best = v
		}
	}
	return best, true
}

// #endregion history
