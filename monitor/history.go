package monitor

// HistoryCapacity is the number of samples kept per metric. At the default
// one-second interval this covers the last minute.
const HistoryCapacity = 60

// History is a fixed-capacity FIFO ring of percentage samples. Once full,
// each Append evicts exactly the oldest sample. History is not safe for
// concurrent use; the Store serializes access to it.
type History struct {
	data  [HistoryCapacity]float64
	head  int // index of the oldest sample
	count int
}

// Append adds v as the most recent sample, evicting the oldest one when the
// ring is full.
func (h *History) Append(v float64) {
	if h.count < HistoryCapacity {
		h.data[(h.head+h.count)%HistoryCapacity] = v
		h.count++
		return
	}
	h.data[h.head] = v
	h.head = (h.head + 1) % HistoryCapacity
}

// Len returns the number of samples held.
func (h *History) Len() int {
	return h.count
}

// Cap returns the fixed capacity.
func (h *History) Cap() int {
	return HistoryCapacity
}

// Last returns the most recent sample and whether one exists.
func (h *History) Last() (float64, bool) {
	if h.count == 0 {
		return 0, false
	}
	return h.data[(h.head+h.count-1)%HistoryCapacity], true
}

// Values returns a copy of the samples, oldest first.
func (h *History) Values() []float64 {
	out := make([]float64, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.data[(h.head+i)%HistoryCapacity]
	}
	return out
}
