package log

import "sync"

// RingBuffer holds the most recent log entries for the overlay.
type RingBuffer struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	head     int
	size     int
}

// NewRingBuffer creates a buffer with given capacity.
// Values <= 0 are normalized to 1.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingBuffer{
		entries:  make([]Entry, capacity),
		capacity: capacity,
	}
}

// Add appends an entry, overwriting the oldest if full.
func (r *RingBuffer) Add(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.head] = entry
	r.head = (r.head + 1) % r.capacity
	if r.size < r.capacity {
		r.size++
	}
}

// GetLast returns the last n entries, oldest first.
func (r *RingBuffer) GetLast(n int) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n = min(n, r.size)
	if n <= 0 {
		return nil
	}

	result := make([]Entry, n)
	start := (r.head - n + r.capacity) % r.capacity
	for i := range n {
		result[i] = r.entries[(start+i)%r.capacity]
	}
	return result
}

// Len returns the number of stored entries.
func (r *RingBuffer) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

// Clear empties the buffer.
func (r *RingBuffer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.head = 0
	r.size = 0
}
