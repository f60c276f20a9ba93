package invoker

import "sync"

// PhaseSnapshot is one labelled budget-byte reading taken during an
// invocation.
type PhaseSnapshot struct {
	Label         string
	BytesConsumed uint64
}

// MemoryTracker records an ordered list of phase snapshots and enforces
// that bytes consumed never decreases across consecutive phases within
// a single call.
type MemoryTracker struct {
	mu        sync.Mutex
	baseline  uint64
	snapshots []PhaseSnapshot
}

func NewMemoryTracker(baseline uint64) *MemoryTracker {
	return &MemoryTracker{baseline: baseline}
}

// Record appends a new snapshot, clamping bytesConsumed up to the
// running baseline so the monotonicity invariant always holds even if
// the host reports a spuriously lower reading.
func (t *MemoryTracker) Record(label string, bytesConsumed uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if bytesConsumed < t.baseline {
		bytesConsumed = t.baseline
	}
	t.snapshots = append(t.snapshots, PhaseSnapshot{Label: label, BytesConsumed: bytesConsumed})
	t.baseline = bytesConsumed
}

func (t *MemoryTracker) Snapshots() []PhaseSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]PhaseSnapshot, len(t.snapshots))
	copy(out, t.snapshots)
	return out
}
