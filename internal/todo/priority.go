package todo

// Priority is a task urgency from A (0) to Z (25).
// NoPriority sorts below every lettered priority.
type Priority uint8

const (
	// PriorityCount is the number of lettered priorities.
	PriorityCount = 26

	// NoPriority marks a task without a priority marker.
	NoPriority Priority = PriorityCount
)

// PriorityFromLetter converts an upper-case letter to a priority.
func PriorityFromLetter(c byte) (Priority, bool) {
	if c < 'A' || c > 'Z' {
		return NoPriority, false
	}
	return Priority(c - 'A'), true
}

// PriorityFromOrdinal converts an ordinal to a priority.
// Out-of-range ordinals yield NoPriority.
func PriorityFromOrdinal(ordinal int) Priority {
	if ordinal < 0 || ordinal >= PriorityCount {
		return NoPriority
	}
	return Priority(ordinal)
}

// IsSet reports whether p is a lettered priority.
func (p Priority) IsSet() bool {
	return p < NoPriority
}

// Ordinal returns 0 for A through 25 for Z, or -1 when unset.
func (p Priority) Ordinal() int {
	if !p.IsSet() {
		return -1
	}
	return int(p)
}

// Higher reports whether p is more urgent than other.
func (p Priority) Higher(other Priority) bool {
	return p < other
}

// String returns the priority letter, or "" when unset.
func (p Priority) String() string {
	if !p.IsSet() {
		return ""
	}
	return string(rune('A' + p))
}
