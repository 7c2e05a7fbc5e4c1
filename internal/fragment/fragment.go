// Package fragment splits a payload into ordered, length-based fragments and
// puts them back together.
//
// A payload of length L split into K fragments gives K-1 fragments of L/K bytes
// and a last fragment of L/K + L%K bytes. Order is not recorded in the
// fragments themselves; it travels in their names (see Name and Order).
package fragment

import (
	"fmt"
	"strings"
)

const (
	// MinCount is the smallest accepted fragment count.
	MinCount = 1
	// MaxCount is the largest accepted fragment count.
	MaxCount = 10
)

// Set is an ordered sequence of fragments. Position is significant.
type Set []string

// Sizes returns the length of every fragment in order.
func (s Set) Sizes() []int {
	sizes := make([]int, len(s))
	for i, f := range s {
		sizes[i] = len(f)
	}

	return sizes
}

// ValidateCount reports ErrMalformedCount for counts outside [MinCount, MaxCount].
func ValidateCount(count int) error {
	if count < MinCount || count > MaxCount {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrMalformedCount, count, MinCount, MaxCount)
	}

	return nil
}

// Split partitions payload into count fragments.
// Splitting is byte based; payloads are base64 text, so bytes and characters coincide.
func Split(payload string, count int) (Set, error) {
	if err := ValidateCount(count); err != nil {
		return nil, err
	}

	size := len(payload) / count
	tail := len(payload) % count

	set := make(Set, count)

	for i := 0; i < count-1; i++ {
		set[i] = payload[i*size : (i+1)*size]
	}

	last := count - 1
	set[last] = payload[last*size:last*size+size] + payload[len(payload)-tail:]

	return set, nil
}

// Join concatenates the fragments in order.
func Join(set Set) string {
	return strings.Join(set, "")
}
