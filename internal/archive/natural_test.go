package archive

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaturalCompare(t *testing.T) {
	names := []string{"a10.txt", "a2.txt", "a.seal", "a1.txt", "a0.txt", "b.txt", "a02.txt"}

	slices.SortStableFunc(names, naturalCompare)

	assert.Equal(t, []string{"a.seal", "a0.txt", "a1.txt", "a2.txt", "a02.txt", "a10.txt", "b.txt"}, names)
}
