package fragment_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/scrambler/internal/fragment"
)

func TestSplit_TenIntoThree(t *testing.T) {
	set, err := fragment.Split("abcdefghij", 3)
	require.NoError(t, err)

	assert.Equal(t, fragment.Set{"abc", "def", "ghij"}, set)
	assert.Equal(t, []int{3, 3, 4}, set.Sizes())
	assert.Equal(t, "abcdefghij", fragment.Join(set))
}

func TestSplit_Single(t *testing.T) {
	set, err := fragment.Split("payload", 1)
	require.NoError(t, err)

	assert.Equal(t, fragment.Set{"payload"}, set)
}

func TestSplit_Cover(t *testing.T) {
	payloads := []string{
		"",
		"a",
		"abcdefghi",
		strings.Repeat("0123456789", 7) + "xyz",
		strings.Repeat("QUJD", 250),
	}

	for _, payload := range payloads {
		for count := fragment.MinCount; count <= fragment.MaxCount; count++ {
			t.Run(fmt.Sprintf("len=%d/count=%d", len(payload), count), func(t *testing.T) {
				set, err := fragment.Split(payload, count)
				require.NoError(t, err)
				require.Len(t, set, count)

				assert.Equal(t, payload, fragment.Join(set))

				for i := 0; i < count-1; i++ {
					assert.Len(t, set[i], len(payload)/count)
				}

				assert.Len(t, set[count-1], len(payload)/count+len(payload)%count)
			})
		}
	}
}

func TestSplit_MalformedCount(t *testing.T) {
	for _, count := range []int{-3, 0, 11, 100} {
		_, err := fragment.Split("payload", count)
		assert.ErrorIs(t, err, fragment.ErrMalformedCount)
	}
}

func TestSplit_ShorterThanCount(t *testing.T) {
	set, err := fragment.Split("ab", 5)
	require.NoError(t, err)

	assert.Equal(t, fragment.Set{"", "", "", "", "ab"}, set)
}
