package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCoversTarget(t *testing.T) {
	cases := []struct {
		target, size int
	}{
		{1, 1}, {3, 2}, {10, 3}, {10, 5}, {10, 10}, {10, 25}, {1000, 200}, {2001, 4000}, {7919, 97},
	}

	for _, tc := range cases {
		windows := Windows(tc.target, tc.size)
		require.NotEmpty(t, windows, "target=%d size=%d", tc.target, tc.size)

		next, total := 0, 0
		for _, w := range windows {
			assert.Equal(t, next, w.Offset, "gap or overlap at target=%d size=%d", tc.target, tc.size)
			assert.LessOrEqual(t, w.Size, tc.size)
			assert.Positive(t, w.Size)
			next = w.Offset + w.Size
			total += w.Size
		}
		assert.Equal(t, tc.target, total)

		last := windows[len(windows)-1]
		want := tc.target % tc.size
		if want == 0 {
			want = tc.size
		}
		assert.Equal(t, want, last.Size, "last window target=%d size=%d", tc.target, tc.size)
	}
}

func TestPlanThreeRowsBatchTwo(t *testing.T) {
	windows := Windows(3, 2)

	assert.Equal(t, []Window{{Offset: 0, Size: 2}, {Offset: 2, Size: 1}}, windows)
	assert.Equal(t, "1..2", windows[0].String())
	assert.Equal(t, "3..3", windows[1].String())
}

func TestPlanEmpty(t *testing.T) {
	assert.Empty(t, Windows(0, 10))
	assert.Empty(t, Windows(10, 0))
	assert.Empty(t, Windows(-1, 10))

	for range Plan(5, -3) {
		t.Fatal("expected no windows for negative size")
	}
}

func TestPlanStopsEarly(t *testing.T) {
	seen := 0
	for w := range Plan(100, 10) {
		seen++
		if w.Offset == 20 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}
