package batch

import (
	"fmt"
	"iter"
)

// Window is a contiguous slice of a target range: rows [Offset, Offset+Size).
type Window struct {
	Offset int
	Size   int
}

// First returns the 1-based number of the first row in the window.
func (w Window) First() int {
	return w.Offset + 1
}

// Last returns the 1-based number of the last row in the window.
func (w Window) Last() int {
	return w.Offset + w.Size
}

func (w Window) String() string {
	return fmt.Sprintf("%d..%d", w.First(), w.Last())
}

// Plan lazily yields windows covering [0, target) with at most size rows each.
// The last window holds the remainder. Nothing is yielded when target or size
// is not positive.
func Plan(target, size int) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		if target <= 0 || size <= 0 {
			return
		}
		for offset := 0; offset < target; offset += size {
			if !yield(Window{Offset: offset, Size: min(size, target-offset)}) {
				return
			}
		}
	}
}

func Windows(target, size int) []Window {
	if target <= 0 || size <= 0 {
		return nil
	}

	windows := make([]Window, 0, (target+size-1)/size)
	for w := range Plan(target, size) {
		windows = append(windows, w)
	}
	return windows
}
