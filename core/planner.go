package core

import "iter"

// DefaultChunkSize keeps eth_getLogs windows inside common provider limits.
const DefaultChunkSize = uint64(20000)

// Chunk is an inclusive block window.
type Chunk struct {
	From uint64
	To   uint64
}

// Chunks splits [start, head] into ascending, contiguous windows of at most
// width blocks. The last window ends at head. Nothing is yielded when head is
// below start. A zero width means DefaultChunkSize.
func Chunks(start, head, width uint64) iter.Seq[Chunk] {
	if width == 0 {
		width = DefaultChunkSize
	}
	return func(yield func(Chunk) bool) {
		if head < start {
			return
		}
		from := start
		for {
			to := head
			if head-from >= width {
				to = from + width - 1
			}
			if !yield(Chunk{From: from, To: to}) || to == head {
				return
			}
			from = to + 1
		}
	}
}
