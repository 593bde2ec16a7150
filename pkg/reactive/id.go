package reactive

import "sync/atomic"

// idCounter hands out identities for signals, memos and effects. IDs
// are monotonically increasing and never reused, so subscriber lists
// and batch queues can deduplicate by ID alone.
var idCounter atomic.Uint64

func nextID() uint64 {
	return idCounter.Add(1)
}
