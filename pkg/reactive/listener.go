package reactive

// Listener is anything that can be notified when a dependency changes.
// This interface is implemented by memos and effects.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	// For memos, this invalidates the cached value.
	// For effects, this re-runs the effect.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// Cleanup is a function returned by effects to clean up resources.
// It is called before the effect re-runs and when the effect is disposed.
type Cleanup func()

// Value is a readable reactive stream with a current value.
// Both *Signal[T] and *Memo[T] satisfy it; consumers that only need to
// observe a stream (validator predicates, form aggregation) accept Value
// rather than a concrete type.
type Value[T any] interface {
	// Get returns the current value and subscribes the current listener.
	Get() T

	// Peek returns the current value without subscribing.
	Peek() T
}
