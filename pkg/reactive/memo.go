package reactive

import (
	"sync"
	"sync/atomic"
)

// Memo is a cached computation that automatically tracks its dependencies.
// When any dependency changes, the memo is invalidated and will recompute
// on the next read.
//
// An unobserved memo is lazy: it only computes its value when read, and
// multiple source changes before a read cost one recomputation.
//
// Memos can also be subscribed to, behaving like signals themselves.
// This allows building chains of derived values. A memo with subscribers
// recomputes when a source invalidates it and notifies only when the
// derived value changed, so downstream listeners see a distinct stream
// of values rather than every source emission.
//
// On every recompute the memo unsubscribes from its previous source set
// and tracks the sources actually read this time. A memo whose computation
// iterates a dynamic collection of streams therefore re-subscribes to
// exactly the current member set whenever the collection changes: removed
// members leave no stale subscription, added members are picked up on the
// next recompute.
type Memo[T any] struct {
	base signalBase

	// compute is the function that computes the memo's value.
	compute func() T

	// value is the cached computed value.
	value T

	// valueMu protects value access.
	valueMu sync.RWMutex

	// valid indicates whether the cached value is current.
	// When false, the next Get() will recompute.
	valid atomic.Bool

	// sources are the signals/memos this memo depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// equal is the equality function for determining value changes.
	equal func(T, T) bool

	// computing prevents infinite recursion in circular dependencies.
	computing atomic.Bool
}

// NewMemo creates a new memo with the given computation function.
// The computation is not run immediately; it runs lazily on first Get().
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		base: signalBase{
			id: nextID(),
		},
		compute: compute,
	}
}

// Get returns the memo's value, recomputing if necessary.
// Creates a dependency on this memo for the current listener.
func (m *Memo[T]) Get() T {
	if listener := getCurrentListener(); listener != nil {
		m.base.subscribe(listener)

		if t, ok := listener.(sourceTracker); ok {
			t.addSource(&m.base)
		}
	}

	if !m.valid.Load() {
		m.recompute()
	}

	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// Peek returns the memo's value without subscribing.
// Still triggers recomputation if the value is invalid.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() {
		m.recompute()
	}
	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// MarkDirty invalidates the memo and propagates to subscribers.
// Implements the Listener interface.
func (m *Memo[T]) MarkDirty() {
	// Use CAS for idempotent marking
	if !m.valid.CompareAndSwap(true, false) {
		return
	}

	m.base.subMu.RLock()
	hasSubs := len(m.base.subs) > 0
	m.base.subMu.RUnlock()
	if !hasSubs {
		// Nobody to wake; stay lazy until the next read.
		return
	}

	// Recompute now so subscribers are only notified when the derived
	// value actually changed. A source emission that maps to the same
	// result is absorbed here.
	if m.recompute() {
		m.base.notifySubscribers()
	}
}

// ID returns the unique identifier for this memo.
// Implements the Listener interface.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

// addSource adds a source dependency.
// Implements the sourceTracker interface.
func (m *Memo[T]) addSource(source *signalBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()

	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
}

// WithEquals configures the memo with a custom equality function.
func (m *Memo[T]) WithEquals(fn func(T, T) bool) *Memo[T] {
	m.equal = fn
	return m
}

// recompute runs the computation and updates the cached value.
// It reports whether the value changed from the previous computation.
func (m *Memo[T]) recompute() bool {
	// Prevent infinite recursion in circular dependencies
	if m.computing.Swap(true) {
		return false
	}
	defer m.computing.Store(false)

	// Unsubscribe from old sources
	m.sourcesMu.Lock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	// Track new sources during computation
	old := setCurrentListener(m)
	newValue := m.compute()
	setCurrentListener(old)

	m.valueMu.Lock()
	changed := !m.equals(m.value, newValue)
	if changed {
		m.value = newValue
	}
	m.valueMu.Unlock()

	m.valid.Store(true)
	return changed
}

// equals checks if two values are equal.
func (m *Memo[T]) equals(a, b T) bool {
	if m.equal != nil {
		return m.equal(a, b)
	}
	return defaultEquals(a, b)
}

// Ensure Memo implements sourceTracker
var _ sourceTracker = (*Memo[int])(nil)
