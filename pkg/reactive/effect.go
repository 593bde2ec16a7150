package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect represents a reactive side effect that runs when its dependencies
// change. Effects are created using NewEffect and are automatically tracked
// for dependencies during their execution.
//
// Effects run immediately when created, and re-run synchronously whenever
// any signal or memo they read during execution changes. Inside a Batch the
// re-run is deferred and deduplicated until the outermost batch completes.
// Effects can return a Cleanup function that is called before the effect
// re-runs and when the effect is disposed.
type Effect struct {
	id uint64

	// fn is the effect function to run.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the signals/memos this effect depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// owner is the Owner that owns this effect.
	owner *Owner

	// running guards against re-entrant runs when the effect body writes
	// to one of its own dependencies.
	running atomic.Bool

	// disposed indicates the effect has been disposed.
	disposed atomic.Bool
}

// MarkDirty re-runs the effect.
// Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	e.run()
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// run executes the effect function.
// This is called during initial creation and when dependencies change.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	// A write to one of our own dependencies during the body must not
	// recurse into a nested run.
	if e.running.Swap(true) {
		return
	}
	defer e.running.Store(false)

	// Run cleanup from previous run
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Unsubscribe from old sources
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	// Track new sources during execution
	oldListener := setCurrentListener(e)
	e.cleanup = e.fn()
	setCurrentListener(oldListener)
}

// addSource adds a source dependency.
// Called by signals when they are read during effect execution.
// Implements the sourceTracker interface.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose detaches the effect from all sources and runs its cleanup.
// After disposal the effect never runs again.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// NewEffect creates and runs a new effect within the current owner context.
// The effect function runs immediately and re-runs when any signal or memo
// it reads changes. If the function returns a Cleanup, it will be called
// before the effect re-runs or when the effect is disposed.
//
// Example:
//
//	NewEffect(func() Cleanup {
//	    fmt.Println("valid:", valid.Get())
//	    return nil
//	})
func NewEffect(fn func() Cleanup) *Effect {
	owner := getCurrentOwner()

	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}

	if owner != nil {
		owner.registerEffect(e)
	}

	// Run immediately
	e.run()

	return e
}

var _ sourceTracker = (*Effect)(nil)
