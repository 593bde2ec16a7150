// Package reactive provides the push-based state primitives that every
// form control is built from.
//
// The model is fine-grained reactivity: dependencies are tracked
// automatically at runtime. Reading a signal while a memo or effect is
// executing subscribes that memo or effect to the signal's changes.
//
// # Core Types
//
// Signal[T] is a reactive value container that always holds a current
// value:
//
//	name := reactive.NewSignal("color")
//	v := name.Get()   // Read (subscribes the current listener)
//	name.Set("size")  // Write (notifies subscribers if changed)
//
// Memo[T] is a cached derived computation:
//
//	upper := reactive.NewMemo(func() string { return strings.ToUpper(name.Get()) })
//
// Effect runs side effects when dependencies change:
//
//	reactive.NewEffect(func() reactive.Cleanup {
//	    log.Println("name is", name.Get())
//	    return nil
//	})
//
// Owner is a disposal scope. Every control owns one; disposing it tears
// down all effects and cleanups registered under it, which is how the
// per-control disconnect signal terminates derived subscriptions.
//
// # Scheduling
//
// Propagation is synchronous and cooperative: a Set notifies all
// subscribers before it returns, and all derived recomputation triggered
// transitively by one external event completes before the next is
// processed. Batch defers and deduplicates notifications until the
// outermost batch ends.
package reactive
