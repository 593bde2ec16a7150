package control

import (
	"sync"
	"sync/atomic"

	"github.com/formwork-dev/formwork/pkg/reactive"
)

// RequiredValidator is the name of the validator the engine installs
// automatically while a control is required. Its predicate is the
// control's own "set" stream.
const RequiredValidator = "required"

// Base is the generic control state aggregator. Given the primitive flag
// signals (value, name, required, readonly, disabled, pristine, untouched)
// and the validator registry, it derives valid/invalid, dirty/touched,
// enabled, the validation-error list and the "set" flag.
//
// Concrete control types embed *Base and contribute only their value
// semantics through the isSet predicate.
type Base[T any] struct {
	owner *reactive.Owner

	name      *reactive.Signal[string]
	value     *reactive.Signal[T]
	required  *reactive.Signal[bool]
	readonly  *reactive.Signal[bool]
	disabled  *reactive.Signal[bool]
	pristine  *reactive.Signal[bool]
	untouched *reactive.Signal[bool]

	// validators holds the registration-ordered snapshot; every add or
	// remove publishes a fresh slice so downstream memos see "the set of
	// validators changed" as its own event.
	validators *reactive.Signal[[]Validator]

	isSet func(T) bool

	valid    *reactive.Memo[bool]
	invalid  *reactive.Memo[bool]
	errors   *reactive.Memo[[]string]
	set      *reactive.Memo[bool]
	dirty    *reactive.Memo[bool]
	touched  *reactive.Memo[bool]
	enabled  *reactive.Memo[bool]
	anyValue *reactive.Memo[any]

	disconnected atomic.Bool
	onDisconnect []func()
	disconnectMu sync.Mutex
}

// NewBase constructs the generic engine for a control.
//
// The name is the control's mandatory identifying attribute: an empty name
// is a fatal configuration error and panics synchronously. isSet decides
// whether a value counts as present; nil means "always set".
func NewBase[T any](name string, initial T, isSet func(T) bool) *Base[T] {
	if name == "" {
		panic("control: control constructed without a name")
	}
	if isSet == nil {
		isSet = func(T) bool { return true }
	}

	b := &Base[T]{
		owner:      reactive.NewOwner(nil),
		name:       reactive.NewSignal(name),
		value:      reactive.NewSignal(initial),
		required:   reactive.NewSignal(false),
		readonly:   reactive.NewSignal(false),
		disabled:   reactive.NewSignal(false),
		pristine:   reactive.NewSignal(true),
		untouched:  reactive.NewSignal(true),
		validators: reactive.NewSignal([]Validator(nil)),
		isSet:      isSet,
	}

	b.set = reactive.NewMemo(func() bool {
		return b.isSet(b.value.Get())
	})

	// Reading both the snapshot and every member predicate inside one memo
	// means the memo re-subscribes to exactly the current predicate set on
	// each recompute: removed validators leave no stale subscription and
	// added ones are picked up immediately.
	b.valid = reactive.NewMemo(func() bool {
		for _, v := range b.validators.Get() {
			if !v.Pred.Get() {
				return false
			}
		}
		return true
	})

	b.invalid = reactive.NewMemo(func() bool {
		return !b.valid.Get()
	})

	b.errors = reactive.NewMemo(func() []string {
		var failing []string
		for _, v := range b.validators.Get() {
			if !v.Pred.Get() {
				failing = append(failing, v.Name)
			}
		}
		return failing
	})

	b.dirty = reactive.NewMemo(func() bool {
		return !b.pristine.Get()
	})

	b.touched = reactive.NewMemo(func() bool {
		return !b.untouched.Get()
	})

	b.enabled = reactive.NewMemo(func() bool {
		return !b.disabled.Get()
	})

	b.anyValue = reactive.NewMemo(func() any {
		return any(b.value.Get())
	})

	// Required auto-wiring: while required is true the engine keeps a
	// built-in validator whose predicate is the control's own set stream.
	reactive.WithOwner(b.owner, func() {
		reactive.NewEffect(func() reactive.Cleanup {
			if b.required.Get() {
				b.setValidator(RequiredValidator, b.set)
			} else {
				b.removeValidator(RequiredValidator)
			}
			return nil
		})
	})

	return b
}

// Name returns the control's current name.
func (b *Base[T]) Name() string { return b.name.Get() }

// SetName changes the control's name. The new name must be non-empty.
func (b *Base[T]) SetName(name string) {
	if name == "" {
		panic("control: control name cannot be cleared")
	}
	if b.disconnected.Load() {
		return
	}
	b.name.Set(name)
}

// Value returns the control's current typed value.
func (b *Base[T]) Value() T { return b.value.Get() }

// SetValue publishes a new value and marks the control dirty. Mutating
// dirty is not independently exposed; it is a side effect of value
// mutation.
func (b *Base[T]) SetValue(v T) {
	if b.disconnected.Load() {
		return
	}
	reactive.Batch(func() {
		b.value.Set(v)
		b.pristine.Set(false)
	})
}

// AnyValue returns the current value, type-erased.
func (b *Base[T]) AnyValue() any { return b.anyValue.Get() }

// IsSet reports whether the current value counts as present.
func (b *Base[T]) IsSet() bool { return b.set.Get() }

// Valid reports whether every installed validator currently passes.
func (b *Base[T]) Valid() bool { return b.valid.Get() }

// Invalid is the complement of Valid.
func (b *Base[T]) Invalid() bool { return b.invalid.Get() }

// Errors returns the failing validator names in registration order.
func (b *Base[T]) Errors() []string { return b.errors.Get() }

// Dirty reports whether the value has changed since construction or the
// last MarkPristine.
func (b *Base[T]) Dirty() bool { return b.dirty.Get() }

// Pristine is the complement of Dirty.
func (b *Base[T]) Pristine() bool { return b.pristine.Get() }

// Touched reports whether the control has been interacted with.
func (b *Base[T]) Touched() bool { return b.touched.Get() }

// Untouched is the complement of Touched.
func (b *Base[T]) Untouched() bool { return b.untouched.Get() }

func (b *Base[T]) Required() bool { return b.required.Get() }
func (b *Base[T]) Readonly() bool { return b.readonly.Get() }
func (b *Base[T]) Disabled() bool { return b.disabled.Get() }
func (b *Base[T]) Enabled() bool  { return b.enabled.Get() }

// SetRequired flips the required flag. The built-in "required" validator
// is installed or removed by the engine in response.
func (b *Base[T]) SetRequired(required bool) {
	if b.disconnected.Load() {
		return
	}
	b.required.Set(required)
}

func (b *Base[T]) SetReadonly(readonly bool) {
	if b.disconnected.Load() {
		return
	}
	b.readonly.Set(readonly)
}

func (b *Base[T]) SetDisabled(disabled bool) {
	if b.disconnected.Load() {
		return
	}
	b.disabled.Set(disabled)
}

func (b *Base[T]) SetEnabled(enabled bool) {
	b.SetDisabled(!enabled)
}

// SetValidator installs or replaces the named predicate and republishes
// the validator snapshot.
func (b *Base[T]) SetValidator(name string, pred reactive.Value[bool]) {
	if b.disconnected.Load() {
		return
	}
	b.setValidator(name, pred)
}

func (b *Base[T]) setValidator(name string, pred reactive.Value[bool]) {
	b.validators.Update(func(cur []Validator) []Validator {
		next := make([]Validator, len(cur), len(cur)+1)
		copy(next, cur)
		for i := range next {
			if next[i].Name == name {
				// Last write wins, position preserved.
				next[i].Pred = pred
				return next
			}
		}
		return append(next, Validator{Name: name, Pred: pred})
	})
}

// RemoveValidator removes the named validator if present. Removing an
// absent validator is a no-op, not an error.
func (b *Base[T]) RemoveValidator(name string) {
	if b.disconnected.Load() {
		return
	}
	b.removeValidator(name)
}

func (b *Base[T]) removeValidator(name string) {
	b.validators.Update(func(cur []Validator) []Validator {
		found := false
		for _, v := range cur {
			if v.Name == name {
				found = true
				break
			}
		}
		if !found {
			return cur
		}
		next := make([]Validator, 0, len(cur)-1)
		for _, v := range cur {
			if v.Name != name {
				next = append(next, v)
			}
		}
		return next
	})
}

// Validators returns the current validator snapshot.
func (b *Base[T]) Validators() []Validator { return b.validators.Get() }

func (b *Base[T]) MarkTouched() {
	if b.disconnected.Load() {
		return
	}
	b.untouched.Set(false)
}

func (b *Base[T]) MarkUntouched() {
	if b.disconnected.Load() {
		return
	}
	b.untouched.Set(true)
}

func (b *Base[T]) MarkDirty() {
	if b.disconnected.Load() {
		return
	}
	b.pristine.Set(false)
}

func (b *Base[T]) MarkPristine() {
	if b.disconnected.Load() {
		return
	}
	b.pristine.Set(true)
}

// RxValue returns the typed value stream.
func (b *Base[T]) RxValue() reactive.Value[T] { return b.value }

// RxName returns the name stream.
func (b *Base[T]) RxName() reactive.Value[string] { return b.name }

// RxAnyValue returns the type-erased value stream.
func (b *Base[T]) RxAnyValue() reactive.Value[any] { return b.anyValue }

// RxValid returns the derived validity stream.
func (b *Base[T]) RxValid() reactive.Value[bool] { return b.valid }

// RxErrors returns the derived validation-error stream.
func (b *Base[T]) RxErrors() reactive.Value[[]string] { return b.errors }

// RxSet returns the derived "has a value" stream.
func (b *Base[T]) RxSet() reactive.Value[bool] { return b.set }

// RxValidators returns the validator snapshot stream.
func (b *Base[T]) RxValidators() reactive.Value[[]Validator] { return b.validators }

// Owner returns the disposal scope for subscriptions derived from this
// control.
func (b *Base[T]) Owner() *reactive.Owner { return b.owner }

// Disconnect fires the disconnect signal: registered callbacks run once,
// the owner is disposed, and all subsequent mutations are ignored.
func (b *Base[T]) Disconnect() {
	if b.disconnected.Swap(true) {
		return
	}

	b.disconnectMu.Lock()
	callbacks := b.onDisconnect
	b.onDisconnect = nil
	b.disconnectMu.Unlock()

	for _, fn := range callbacks {
		fn()
	}

	b.owner.Dispose()
}

// Disconnected reports whether Disconnect has fired.
func (b *Base[T]) Disconnected() bool { return b.disconnected.Load() }

// OnDisconnect registers a callback for the disconnect signal. If the
// control is already disconnected the callback runs immediately.
func (b *Base[T]) OnDisconnect(fn func()) {
	b.disconnectMu.Lock()
	if b.disconnected.Load() {
		b.disconnectMu.Unlock()
		fn()
		return
	}
	b.onDisconnect = append(b.onDisconnect, fn)
	b.disconnectMu.Unlock()
}

var _ Control = (*Base[string])(nil)
