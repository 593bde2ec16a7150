package control

import (
	"github.com/formwork-dev/formwork/pkg/reactive"
)

// Validator is a named predicate stream contributing to a control's
// aggregate validity. Entries live in a registration-ordered snapshot
// owned by exactly one control; the snapshot is republished on every
// add or remove, never mutated in place.
type Validator struct {
	// Name identifies the validator within its control.
	// Installing a second validator with the same name replaces the first
	// (last write wins) while keeping its position.
	Name string

	// Pred is the predicate stream; true means the validator passes.
	Pred reactive.Value[bool]
}

// Control is the capability set every concrete form control exposes and
// the only interface the form aggregator and widget adapters depend on.
type Control interface {
	// Name returns the control's identifying name.
	Name() string

	// SetName changes the control's name.
	SetName(name string)

	// AnyValue returns the current value, type-erased for aggregation.
	AnyValue() any

	// IsSet reports whether the control has a non-empty value.
	IsSet() bool

	// Valid reports whether every installed validator currently passes.
	// Valid is true when no validators are installed.
	Valid() bool

	// Invalid is the complement of Valid.
	Invalid() bool

	// Errors returns the names of failing validators, in registration order.
	Errors() []string

	// Dirty reports whether the value has been mutated since construction
	// (or since the last MarkPristine).
	Dirty() bool

	// Pristine is the complement of Dirty.
	Pristine() bool

	// Touched reports whether the control has been interacted with.
	Touched() bool

	// Untouched is the complement of Touched.
	Untouched() bool

	Required() bool
	Readonly() bool
	Disabled() bool
	Enabled() bool

	SetRequired(required bool)
	SetReadonly(readonly bool)
	SetDisabled(disabled bool)
	SetEnabled(enabled bool)

	// SetValidator installs or replaces the named validator.
	SetValidator(name string, pred reactive.Value[bool])

	// RemoveValidator removes the named validator if present; removing an
	// absent validator is a no-op.
	RemoveValidator(name string)

	// Validators returns the current validator snapshot.
	Validators() []Validator

	MarkTouched()
	MarkUntouched()
	MarkDirty()
	MarkPristine()

	// Reactive views consumed by the form aggregator.
	RxName() reactive.Value[string]
	RxAnyValue() reactive.Value[any]
	RxValid() reactive.Value[bool]
	RxErrors() reactive.Value[[]string]
	RxSet() reactive.Value[bool]

	// Owner is the disposal scope for subscriptions derived from this
	// control.
	Owner() *reactive.Owner

	// Disconnect fires the control's disconnect signal and tears down all
	// derived subscriptions. After Disconnect, mutations are ignored.
	Disconnect()

	// Disconnected reports whether Disconnect has fired.
	Disconnected() bool

	// OnDisconnect registers a callback for the disconnect signal.
	// If the control is already disconnected the callback runs immediately.
	OnDisconnect(fn func())
}
