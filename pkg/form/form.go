package form

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/formwork-dev/formwork/pkg/control"
	"github.com/formwork-dev/formwork/pkg/reactive"
)

// ErrNotFound is returned by Get when no registered control carries the
// requested name.
var ErrNotFound = errors.New("form: control not found")

// Submission is one accepted submit: the value snapshot taken at the
// moment a submit trigger fired while the form was valid. Seq makes
// consecutive submissions distinct even when their values are equal, so
// every accepted trigger is observable downstream.
type Submission struct {
	Seq    uint64
	Values map[string]any
}

// Form aggregates a dynamic set of controls into form-level state.
type Form struct {
	owner *reactive.Owner
	scope *control.Scope

	// controls holds the members in registration order; the slice is
	// republished on every membership change.
	controls *reactive.Signal[[]control.Control]

	valid   *reactive.Memo[bool]
	invalid *reactive.Memo[bool]
	values  *reactive.Memo[map[string]any]
	errs    *reactive.Memo[map[string][]string]

	submits   *reactive.Signal[Submission]
	submitSeq atomic.Uint64
}

// New creates an empty form with its own grouped-control scope.
func New() *Form {
	f := &Form{
		owner:    reactive.NewOwner(nil),
		scope:    control.NewScope(),
		controls: reactive.NewSignal([]control.Control(nil)),
		submits:  reactive.NewSignal(Submission{}),
	}

	// Each memo reads both the membership snapshot and the relevant
	// stream of every current member, so membership changes and member
	// emissions both retrigger it, and subscriptions always match the
	// current member set.
	f.valid = reactive.NewMemo(func() bool {
		for _, c := range f.controls.Get() {
			if !c.RxValid().Get() {
				return false
			}
		}
		return true
	})

	f.invalid = reactive.NewMemo(func() bool {
		return !f.valid.Get()
	})

	f.values = reactive.NewMemo(func() map[string]any {
		ctrls := f.controls.Get()
		snapshot := make(map[string]any, len(ctrls))
		for _, c := range ctrls {
			// Two controls reporting the same name: the later
			// registration wins.
			snapshot[c.RxName().Get()] = c.RxAnyValue().Get()
		}
		return snapshot
	})

	f.errs = reactive.NewMemo(func() map[string][]string {
		ctrls := f.controls.Get()
		snapshot := make(map[string][]string)
		for _, c := range ctrls {
			if errs := c.RxErrors().Get(); len(errs) > 0 {
				snapshot[c.RxName().Get()] = errs
			}
		}
		return snapshot
	})

	return f
}

// Scope returns the grouped-control scope owned by this form. Radio
// adapters resolve their logical control against it.
func (f *Form) Scope() *control.Scope { return f.scope }

// Owner returns the form's disposal scope.
func (f *Form) Owner() *reactive.Owner { return f.owner }

// AddControl registers a control with the form. Adding an
// already-registered control is a no-op. The control's disconnect signal
// removes it from the form automatically.
func (f *Form) AddControl(c control.Control) {
	if c == nil {
		panic("form: add of nil control")
	}

	added := false
	f.controls.Update(func(cur []control.Control) []control.Control {
		for _, existing := range cur {
			if existing == c {
				return cur
			}
		}
		added = true
		next := make([]control.Control, len(cur), len(cur)+1)
		copy(next, cur)
		return append(next, c)
	})

	if added {
		// The disconnect signal is the authoritative cancellation point
		// for form bookkeeping about this control.
		c.OnDisconnect(func() {
			f.RemoveControl(c)
		})
	}
}

// RemoveControl unregisters a control. Removing a control that is not
// registered is a no-op.
func (f *Form) RemoveControl(c control.Control) {
	f.controls.Update(func(cur []control.Control) []control.Control {
		for i, existing := range cur {
			if existing == c {
				next := make([]control.Control, 0, len(cur)-1)
				next = append(next, cur[:i]...)
				return append(next, cur[i+1:]...)
			}
		}
		return cur
	})
}

// Controls returns the registered controls in registration order.
func (f *Form) Controls() []control.Control {
	return f.controls.Get()
}

// Get returns the registered control with the given name.
// Looking up a name no control carries fails with ErrNotFound.
func (f *Form) Get(name string) (control.Control, error) {
	for _, c := range f.controls.Get() {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Valid reports whether every registered control is valid.
// An empty form is vacuously valid.
func (f *Form) Valid() bool { return f.valid.Get() }

// Invalid is the complement of Valid.
func (f *Form) Invalid() bool { return f.invalid.Get() }

// Values returns the current name→value snapshot.
func (f *Form) Values() map[string]any { return f.values.Get() }

// Errors returns the current name→failing-validator-names snapshot,
// holding entries only for controls with at least one error.
func (f *Form) Errors() map[string][]string { return f.errs.Get() }

// RxValid returns the derived form-validity stream.
func (f *Form) RxValid() reactive.Value[bool] { return f.valid }

// RxValue returns the derived value-snapshot stream.
func (f *Form) RxValue() reactive.Value[map[string]any] { return f.values }

// RxErrors returns the derived error-snapshot stream.
func (f *Form) RxErrors() reactive.Value[map[string][]string] { return f.errs }

// RxSubmit returns the submit stream. It emits one Submission per
// accepted submit trigger; Seq is zero until the first one.
func (f *Form) RxSubmit() reactive.Value[Submission] { return f.submits }

// Submit is a submit-trigger activation. Every registered control is
// marked touched unconditionally, before the validity gate is read. If
// the form is valid at this instant the current value snapshot is
// emitted on the submit stream and returned; otherwise the submission is
// silently dropped.
func (f *Form) Submit() (map[string]any, bool) {
	for _, c := range f.controls.Peek() {
		c.MarkTouched()
	}

	if !f.valid.Peek() {
		return nil, false
	}

	snapshot := f.values.Peek()
	f.submits.Set(Submission{
		Seq:    f.submitSeq.Add(1),
		Values: snapshot,
	})
	return snapshot, true
}

// OnSubmit registers a callback for accepted submissions. The
// subscription lives on the form's owner and dies with it.
func (f *Form) OnSubmit(fn func(values map[string]any)) {
	reactive.WithOwner(f.owner, func() {
		reactive.NewEffect(func() reactive.Cleanup {
			sub := f.submits.Get()
			if sub.Seq == 0 {
				return nil
			}
			fn(sub.Values)
			return nil
		})
	})
}

// Dispose tears down the form's derived subscriptions. Registered
// controls are not disconnected; they outlive the aggregate.
func (f *Form) Dispose() {
	f.owner.Dispose()
}
