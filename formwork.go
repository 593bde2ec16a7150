// Package formwork provides the public API for reactive form state.
//
// This is the recommended import for most applications:
//
//	import "github.com/formwork-dev/formwork"
//
// Usage:
//
//	f := formwork.NewForm()
//	email := formwork.NewText("email")
//	email.SetRequired(true)
//	email.SetValidator("email", formwork.Rule(email.RxValue(), formwork.Email()))
//	f.AddControl(email)
//
//	email.SetValue("a@b.co")
//	f.Valid() // true
package formwork

import (
	"github.com/formwork-dev/formwork/pkg/control"
	"github.com/formwork-dev/formwork/pkg/form"
	"github.com/formwork-dev/formwork/pkg/reactive"
	"github.com/formwork-dev/formwork/pkg/validate"
)

// =============================================================================
// Reactive primitives (re-export from pkg/reactive)
// =============================================================================

// Signal is a writable reactive value.
type Signal[T any] = reactive.Signal[T]

// Memo is a computed reactive value that tracks its dependencies.
type Memo[T any] = reactive.Memo[T]

// Effect is a side effect that re-runs when its dependencies change.
type Effect = reactive.Effect

// Cleanup is a function an effect can return to release resources
// before its next run.
type Cleanup = reactive.Cleanup

// Owner is a disposal scope for effects and cleanups.
type Owner = reactive.Owner

// Value is the read-only interface shared by signals and memos.
type Value[T any] = reactive.Value[T]

// NewSignal creates a writable reactive value.
//
// Example:
//
//	count := formwork.NewSignal(0)
//	count.Set(1)
//	count.Get() // 1
func NewSignal[T any](initial T) *Signal[T] {
	return reactive.NewSignal(initial)
}

// NewMemo creates a computed value that automatically tracks dependencies.
//
// Example:
//
//	doubled := formwork.NewMemo(func() int {
//	    return count.Get() * 2
//	})
func NewMemo[T any](compute func() T) *Memo[T] {
	return reactive.NewMemo(compute)
}

// NewEffect runs fn immediately and re-runs it whenever a dependency
// changes. The optional returned cleanup runs before each re-run and
// on disposal.
func NewEffect(fn func() reactive.Cleanup) *Effect {
	return reactive.NewEffect(fn)
}

// Batch coalesces updates inside fn so each downstream listener runs
// at most once.
func Batch(fn func()) {
	reactive.Batch(fn)
}

// Untracked runs fn without dependency tracking.
func Untracked(fn func()) {
	reactive.Untracked(fn)
}

// =============================================================================
// Controls (re-export from pkg/control)
// =============================================================================

// Control is the interface implemented by all form controls.
type Control = control.Control

// Validator is a named validity predicate attached to a control.
type Validator = control.Validator

// Scope connects physical controls that share a name, such as radio
// buttons, into one logical control.
type Scope = control.Scope

// Control types.
type (
	Text        = control.Text
	TextArea    = control.TextArea
	Number      = control.Number
	DateTime    = control.DateTime
	Checkbox    = control.Checkbox
	Radio       = control.Radio
	Select      = control.Select
	MultiSelect = control.MultiSelect
	File        = control.File
)

// NewText creates a single-line text control.
func NewText(name string) *Text { return control.NewText(name) }

// NewTextArea creates a multi-line text control.
func NewTextArea(name string) *TextArea { return control.NewTextArea(name) }

// NewNumber creates a numeric control that parses raw input.
func NewNumber(name string) *Number { return control.NewNumber(name) }

// NewDateTime creates a date-time control with the given layout.
func NewDateTime(name, layout string) *DateTime { return control.NewDateTime(name, layout) }

// NewCheckbox creates a boolean control.
func NewCheckbox(name string) *Checkbox { return control.NewCheckbox(name) }

// NewRadio creates a standalone radio control. Use AttachRadio to join
// multiple physical inputs into one logical control.
func NewRadio(name string) *Radio { return control.NewRadio(name) }

// NewSelect creates a single-choice control.
func NewSelect(name string) *Select { return control.NewSelect(name) }

// NewMultiSelect creates a multiple-choice control.
func NewMultiSelect(name string) *MultiSelect { return control.NewMultiSelect(name) }

// NewFile creates a file upload control.
func NewFile(name string) *File { return control.NewFile(name) }

// NewScope creates a registry for grouped controls.
func NewScope() *Scope { return control.NewScope() }

// AttachRadio registers a physical radio input in scope under name and
// returns the shared logical control.
func AttachRadio(scope *Scope, member any, name string) *Radio {
	return control.AttachRadio(scope, member, name)
}

// =============================================================================
// Forms (re-export from pkg/form)
// =============================================================================

// Form aggregates controls into one validity, value, and error state.
type Form = form.Form

// Submission is one accepted submit with its value snapshot.
type Submission = form.Submission

// ErrNotFound is returned by Form.Get for unknown control names.
var ErrNotFound = form.ErrNotFound

// NewForm creates an empty form.
func NewForm() *Form { return form.New() }

// =============================================================================
// Validation (re-export from pkg/validate)
// =============================================================================

// Rule builds a validity predicate from a reactive source and a plain
// predicate function.
func Rule[T any](src Value[T], pred func(T) bool) *Memo[bool] {
	return validate.Rule(src, pred)
}

// Common predicates.
var (
	Email        = validate.Email
	URL          = validate.URL
	UUID         = validate.UUID
	Alpha        = validate.Alpha
	AlphaNumeric = validate.AlphaNumeric
	Numeric      = validate.Numeric
	Phone        = validate.Phone
	MinLength    = validate.MinLength
	MaxLength    = validate.MaxLength
	Pattern      = validate.Pattern
	Min          = validate.Min
	Max          = validate.Max
	Step         = validate.Step
)
