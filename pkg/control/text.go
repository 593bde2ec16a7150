package control

import (
	"github.com/formwork-dev/formwork/pkg/validate"
)

// Text is a single-line string input control.
// Its value counts as set when non-empty.
type Text struct {
	*Base[string]
}

// NewText creates a text control with the given name.
func NewText(name string) *Text {
	return &Text{
		Base: NewBase(name, "", func(s string) bool { return s != "" }),
	}
}

// SetMinLength installs the "minlength" validator.
func (t *Text) SetMinLength(n int) {
	t.SetValidator("minlength", validate.Rule(t.RxValue(), validate.MinLength(n)))
}

// SetMaxLength installs the "maxlength" validator.
func (t *Text) SetMaxLength(n int) {
	t.SetValidator("maxlength", validate.Rule(t.RxValue(), validate.MaxLength(n)))
}

// SetPattern installs the "pattern" validator. An invalid regular
// expression is a configuration error and panics.
func (t *Text) SetPattern(pattern string) {
	t.SetValidator("pattern", validate.Rule(t.RxValue(), validate.Pattern(pattern)))
}

// TextArea is a multi-line string input control. It shares Text's value
// semantics; only the widget adapter differs.
type TextArea struct {
	*Base[string]
}

// NewTextArea creates a textarea control with the given name.
func NewTextArea(name string) *TextArea {
	return &TextArea{
		Base: NewBase(name, "", func(s string) bool { return s != "" }),
	}
}

// SetMinLength installs the "minlength" validator.
func (t *TextArea) SetMinLength(n int) {
	t.SetValidator("minlength", validate.Rule(t.RxValue(), validate.MinLength(n)))
}

// SetMaxLength installs the "maxlength" validator.
func (t *TextArea) SetMaxLength(n int) {
	t.SetValidator("maxlength", validate.Rule(t.RxValue(), validate.MaxLength(n)))
}
