package control

import (
	"strconv"
	"strings"

	"github.com/formwork-dev/formwork/pkg/reactive"
	"github.com/formwork-dev/formwork/pkg/validate"
)

// FormatValidator is the name of the validator parsing controls install
// for raw-input well-formedness.
const FormatValidator = "format"

// Number is a numeric input control. Its value is a *float64; nil means
// no value. Raw text from either the attribute-change path or the
// input-event path goes through the same parser before any validator
// sees it, and the parse outcome feeds the "format" validator.
type Number struct {
	*Base[*float64]

	// formatOK is true while the last raw input parsed cleanly.
	formatOK *reactive.Signal[bool]
}

// NewNumber creates a number control with the given name.
func NewNumber(name string) *Number {
	n := &Number{
		Base:     NewBase[*float64](name, nil, func(v *float64) bool { return v != nil }),
		formatOK: reactive.NewSignal(true),
	}
	n.SetValidator(FormatValidator, n.formatOK)
	return n
}

// SetRaw parses raw text and publishes the result. Empty input clears the
// value; unparseable input clears the value and fails the "format"
// validator until the next parseable input.
func (n *Number) SetRaw(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		reactive.Batch(func() {
			n.SetValue(nil)
			n.formatOK.Set(true)
		})
		return
	}

	f, err := strconv.ParseFloat(raw, 64)
	reactive.Batch(func() {
		if err != nil {
			n.SetValue(nil)
			n.formatOK.Set(false)
			return
		}
		n.SetValue(&f)
		n.formatOK.Set(true)
	})
}

// SetNumber publishes a parsed value directly, clearing any format error.
func (n *Number) SetNumber(v float64) {
	reactive.Batch(func() {
		n.SetValue(&v)
		n.formatOK.Set(true)
	})
}

// SetMin installs the "min" validator. An absent value passes.
func (n *Number) SetMin(min float64) {
	n.SetValidator("min", validate.Rule(n.RxValue(), func(v *float64) bool {
		return v == nil || *v >= min
	}))
}

// SetMax installs the "max" validator. An absent value passes.
func (n *Number) SetMax(max float64) {
	n.SetValidator("max", validate.Rule(n.RxValue(), func(v *float64) bool {
		return v == nil || *v <= max
	}))
}

// SetStep installs the "step" validator anchored at base.
func (n *Number) SetStep(step, base float64) {
	ok := validate.Step(step, base)
	n.SetValidator("step", validate.Rule(n.RxValue(), func(v *float64) bool {
		return v == nil || ok(*v)
	}))
}
