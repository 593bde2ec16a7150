package control

import (
	"strings"
	"time"

	"github.com/formwork-dev/formwork/pkg/reactive"
	"github.com/formwork-dev/formwork/pkg/validate"
)

// DateTime is a date/time input control. Its value is a time.Time; the
// zero time means no value. A Go reference layout fixed at construction
// drives parsing, and raw input from any source goes through that single
// parser before validators run, so the "format" check can never disagree
// with the value the control holds.
type DateTime struct {
	*Base[time.Time]

	layout   string
	formatOK *reactive.Signal[bool]
}

// NewDateTime creates a date-time control with the given name and Go
// reference layout (e.g. "2006-01-02"). An empty layout is a
// configuration error and panics.
func NewDateTime(name, layout string) *DateTime {
	if layout == "" {
		panic("control: date-time control constructed without a layout")
	}
	d := &DateTime{
		Base:     NewBase(name, time.Time{}, func(t time.Time) bool { return !t.IsZero() }),
		layout:   layout,
		formatOK: reactive.NewSignal(true),
	}
	d.SetValidator(FormatValidator, d.formatOK)
	return d
}

// Layout returns the Go reference layout this control parses with.
func (d *DateTime) Layout() string { return d.layout }

// SetRaw parses raw text with the control's layout and publishes the
// result. Empty input clears the value; unparseable input clears the
// value and fails the "format" validator.
func (d *DateTime) SetRaw(raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		reactive.Batch(func() {
			d.SetValue(time.Time{})
			d.formatOK.Set(true)
		})
		return
	}

	t, err := time.Parse(d.layout, raw)
	reactive.Batch(func() {
		if err != nil {
			d.SetValue(time.Time{})
			d.formatOK.Set(false)
			return
		}
		d.SetValue(t)
		d.formatOK.Set(true)
	})
}

// SetTime publishes a parsed time directly, clearing any format error.
func (d *DateTime) SetTime(t time.Time) {
	reactive.Batch(func() {
		d.SetValue(t)
		d.formatOK.Set(true)
	})
}

// SetMin installs the "min" validator. An absent value passes.
func (d *DateTime) SetMin(min time.Time) {
	d.SetValidator("min", validate.Rule(d.RxValue(), func(t time.Time) bool {
		return t.IsZero() || !t.Before(min)
	}))
}

// SetMax installs the "max" validator. An absent value passes.
func (d *DateTime) SetMax(max time.Time) {
	d.SetValidator("max", validate.Rule(d.RxValue(), func(t time.Time) bool {
		return t.IsZero() || !t.After(max)
	}))
}
