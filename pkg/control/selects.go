package control

import (
	"github.com/formwork-dev/formwork/pkg/validate"
)

// Select is a single-choice control. Its value is the selected option,
// empty when nothing is selected.
type Select struct {
	*Base[string]
}

// NewSelect creates a select control with the given name.
func NewSelect(name string) *Select {
	return &Select{
		Base: NewBase(name, "", func(s string) bool { return s != "" }),
	}
}

// SetOptions installs the "option" validator constraining the value to
// the given options. An empty value passes.
func (s *Select) SetOptions(options ...string) {
	allowed := validate.OneOf(options...)
	s.SetValidator("option", validate.Rule(s.RxValue(), func(v string) bool {
		return v == "" || allowed(v)
	}))
}

// MultiSelect is a multiple-choice control. Its value is the list of
// selected options, set when at least one is selected.
type MultiSelect struct {
	*Base[[]string]
}

// NewMultiSelect creates a multi-select control with the given name.
func NewMultiSelect(name string) *MultiSelect {
	return &MultiSelect{
		Base: NewBase[[]string](name, nil, func(v []string) bool { return len(v) > 0 }),
	}
}

// SetOptions installs the "option" validator constraining every selected
// value to the given options.
func (m *MultiSelect) SetOptions(options ...string) {
	allowed := validate.OneOf(options...)
	m.SetValidator("option", validate.Rule(m.RxValue(), func(vs []string) bool {
		for _, v := range vs {
			if !allowed(v) {
				return false
			}
		}
		return true
	}))
}

// SetMinSelected installs the "minselected" validator. An empty selection
// passes; Required handles emptiness.
func (m *MultiSelect) SetMinSelected(n int) {
	m.SetValidator("minselected", validate.Rule(m.RxValue(), func(vs []string) bool {
		return len(vs) == 0 || len(vs) >= n
	}))
}

// SetMaxSelected installs the "maxselected" validator.
func (m *MultiSelect) SetMaxSelected(n int) {
	m.SetValidator("maxselected", validate.Rule(m.RxValue(), func(vs []string) bool {
		return len(vs) <= n
	}))
}
